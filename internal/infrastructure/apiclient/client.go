// Package apiclient talks to the storefront REST API on behalf of the CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/domain/analytics"
	"github.com/your-org/beauty-store/internal/domain/cart"
	"github.com/your-org/beauty-store/internal/domain/catalog"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/pkg/httpclient"
)

// ErrUnauthorized is returned when the API rejects the session token or the
// credentials.
var ErrUnauthorized = errors.New("not signed in or session expired")

// Doer sends HTTP requests.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is a typed client for the storefront API.
type Client struct {
	baseURL string
	http    Doer
	logger  logrus.FieldLogger
}

// New creates a client for baseURL, for example http://localhost:5000/api.
func New(baseURL string, doer Doer, logger logrus.FieldLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		logger:  logger,
	}
}

// NewFromConfig builds a client with retries and a circuit breaker.
func NewFromConfig(cfg *config.Config, logger logrus.FieldLogger) *Client {
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.Storefront.Timeout
	httpCfg.MaxRetries = cfg.Storefront.MaxRetries

	breaker := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg, logger),
		httpclient.DefaultCircuitBreakerConfig("storefront-api"),
		logger,
	)
	return New(cfg.Storefront.APIBaseURL, breaker, logger)
}

// AuthResult is a signed-in session.
type AuthResult struct {
	Token string    `json:"token"`
	User  cart.User `json:"user"`
}

// Register creates an account and signs in.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.call(ctx, http.MethodPost, "/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.call(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind token.
func (c *Client) Me(ctx context.Context, token string) (cart.User, error) {
	var out struct {
		User struct {
			ID    string `json:"_id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	if err := c.call(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return cart.User{}, err
	}
	u := out.User
	return cart.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}

type productPage struct {
	Products   []catalog.Product `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// ListProducts fetches one page of the remote catalog.
func (c *Client) ListProducts(ctx context.Context, q catalog.Query) ([]catalog.Product, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if len(q.Brands) > 0 {
		params.Set("brand", strings.Join(q.Brands, ","))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Sort != "" && q.Sort != catalog.SortFeatured {
		params.Set("sort", q.Sort)
	}
	if q.MinPrice != nil {
		params.Set("minPrice", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		params.Set("maxPrice", q.MaxPrice.String())
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	path := "/products"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var page productPage
	if err := c.call(ctx, http.MethodGet, path, "", nil, &page); err != nil {
		return nil, err
	}
	if page.Products == nil {
		page.Products = []catalog.Product{}
	}
	return page.Products, nil
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	var out struct {
		Product catalog.Product `json:"product"`
	}
	if err := c.call(ctx, http.MethodGet, "/products/"+url.PathEscape(id), "", nil, &out); err != nil {
		return catalog.Product{}, err
	}
	return out.Product, nil
}

type orderEnvelope struct {
	Order order.Order `json:"order"`
}

type ordersEnvelope struct {
	Orders []order.Order `json:"orders"`
}

// PlaceOrder submits an order exactly once and returns the stored id. token
// may be empty for a guest order.
func (c *Client) PlaceOrder(ctx context.Context, token string, req *order.CreateOrderRequest) (string, error) {
	var out orderEnvelope
	if err := c.call(ctx, http.MethodPost, "/orders", token, req, &out); err != nil {
		return "", err
	}
	if out.Order.ID == "" {
		return "", errors.New("order response has no id")
	}
	return out.Order.ID, nil
}

// MyOrders lists the signed-in user's orders, newest first.
func (c *Client) MyOrders(ctx context.Context, token string) ([]order.Order, error) {
	var out ordersEnvelope
	if err := c.call(ctx, http.MethodGet, "/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// GetOrder fetches one order visible to token.
func (c *Client) GetOrder(ctx context.Context, token, id string) (*order.Order, error) {
	var out orderEnvelope
	if err := c.call(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

// DownloadInvoice streams the PDF invoice of an order into w.
func (c *Client) DownloadInvoice(ctx context.Context, token, id string, w io.Writer) error {
	resp, err := c.send(ctx, http.MethodGet, "/orders/"+url.PathEscape(id)+"/invoice", token, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("download invoice: %w", err)
	}
	return nil
}

// AdminStats fetches the dashboard counters.
func (c *Client) AdminStats(ctx context.Context, token string) (*analytics.DashboardStats, error) {
	var out struct {
		Stats analytics.DashboardStats `json:"stats"`
	}
	if err := c.call(ctx, http.MethodGet, "/admin/stats", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Stats, nil
}

// AdminOrders lists every order.
func (c *Client) AdminOrders(ctx context.Context, token string) ([]order.Order, error) {
	var out ordersEnvelope
	if err := c.call(ctx, http.MethodGet, "/admin/orders", token, nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

// UpdateOrderStatus changes an order's status.
func (c *Client) UpdateOrderStatus(ctx context.Context, token, id string, status order.OrderStatus) (*order.Order, error) {
	var out orderEnvelope
	body := order.UpdateStatusRequest{Status: status}
	if err := c.call(ctx, http.MethodPut, "/admin/orders/"+url.PathEscape(id), token, body, &out); err != nil {
		return nil, err
	}
	return &out.Order, nil
}

func (c *Client) call(ctx context.Context, method, path, token string, body, out interface{}) error {
	resp, err := c.send(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// send returns a 2xx response or an error. Non-2xx bodies are consumed.
func (c *Client) send(ctx context.Context, method, path, token string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, translate(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, translate(httpclient.ParseResponseError(resp))
	}
	return resp, nil
}

func translate(err error) error {
	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return err
}

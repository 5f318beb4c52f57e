package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/beauty-store/internal/domain/catalog"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"github.com/your-org/beauty-store/internal/pkg/httpclient"
	"github.com/your-org/beauty-store/internal/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 1
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	return New(srv.URL+"/api/", httpclient.New(cfg, logger.Discard()), logger.Discard())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListProducts_EncodesQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		gotQuery = r.URL.RawQuery
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"products": []map[string]interface{}{
				{"_id": "a1", "name": "Matte Lipstick Collection", "brand": "MAC", "price": 54, "category": "makeup",
					"shades": []map[string]interface{}{{"name": "Ruby Woo", "color": "#C25B56", "inStock": true}}, "stock": 150},
			},
			"total": 1, "page": 1, "totalPages": 1,
		})
	})

	lo := decimal.NewFromInt(10)
	products, err := client.ListProducts(context.Background(), catalog.Query{
		Category: "makeup", Brands: []string{"MAC", "NARS"}, Search: "matte",
		Sort: catalog.SortPriceLow, MinPrice: &lo, Page: 2, Limit: 6,
	})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, products[0].Price.Equal(decimal.NewFromInt(54)))
	assert.Equal(t, "Ruby Woo", products[0].Shades[0].Name)

	assert.Equal(t, "brand=MAC%2CNARS&category=makeup&limit=6&minPrice=10&page=2&search=matte&sort=price-low", gotQuery)
}

func TestGetProduct_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
	})

	_, err := client.GetProduct(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "Product not found")
}

func TestPlaceOrder_SendsOnceWithToken(t *testing.T) {
	var calls int32
	var got order.CreateOrderRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]interface{}{"order": map[string]interface{}{"_id": "srv-42", "status": "pending"}})
	})

	id, err := client.PlaceOrder(context.Background(), "jwt", &order.CreateOrderRequest{
		Items:      []order.Item{{Product: "1", ProductName: "Lipstick", Quantity: 2, Price: 54}},
		PricingINR: &order.Totals{Subtotal: 9018, Total: 9739.44},
	})
	require.NoError(t, err)
	assert.Equal(t, "srv-42", id)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 9739.44, got.PricingINR.Total)
	assert.Nil(t, got.Pricing)
}

func TestPlaceOrder_ServerErrorIsNotRetried(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
	})

	_, err := client.PlaceOrder(context.Background(), "", &order.CreateOrderRequest{})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGuestOrder_HasNoAuthorizationHeader(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusCreated, map[string]interface{}{"order": map[string]string{"_id": "g1"}})
	})

	id, err := client.PlaceOrder(context.Background(), "", &order.CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, "g1", id)
}

func TestUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Token is not valid"})
	})

	_, err := client.Me(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = client.MyOrders(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret1" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"token": "jwt",
			"user":  map[string]string{"id": "u1", "name": "Asha", "email": body["email"], "role": "user"},
		})
	})

	res, err := client.Login(context.Background(), "asha@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "jwt", res.Token)
	assert.Equal(t, "u1", res.User.ID)

	_, err = client.Login(context.Background(), "asha@example.com", "nope")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestEnvelopes(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/me":
			writeJSON(w, http.StatusOK, map[string]interface{}{"user": map[string]string{"_id": "u1", "name": "Asha", "email": "asha@example.com", "role": "user"}})
		case "/api/products/p1":
			writeJSON(w, http.StatusOK, map[string]interface{}{"product": map[string]interface{}{"_id": "p1", "name": "Rouge Lipstick", "price": 48}})
		case "/api/orders":
			writeJSON(w, http.StatusOK, map[string]interface{}{"orders": []map[string]string{{"_id": "o2"}, {"_id": "o1"}}})
		case "/api/admin/orders/o1":
			writeJSON(w, http.StatusOK, map[string]interface{}{"order": map[string]string{"_id": "o1", "status": "shipped"}})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	me, err := client.Me(ctx, "jwt")
	require.NoError(t, err)
	assert.Equal(t, "u1", me.ID)
	assert.Equal(t, "Asha", me.Name)

	p, err := client.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Rouge Lipstick", p.Name)

	orders, err := client.MyOrders(ctx, "jwt")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o2", orders[0].ID)

	updated, err := client.UpdateOrderStatus(ctx, "jwt", "o1", order.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.OrderStatusShipped, updated.Status)
}

func TestAdminStatsAndInvoice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/admin/stats":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"stats": map[string]interface{}{"totalUsers": 2, "totalProducts": 6, "totalOrders": 1, "totalRevenue": 9739.44},
			})
		case "/api/orders/o1/invoice":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		default:
			http.NotFound(w, r)
		}
	})

	stats, err := client.AdminStats(context.Background(), "jwt")
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.TotalProducts)
	assert.Equal(t, 9739.44, stats.TotalRevenue)

	var buf bytes.Buffer
	require.NoError(t, client.DownloadInvoice(context.Background(), "jwt", "o1", &buf))
	assert.Equal(t, "%PDF-1.4", buf.String())
}

func TestRemoteSource_FallsBackWhenServerIsDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	client := New(srv.URL+"/api", httpclient.New(cfg, logger.Discard()), logger.Discard())
	source := catalog.NewRemoteSource(client, true, logger.Discard())

	products, err := source.Products(context.Background(), catalog.Query{Category: catalog.CategoryAll})
	require.NoError(t, err)
	assert.Len(t, products, len(catalog.Fixtures()))
}

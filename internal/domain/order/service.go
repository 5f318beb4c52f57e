// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

const notifyTimeout = 30 * time.Second

// Notifier is told about newly placed orders.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, order *Order) error
}

// Service handles order business logic
type Service struct {
	repo     Repository
	calc     *pricing.Calculator
	notifier Notifier
	logger   logrus.FieldLogger
	now      func() time.Time

	pending sync.WaitGroup
}

// NewService creates a new order service. notifier may be nil.
func NewService(repo Repository, calc *pricing.Calculator, notifier Notifier, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		calc:     calc,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Totals is a pricing block sent by the storefront.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	Items           []Item          `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Pricing         *Totals         `json:"pricing,omitempty"`    // base currency
	PricingINR      *Totals         `json:"pricingINR,omitempty"` // display currency, preferred
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// UpdateStatusRequest is the admin status change body.
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// CreateOrder records an order. userID is nil for guest checkouts. Totals
// come from PricingINR, then Pricing, and are computed from the items when
// neither is sent. The status always starts as pending.
func (s *Service) CreateOrder(ctx context.Context, userID *string, req *CreateOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.InvalidInput("Order must contain at least one item")
	}

	items := make([]Item, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, apperrors.InvalidInput("Item quantity must be at least 1")
		}
		if item.Shade != nil && strings.TrimSpace(*item.Shade) == "" {
			item.Shade = nil
		}
		items = append(items, item)
	}

	now := s.now()
	order := &Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Status:          OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = PaymentMethodCOD
	}
	if order.ShippingAddress.Country == "" {
		order.ShippingAddress.Country = "India"
	}

	switch {
	case req.PricingINR != nil:
		order.applyTotals(*req.PricingINR, CurrencyINR)
	case req.Pricing != nil:
		order.applyTotals(*req.Pricing, CurrencyUSD)
	default:
		s.computeTotals(order)
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create order: %w", err))
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"total":    order.Total,
		"currency": order.Currency,
		"guest":    userID == nil,
	}).Info("Order created")

	s.notify(order)
	return order, nil
}

func (o *Order) applyTotals(t Totals, currency string) {
	o.Subtotal = t.Subtotal
	o.Shipping = t.Shipping
	o.Tax = t.Tax
	o.Total = t.Total
	o.Currency = currency
}

// computeTotals prices the order in the display currency from its items.
func (s *Service) computeTotals(order *Order) {
	subtotal := decimal.Zero
	for _, item := range order.Items {
		subtotal = subtotal.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	display := s.calc.Breakdown(subtotal).Display
	order.applyTotals(Totals{
		Subtotal: display.Subtotal.InexactFloat64(),
		Shipping: display.Shipping.InexactFloat64(),
		Tax:      display.Tax.InexactFloat64(),
		Total:    display.Total.InexactFloat64(),
	}, s.calc.DisplayCurrency())
}

// notify sends the confirmation in the background. Failures are logged.
func (s *Service) notify(order *Order) {
	if s.notifier == nil || order.ShippingAddress.Email == "" {
		return
	}

	snapshot := *order
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(ctx, &snapshot); err != nil {
			s.logger.WithError(err).WithField("order_id", snapshot.ID).Warn("Failed to send order confirmation")
		}
	}()
}

// Wait blocks until background notifications have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// GetUserOrders returns the user's orders, newest first.
func (s *Service) GetUserOrders(ctx context.Context, userID string) ([]Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list orders: %w", err))
	}
	return orders, nil
}

// GetOrder returns an order the requester may see: their own, or any order
// for an admin.
func (s *Service) GetOrder(ctx context.Context, id, requesterID string, isAdmin bool) (*Order, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !order.BelongsTo(requesterID) {
		return nil, apperrors.Forbidden("Access denied")
	}
	return order, nil
}

// GetAllOrders returns every order, newest first.
func (s *Service) GetAllOrders(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list orders: %w", err))
	}
	return orders, nil
}

// UpdateOrderStatus updates order status
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) (*Order, error) {
	if !status.IsValid() {
		return nil, apperrors.InvalidInput("Invalid order status")
	}

	order, err := s.repo.UpdateStatus(ctx, id, status)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("Order")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to update order status: %w", err))
	}

	s.logger.WithFields(logrus.Fields{"order_id": id, "status": status}).Info("Order status updated")
	return order, nil
}

func (s *Service) find(ctx context.Context, id string) (*Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("Order")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to retrieve order: %w", err))
	}
	return order, nil
}

// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/domain/cart"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

var (
	// ErrValidation wraps a user-facing message about the shipping form.
	ErrValidation = errors.New("invalid checkout details")
	// ErrEmptyCart is returned when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")
)

// OrderPlacer submits an order and returns the id the server assigned.
// token is empty for guest checkouts.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, token string, req *order.CreateOrderRequest) (string, error)
}

// Confirmation describes a placed order.
type Confirmation struct {
	OrderID string
	// Synthesized is set when the server could not be reached and the id was
	// generated locally. Such orders are not stored anywhere.
	Synthesized bool
	Items       []cart.Line
	Breakdown   pricing.Breakdown
	Address     order.ShippingAddress
}

// Service turns the current cart into an order.
type Service struct {
	store  *cart.Store
	calc   *pricing.Calculator
	placer OrderPlacer
	policy string
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a checkout service. policy is config.FallbackDemo or
// config.FallbackStrict.
func NewService(store *cart.Store, calc *pricing.Calculator, placer OrderPlacer, policy string, logger logrus.FieldLogger) *Service {
	if policy != config.FallbackStrict {
		policy = config.FallbackDemo
	}
	return &Service{
		store:  store,
		calc:   calc,
		placer: placer,
		policy: policy,
		logger: logger,
		now:    time.Now,
	}
}

// Quote prices the cart as it stands.
func (s *Service) Quote() pricing.Breakdown {
	return s.calc.Breakdown(s.store.TotalBase())
}

// PlaceOrder validates the form, submits the cart once and clears it on
// success. With the demo policy a failed submission still succeeds with a
// locally generated id; with the strict policy the error is returned and the
// cart is left as it was.
func (s *Service) PlaceOrder(ctx context.Context, form ShippingForm) (*Confirmation, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		return nil, err
	}

	lines := s.store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal())
	}
	breakdown := s.calc.Breakdown(subtotal)
	address := form.ShippingAddress()
	req := buildRequest(lines, address, breakdown, form.Notes)

	orderID, err := s.placer.PlaceOrder(ctx, s.store.Token(), req)
	synthesized := false
	if err != nil {
		if s.policy == config.FallbackStrict || ctx.Err() != nil {
			return nil, fmt.Errorf("failed to place order: %w", err)
		}
		orderID = OrderID(s.now())
		synthesized = true
		s.logger.WithError(err).WithField("order_id", orderID).
			Warn("order service unavailable, confirmed locally and not stored")
	}

	s.store.Clear()

	return &Confirmation{
		OrderID:     orderID,
		Synthesized: synthesized,
		Items:       lines,
		Breakdown:   breakdown,
		Address:     address,
	}, nil
}

// OrderID generates a demo order id from the clock: "ORD-" followed by the
// Unix time in milliseconds, upper-case base 36.
func OrderID(now time.Time) string {
	return "ORD-" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}

func buildRequest(lines []cart.Line, address order.ShippingAddress, b pricing.Breakdown, notes string) *order.CreateOrderRequest {
	items := make([]order.Item, len(lines))
	for i, line := range lines {
		items[i] = order.Item{
			Product:     line.ProductID,
			ProductName: line.Name,
			Shade:       line.SelectedShade,
			Quantity:    line.Quantity,
			Price:       line.Price.InexactFloat64(),
		}
	}

	return &order.CreateOrderRequest{
		Items:           items,
		ShippingAddress: address,
		Pricing:         totals(b.Base),
		PricingINR:      totals(b.Display),
		PaymentMethod:   order.PaymentMethodCOD,
		Notes:           notes,
	}
}

func totals(a pricing.Amounts) *order.Totals {
	return &order.Totals{
		Subtotal: a.Subtotal.InexactFloat64(),
		Shipping: a.Shipping.InexactFloat64(),
		Tax:      a.Tax.InexactFloat64(),
		Total:    a.Total.InexactFloat64(),
	}
}

package order

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/beauty-store/internal/config"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

type memoryRepo struct {
	mu     sync.Mutex
	orders map[string]Order
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{orders: map[string]Order{}} }

func (r *memoryRepo) Create(_ context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = *o
	return nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &o, nil
}

func (r *memoryRepo) sorted(keep func(Order) bool) []Order {
	var out []Order
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryRepo) ListByUser(_ context.Context, userID string) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(o Order) bool { return o.BelongsTo(userID) }), nil
}

func (r *memoryRepo) List(context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(Order) bool { return true }), nil
}

func (r *memoryRepo) UpdateStatus(_ context.Context, id string, status OrderStatus) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	o.Status = status
	r.orders[id] = o
	return &o, nil
}

func (r *memoryRepo) Count(context.Context) (int64, error) { return int64(len(r.orders)), nil }

func (r *memoryRepo) Revenue(context.Context) (float64, error) {
	total := 0.0
	for _, o := range r.orders {
		total += o.Total
	}
	return total, nil
}

func (r *memoryRepo) DeleteAll(context.Context) error {
	r.orders = map[string]Order{}
	return nil
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *recordingNotifier) SendOrderConfirmation(_ context.Context, o *Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, o.ShippingAddress.Email)
	return n.err
}

func newTestService(notifier Notifier) (*Service, *memoryRepo) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	calc := pricing.NewCalculator(config.PricingConfig{
		BaseCurrency:          "USD",
		DisplayCurrency:       "INR",
		Locale:                "en-IN",
		Rate:                  decimal.RequireFromString("83.5"),
		FreeShippingThreshold: decimal.NewFromInt(5000),
		FlatShippingFee:       decimal.NewFromInt(150),
		TaxRate:               decimal.RequireFromString("0.08"),
	})
	repo := newMemoryRepo()
	return NewService(repo, calc, notifier, logger), repo
}

func strPtr(s string) *string { return &s }

func sampleRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Items: []Item{{Product: "p1", ProductName: "Lipstick", Quantity: 2, Price: 54}},
		ShippingAddress: ShippingAddress{
			FirstName: "Asha", LastName: "Rao", Email: "asha@example.com",
			Address: "12 MG Road", City: "Bengaluru", State: "KA", ZipCode: "560001",
		},
	}
}

func TestCreateOrder_PricingPrecedence(t *testing.T) {
	svc, _ := newTestService(nil)

	t.Run("display pricing wins", func(t *testing.T) {
		req := sampleRequest()
		req.Pricing = &Totals{Subtotal: 108, Shipping: 1.8, Tax: 8.64, Total: 118.44}
		req.PricingINR = &Totals{Subtotal: 9018, Shipping: 150, Tax: 721.44, Total: 9889.44}

		o, err := svc.CreateOrder(context.Background(), nil, req)
		require.NoError(t, err)
		assert.Equal(t, 9889.44, o.Total)
		assert.Equal(t, CurrencyINR, o.Currency)
	})

	t.Run("base pricing when display missing", func(t *testing.T) {
		req := sampleRequest()
		req.Pricing = &Totals{Subtotal: 108, Shipping: 1.8, Tax: 8.64, Total: 118.44}

		o, err := svc.CreateOrder(context.Background(), nil, req)
		require.NoError(t, err)
		assert.Equal(t, 118.44, o.Total)
		assert.Equal(t, CurrencyUSD, o.Currency)
	})

	t.Run("computed when neither sent", func(t *testing.T) {
		o, err := svc.CreateOrder(context.Background(), nil, sampleRequest())
		require.NoError(t, err)
		assert.InDelta(t, 9018.0, o.Subtotal, 1e-9)
		assert.InDelta(t, 0.0, o.Shipping, 1e-9)
		assert.InDelta(t, 721.44, o.Tax, 1e-9)
		assert.InDelta(t, 9739.44, o.Total, 1e-9)
		assert.Equal(t, CurrencyINR, o.Currency)
	})
}

func TestCreateOrder_Defaults(t *testing.T) {
	svc, repo := newTestService(nil)
	req := sampleRequest()
	req.Items[0].Shade = strPtr("  ")

	o, err := svc.CreateOrder(context.Background(), strPtr("u1"), req)
	require.NoError(t, err)

	assert.NotEmpty(t, o.ID)
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, PaymentMethodCOD, o.PaymentMethod)
	assert.Equal(t, "India", o.ShippingAddress.Country)
	assert.Nil(t, o.Items[0].Shade)
	assert.True(t, o.BelongsTo("u1"))
	assert.Equal(t, 2, o.ItemCount())

	stored, err := repo.FindByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.Total, stored.Total)
}

func TestCreateOrder_Invalid(t *testing.T) {
	svc, _ := newTestService(nil)

	_, err := svc.CreateOrder(context.Background(), nil, &CreateOrderRequest{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	req := sampleRequest()
	req.Items[0].Quantity = 0
	_, err = svc.CreateOrder(context.Background(), nil, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCreateOrder_SendsConfirmation(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	svc, _ := newTestService(notifier)

	_, err := svc.CreateOrder(context.Background(), nil, sampleRequest())
	require.NoError(t, err, "notification failures do not fail the order")
	svc.Wait()

	assert.Equal(t, []string{"asha@example.com"}, notifier.sent)
}

func TestGetOrder_Access(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	owned, err := svc.CreateOrder(ctx, strPtr("u1"), sampleRequest())
	require.NoError(t, err)
	guest, err := svc.CreateOrder(ctx, nil, sampleRequest())
	require.NoError(t, err)

	_, err = svc.GetOrder(ctx, owned.ID, "u1", false)
	assert.NoError(t, err)

	_, err = svc.GetOrder(ctx, owned.ID, "u2", false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, "Access denied", apperrors.Message(err))

	_, err = svc.GetOrder(ctx, owned.ID, "u2", true)
	assert.NoError(t, err)

	_, err = svc.GetOrder(ctx, guest.ID, "u1", false)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.GetOrder(ctx, "missing", "u1", true)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Order not found", apperrors.Message(err))
}

func TestGetUserOrders_NewestFirst(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		o, err := svc.CreateOrder(ctx, strPtr("u1"), sampleRequest())
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	_, err := svc.CreateOrder(ctx, strPtr("u2"), sampleRequest())
	require.NoError(t, err)

	orders, err := svc.GetUserOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)

	all, err := svc.GetAllOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	o, err := svc.CreateOrder(ctx, nil, sampleRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(ctx, o.ID, OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, updated.Status)

	_, err = svc.UpdateOrderStatus(ctx, o.ID, OrderStatus("Pending"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.UpdateOrderStatus(ctx, "missing", OrderStatusDelivered)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestShippingAddress_FullName(t *testing.T) {
	assert.Equal(t, "Asha Rao", ShippingAddress{FirstName: "Asha", LastName: "Rao"}.FullName())
	assert.Equal(t, "Rao", ShippingAddress{LastName: "Rao"}.FullName())
	assert.Equal(t, "Asha", ShippingAddress{FirstName: "Asha"}.FullName())
}

func TestOrder_Number(t *testing.T) {
	o := &Order{ID: "123e4567-e89b-12d3-a456-426614174000"}
	assert.Equal(t, "14174000", o.Number())
	assert.Equal(t, "ABC", (&Order{ID: "abc"}).Number())
}

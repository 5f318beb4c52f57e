package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/beauty-store/internal/domain/cart"
	"github.com/your-org/beauty-store/internal/pkg/logger"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCartSlot_EmptyKey(t *testing.T) {
	_, client := setupMiniredis(t)
	slot := NewCartSlot(client, "beauty-store", 0)

	_, err := slot.Load(context.Background())
	assert.ErrorIs(t, err, cart.ErrSlotEmpty)
}

func TestCartSlot_SaveAndLoad(t *testing.T) {
	mr, client := setupMiniredis(t)
	slot := NewCartSlot(client, "beauty-store", 0)
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, []byte(`{"version":0}`)))
	data, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":0}`, string(data))

	assert.Zero(t, mr.TTL("beauty-store"))
}

func TestCartSlot_TTL(t *testing.T) {
	mr, client := setupMiniredis(t)
	slot := NewCartSlot(client, "session", time.Hour)

	require.NoError(t, slot.Save(context.Background(), []byte("{}")))
	assert.Equal(t, time.Hour, mr.TTL("session"))

	mr.FastForward(2 * time.Hour)
	_, err := slot.Load(context.Background())
	assert.ErrorIs(t, err, cart.ErrSlotEmpty)
}

func TestCartSlot_ServerDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	slot := NewCartSlot(client, "beauty-store", 0)
	mr.Close()

	_, err := slot.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, cart.ErrSlotEmpty)
	assert.Error(t, slot.Save(context.Background(), []byte("{}")))
}

func TestCartSlot_StoreSurvivesRestart(t *testing.T) {
	_, client := setupMiniredis(t)
	lipstick := cart.Product{ID: "1", Name: "Matte Lipstick Collection", Brand: "MAC", Price: decimal.NewFromInt(54)}

	first := cart.New(NewCartSlot(client, "beauty-store", 0), cart.WithLogger(logger.Discard()))
	first.Rehydrate(context.Background())
	first.AddLine(lipstick, "Ruby Woo", 3)
	first.AddToWishlist("2")

	second := cart.New(NewCartSlot(client, "beauty-store", 0), cart.WithLogger(logger.Discard()))
	second.Rehydrate(context.Background())

	assert.Equal(t, 3, second.LineCount())
	assert.True(t, second.TotalBase().Equal(decimal.NewFromInt(162)))
	assert.Equal(t, []string{"2"}, second.Wishlist())
}

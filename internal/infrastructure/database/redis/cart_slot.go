package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/beauty-store/internal/domain/cart"
)

// CartSlot keeps the storefront session snapshot under a single Redis key.
// A zero ttl stores the key without expiry.
type CartSlot struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration
}

// NewCartSlot creates a slot for key.
func NewCartSlot(client redis.Cmdable, key string, ttl time.Duration) *CartSlot {
	return &CartSlot{client: client, key: key, ttl: ttl}
}

func (s *CartSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrSlotEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	return data, nil
}

func (s *CartSlot) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

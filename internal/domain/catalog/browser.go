package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned by Browser.Load when a newer load started before
// this one finished. Its result is discarded.
var ErrSuperseded = errors.New("catalog: load superseded by a newer request")

// Browser tracks the product list currently on screen. Loads may overlap;
// only the most recently started one is applied.
type Browser struct {
	source Source

	mu      sync.Mutex
	latest  uint64
	query   Query
	current []Product
}

// NewBrowser creates a Browser reading from source.
func NewBrowser(source Source) *Browser {
	return &Browser{source: source}
}

// Load fetches products for q and makes them current, unless another Load
// was started in the meantime.
func (b *Browser) Load(ctx context.Context, q Query) ([]Product, error) {
	b.mu.Lock()
	b.latest++
	token := b.latest
	b.mu.Unlock()

	products, err := b.source.Products(ctx, q)

	b.mu.Lock()
	defer b.mu.Unlock()

	if token != b.latest {
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}
	b.query = q
	b.current = products
	return append([]Product{}, products...), nil
}

// Current returns the last applied product list and the query that produced
// it.
func (b *Browser) Current() ([]Product, Query) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Product{}, b.current...), b.query
}

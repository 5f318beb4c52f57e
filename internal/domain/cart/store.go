// Package cart is the client-side session store: cart lines, wishlist,
// signed-in user and recently viewed products. Every mutation is written
// through to a Slot so the session survives restarts.
package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

const (
	defaultRecentLimit    = 10
	defaultPersistTimeout = 3 * time.Second
)

// session is the in-memory state guarded by Store.mu.
type session struct {
	lines    []Line
	wishlist []string
	user     *User
	token    string
	recent   []Product
}

func (s *session) find(productID string, shade *string) int {
	for i, line := range s.lines {
		if line.matches(productID, shade) {
			return i
		}
	}
	return -1
}

// Store owns one session. It is safe for concurrent use; callers share a
// single *Store rather than a package-level instance.
type Store struct {
	mu             sync.Mutex
	slot           Slot
	logger         logrus.FieldLogger
	recentLimit    int
	persistTimeout time.Duration
	hydrated       bool
	state          session
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithRecentLimit caps the recently viewed list.
func WithRecentLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// WithPersistTimeout bounds each write to the slot.
func WithPersistTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// New creates an empty store backed by slot. Call Rehydrate to load the
// previous session.
func New(slot Slot, opts ...Option) *Store {
	s := &Store{
		slot:           slot,
		logger:         logrus.StandardLogger(),
		recentLimit:    defaultRecentLimit,
		persistTimeout: defaultPersistTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rehydrate loads the persisted session. It runs at most once per Store, and
// never after the store has been mutated. A missing, unreadable or corrupt
// snapshot leaves the session empty.
func (s *Store) Rehydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hydrated {
		return
	}
	s.hydrated = true

	data, err := s.slot.Load(ctx)
	if errors.Is(err, ErrSlotEmpty) {
		return
	}
	if err != nil {
		s.logger.WithError(err).Warn("failed to read saved session, starting empty")
		return
	}

	restored, err := decodeSnapshot(data, s.recentLimit)
	if err != nil {
		s.logger.WithError(err).Warn("saved session is corrupt, starting empty")
		return
	}
	s.state = *restored
}

// AddLine adds quantity units of product in the given shade. An existing
// line with the same product and shade is incremented; otherwise a new line
// is appended. Quantities below 1 are treated as 1.
func (s *Store) AddLine(product Product, shade string, quantity int) Line {
	if quantity < 1 {
		quantity = 1
	}
	key := normalizeShade(shade)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.state.find(product.ID, key); i >= 0 {
		s.state.lines[i].Quantity += quantity
		s.persistLocked()
		return s.state.lines[i].clone()
	}

	line := Line{
		ProductID:     product.ID,
		Name:          product.Name,
		Brand:         product.Brand,
		Price:         product.Price,
		Images:        append([]string{}, product.Images...),
		SelectedShade: key,
		Quantity:      quantity,
	}
	s.state.lines = append(s.state.lines, line)
	s.persistLocked()
	return line.clone()
}

// SetQuantity overwrites a line's quantity. Anything below 1 removes the
// line. Unknown lines are ignored.
func (s *Store) SetQuantity(productID, shade string, quantity int) {
	if quantity < 1 {
		s.RemoveLine(productID, shade)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.find(productID, normalizeShade(shade))
	if i < 0 {
		return
	}
	s.state.lines[i].Quantity = quantity
	s.persistLocked()
}

// RemoveLine deletes the line for product and shade if present.
func (s *Store) RemoveLine(productID, shade string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.state.find(productID, normalizeShade(shade))
	if i < 0 {
		return
	}
	s.state.lines = append(s.state.lines[:i], s.state.lines[i+1:]...)
	s.persistLocked()
}

// Clear empties the cart. Wishlist, user and history are kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.lines = nil
	s.persistLocked()
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.state.lines))
	for i, line := range s.state.lines {
		out[i] = line.clone()
	}
	return out
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.lines)
}

// LineCount returns the total number of units across all lines.
func (s *Store) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, line := range s.state.lines {
		count += line.Quantity
	}
	return count
}

// TotalBase returns the exact cart total in the base currency.
func (s *Store) TotalBase() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, line := range s.state.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Total returns the cart total converted with rate.
func (s *Store) Total(rate decimal.Decimal) decimal.Decimal {
	return pricing.Convert(s.TotalBase(), rate)
}

// AddToWishlist records productID once. It reports whether it was added.
func (s *Store) AddToWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.state.wishlist {
		if id == productID {
			return false
		}
	}
	s.state.wishlist = append(s.state.wishlist, productID)
	s.persistLocked()
	return true
}

// RemoveFromWishlist drops productID from the wishlist.
func (s *Store) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, id := range s.state.wishlist {
		if id == productID {
			s.state.wishlist = append(s.state.wishlist[:i], s.state.wishlist[i+1:]...)
			s.persistLocked()
			return
		}
	}
}

// Wishlist returns the saved product ids.
func (s *Store) Wishlist() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.state.wishlist...)
}

// SetUser stores the signed-in user and their session token.
func (s *Store) SetUser(user User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.user = &user
	s.state.token = token
	s.persistLocked()
}

// Logout forgets the user and token. The cart is kept.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.user = nil
	s.state.token = ""
	s.persistLocked()
}

// User returns the signed-in user, if any.
func (s *Store) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.user == nil {
		return User{}, false
	}
	return *s.state.user, true
}

// Token returns the session token or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.token
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.user != nil
}

// AddRecentlyViewed moves product to the front of the history, dropping any
// older entry for it and trimming to the limit.
func (s *Store) AddRecentlyViewed(product Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recent := make([]Product, 0, s.recentLimit)
	recent = append(recent, product)
	for _, p := range s.state.recent {
		if len(recent) >= s.recentLimit {
			break
		}
		if p.ID != product.ID {
			recent = append(recent, p)
		}
	}
	s.state.recent = recent
	s.persistLocked()
}

// RecentlyViewed returns the history, most recent first.
func (s *Store) RecentlyViewed() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product{}, s.state.recent...)
}

// persistLocked writes the session through to the slot. Failures are logged
// and otherwise ignored; the in-memory session stays authoritative.
func (s *Store) persistLocked() {
	s.hydrated = true

	data, err := encodeSnapshot(&s.state)
	if err != nil {
		s.logger.WithError(err).Warn("failed to encode session")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()

	if err := s.slot.Save(ctx, data); err != nil {
		s.logger.WithError(err).Warn("failed to save session")
	}
}

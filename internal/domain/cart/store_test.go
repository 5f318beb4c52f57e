package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/beauty-store/internal/pkg/logger"
	"github.com/your-org/beauty-store/internal/pkg/pricing"
)

var lipstick = Product{
	ID:     "1",
	Name:   "Matte Lipstick Collection",
	Brand:  "MAC",
	Price:  decimal.NewFromInt(54),
	Images: []string{"https://images.unsplash.com/photo-1586495777744-4413f21062fa?w=600"},
}

var serum = Product{
	ID:    "7",
	Name:  "Advanced Night Repair Serum",
	Brand: "ESTÉE LAUDER",
	Price: decimal.RequireFromString("95.5"),
}

func newTestStore(slot Slot) *Store {
	return New(slot, WithLogger(logger.Discard()))
}

type failingSlot struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingSlot) Load(context.Context) ([]byte, error) { return nil, f.loadErr }
func (f *failingSlot) Save(context.Context, []byte) error {
	f.saves++
	return f.saveErr
}

func TestAddLine_MergesSameProductAndShade(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	s.AddLine(lipstick, "Ruby Woo", 1)
	s.AddLine(lipstick, "Ruby Woo", 2)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, "Ruby Woo", lines[0].Shade())
}

func TestAddLine_DistinctShadesAreDistinctLines(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	s.AddLine(lipstick, "Ruby Woo", 1)
	s.AddLine(lipstick, "Velvet Teddy", 1)
	s.AddLine(lipstick, "", 1)

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "Ruby Woo", lines[0].Shade())
	assert.Equal(t, "Velvet Teddy", lines[1].Shade())
	assert.Nil(t, lines[2].SelectedShade)
}

func TestAddLine_EmptyShadeMeansNoShade(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	s.AddLine(serum, "", 1)
	s.AddLine(serum, "   ", 1)

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Nil(t, lines[0].SelectedShade)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAddLine_ClampsQuantity(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	s.AddLine(serum, "", 0)
	s.AddLine(serum, "", -4)

	assert.Equal(t, 2, s.LineCount())
}

func TestAddLine_ThreeLipsticks(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	s.AddLine(lipstick, "Ruby Woo", 3)

	assert.Equal(t, 3, s.LineCount())
	assert.True(t, decimal.NewFromInt(162).Equal(s.TotalBase()))
}

func TestSetQuantity(t *testing.T) {
	s := newTestStore(NewMemorySlot())
	s.AddLine(lipstick, "Ruby Woo", 1)

	s.SetQuantity("1", "Ruby Woo", 5)
	assert.Equal(t, 5, s.LineCount())

	s.SetQuantity("1", "Lady Danger", 9)
	assert.Equal(t, 5, s.LineCount(), "unknown key is ignored")
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	a := newTestStore(NewMemorySlot())
	b := newTestStore(NewMemorySlot())
	for _, s := range []*Store{a, b} {
		s.AddLine(lipstick, "Ruby Woo", 2)
		s.AddLine(serum, "", 1)
	}

	a.SetQuantity("1", "Ruby Woo", 0)
	b.RemoveLine("1", "Ruby Woo")

	assert.Equal(t, b.Lines(), a.Lines())
	assert.Equal(t, 1, a.Len())
}

func TestRemoveLine_MissingIsNoop(t *testing.T) {
	slot := &failingSlot{}
	s := newTestStore(slot)
	s.AddLine(serum, "", 1)
	saves := slot.saves

	s.RemoveLine("nope", "")

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, saves, slot.saves)
}

func TestClear(t *testing.T) {
	s := newTestStore(NewMemorySlot())
	s.AddLine(lipstick, "Ruby Woo", 1)
	s.AddToWishlist("3")

	s.Clear()

	assert.Zero(t, s.Len())
	assert.True(t, s.TotalBase().IsZero())
	assert.Equal(t, []string{"3"}, s.Wishlist())
}

func TestTotal_MatchesConvertedBase(t *testing.T) {
	s := newTestStore(NewMemorySlot())
	s.AddLine(lipstick, "Ruby Woo", 2)
	s.AddLine(serum, "", 3)

	rate := decimal.RequireFromString("83.5")

	assert.True(t, decimal.RequireFromString("394.5").Equal(s.TotalBase()))
	assert.True(t, pricing.Convert(s.TotalBase(), rate).Equal(s.Total(rate)))
}

func TestLines_ReturnsCopy(t *testing.T) {
	s := newTestStore(NewMemorySlot())
	s.AddLine(lipstick, "Ruby Woo", 1)

	lines := s.Lines()
	lines[0].Quantity = 99
	*lines[0].SelectedShade = "changed"
	lines[0].Images[0] = "changed"

	fresh := s.Lines()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "Ruby Woo", fresh[0].Shade())
	assert.NotEqual(t, "changed", fresh[0].Images[0])
}

func TestWishlist_NoDuplicates(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	assert.True(t, s.AddToWishlist("1"))
	assert.False(t, s.AddToWishlist("1"))
	assert.True(t, s.AddToWishlist("2"))
	s.RemoveFromWishlist("1")

	assert.Equal(t, []string{"2"}, s.Wishlist())
}

func TestRecentlyViewed(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	for i := 0; i < 12; i++ {
		s.AddRecentlyViewed(Product{ID: fmt.Sprintf("p%d", i)})
	}
	s.AddRecentlyViewed(Product{ID: "p5"})

	recent := s.RecentlyViewed()
	require.Len(t, recent, 10)
	assert.Equal(t, "p5", recent[0].ID)
	assert.Equal(t, "p11", recent[1].ID)

	ids := map[string]int{}
	for _, p := range recent {
		ids[p.ID]++
	}
	assert.Equal(t, 1, ids["p5"])
}

func TestUserSession(t *testing.T) {
	s := newTestStore(NewMemorySlot())
	assert.False(t, s.IsAuthenticated())

	s.SetUser(User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: "user"}, "tok")
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "tok", s.Token())

	s.AddLine(serum, "", 1)
	s.Logout()
	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Equal(t, 1, s.Len())
}

func TestPersistence_RoundTrip(t *testing.T) {
	slot := NewMemorySlot()
	first := newTestStore(slot)
	first.AddLine(lipstick, "Ruby Woo", 2)
	first.AddLine(serum, "", 1)
	first.AddToWishlist("3")
	first.SetUser(User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: "user"}, "tok")
	first.AddRecentlyViewed(lipstick)

	second := newTestStore(slot)
	second.Rehydrate(context.Background())

	assert.Equal(t, first.Lines(), second.Lines())
	assert.Equal(t, first.Wishlist(), second.Wishlist())
	assert.Equal(t, first.Token(), second.Token())
	assert.True(t, first.TotalBase().Equal(second.TotalBase()))
	u, ok := second.User()
	require.True(t, ok)
	assert.Equal(t, "Asha", u.Name)
	require.Len(t, second.RecentlyViewed(), 1)
	assert.True(t, lipstick.Price.Equal(second.RecentlyViewed()[0].Price))
}

func TestPersistence_SnapshotLayout(t *testing.T) {
	slot := NewMemorySlot()
	s := newTestStore(slot)
	s.AddLine(lipstick, "", 1)

	data, err := slot.Load(context.Background())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.EqualValues(t, 0, raw["version"])

	state := raw["state"].(map[string]any)
	line := state["cart"].([]any)[0].(map[string]any)
	assert.Equal(t, "1", line["_id"])
	assert.EqualValues(t, 54, line["price"])
	assert.Nil(t, line["selectedShade"])
	assert.EqualValues(t, 1, line["quantity"])
	assert.Equal(t, false, state["isAuthenticated"])
	assert.Equal(t, []any{}, state["wishlist"])
}

func TestRehydrate_AcceptsQuotedAndNumericPrices(t *testing.T) {
	slot := NewMemorySlot()
	require.NoError(t, slot.Save(context.Background(), []byte(`{"state":{"cart":[
		{"_id":"1","name":"A","brand":"MAC","price":54,"images":[],"selectedShade":"Ruby Woo","quantity":1},
		{"_id":"2","name":"B","brand":"NARS","price":"49.5","images":[],"selectedShade":null,"quantity":2}
	]},"version":0}`)))

	s := newTestStore(slot)
	s.Rehydrate(context.Background())

	assert.True(t, decimal.NewFromInt(153).Equal(s.TotalBase()))
}

func TestRehydrate_RepairsInvalidLines(t *testing.T) {
	slot := NewMemorySlot()
	require.NoError(t, slot.Save(context.Background(), []byte(`{"state":{"cart":[
		{"_id":"1","price":54,"selectedShade":"Ruby Woo","quantity":0},
		{"_id":"2","price":10,"selectedShade":"","quantity":1},
		{"_id":"2","price":10,"selectedShade":null,"quantity":2},
		{"_id":"3","price":10,"selectedShade":null,"quantity":-1}
	],"wishlist":["1","1"]},"version":0}`)))

	s := newTestStore(slot)
	s.Rehydrate(context.Background())

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "2", lines[0].ProductID)
	assert.Nil(t, lines[0].SelectedShade)
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, []string{"1"}, s.Wishlist())
}

func TestRehydrate_CorruptOrMissingIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
	}{
		{"empty slot", NewMemorySlot()},
		{"garbage", func() Slot {
			m := NewMemorySlot()
			_ = m.Save(context.Background(), []byte("{not json"))
			return m
		}()},
		{"wrong shape", func() Slot {
			m := NewMemorySlot()
			_ = m.Save(context.Background(), []byte(`{"state":{"cart":"oops"},"version":0}`))
			return m
		}()},
		{"unknown version", func() Slot {
			m := NewMemorySlot()
			_ = m.Save(context.Background(), []byte(`{"state":{"cart":[]},"version":7}`))
			return m
		}()},
		{"read error", &failingSlot{loadErr: errors.New("disk gone")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(tt.slot)
			assert.NotPanics(t, func() { s.Rehydrate(context.Background()) })
			assert.Zero(t, s.Len())
			assert.False(t, s.IsAuthenticated())
		})
	}
}

func TestRehydrate_RunsOnce(t *testing.T) {
	slot := NewMemorySlot()
	writer := newTestStore(slot)
	writer.AddLine(serum, "", 1)

	s := newTestStore(slot)
	s.Rehydrate(context.Background())

	writer.AddLine(serum, "", 5)
	s.Rehydrate(context.Background())

	assert.Equal(t, 1, s.LineCount())
}

// readOnlySlot always loads the same snapshot and discards writes.
type readOnlySlot struct{ data []byte }

func (r readOnlySlot) Load(context.Context) ([]byte, error) { return r.data, nil }
func (r readOnlySlot) Save(context.Context, []byte) error   { return nil }

func TestRehydrate_DoesNotOverwriteLocalChanges(t *testing.T) {
	saved := NewMemorySlot()
	newTestStore(saved).AddLine(serum, "", 4)
	data, err := saved.Load(context.Background())
	require.NoError(t, err)

	s := newTestStore(readOnlySlot{data: data})
	s.AddLine(lipstick, "Ruby Woo", 1)
	s.Rehydrate(context.Background())

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "1", lines[0].ProductID)
}

func TestPersistence_SaveFailureIsSwallowed(t *testing.T) {
	slot := &failingSlot{saveErr: errors.New("quota exceeded")}
	s := newTestStore(slot)

	assert.NotPanics(t, func() {
		s.AddLine(lipstick, "Ruby Woo", 2)
		s.AddToWishlist("1")
	})

	assert.Equal(t, 2, s.LineCount())
	assert.Equal(t, 2, slot.saves)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := newTestStore(NewMemorySlot())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddLine(lipstick, "Ruby Woo", 1)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 20, s.LineCount())
}

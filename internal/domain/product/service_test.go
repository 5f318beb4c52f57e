package product

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
)

type memoryRepo struct {
	mu       sync.Mutex
	products map[string]Product
	order    []string
	lastList ListFilter
}

func newMemoryRepo() *memoryRepo { return &memoryRepo{products: map[string]Product{}} }

func (r *memoryRepo) List(_ context.Context, f ListFilter) ([]Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastList = f
	var all []Product
	for _, id := range r.order {
		if p, ok := r.products[id]; ok {
			all = append(all, p)
		}
	}
	total := int64(len(all))
	start := min(f.Offset(), len(all))
	end := min(start+f.Limit, len(all))
	return all[start:end], total, nil
}

func (r *memoryRepo) FindByID(_ context.Context, id string) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *memoryRepo) FindByIDs(_ context.Context, ids []string) ([]Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memoryRepo) Create(_ context.Context, products ...*Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		r.products[p.ID] = *p
		r.order = append(r.order, p.ID)
	}
	return nil
}

func (r *memoryRepo) Update(_ context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return apperrors.ErrNotFound
	}
	r.products[p.ID] = *p
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *memoryRepo) Count(context.Context) (int64, error) { return int64(len(r.products)), nil }

func (r *memoryRepo) DeleteAll(context.Context) error {
	r.products = map[string]Product{}
	r.order = nil
	return nil
}

func newTestService() (*Service, *memoryRepo) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	repo := newMemoryRepo()
	return NewService(repo, logger), repo
}

func TestProductListRequest_Filter(t *testing.T) {
	f := (&ProductListRequest{Category: "all", Brand: "MAC, DIOR,,", Search: "  matte ", Page: 0, Limit: 0}).Filter()
	assert.Equal(t, "", f.Category)
	assert.Equal(t, []string{"MAC", "DIOR"}, f.Brands)
	assert.Equal(t, "matte", f.Search)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.Limit)

	f = (&ProductListRequest{Category: "makeup", Page: 3, Limit: 500}).Filter()
	assert.Equal(t, "makeup", f.Category)
	assert.Nil(t, f.Brands)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 200, f.Offset())
}

func TestProductListRequest_HugePage(t *testing.T) {
	f := (&ProductListRequest{Page: math.MaxInt, Limit: math.MaxInt}).Filter()
	assert.Equal(t, 100000, f.Page)
	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 9999900, f.Offset())

	svc, repo := newTestService()
	require.NoError(t, repo.Create(context.Background(), SeedProducts(time.Now())...))
	resp, err := svc.GetProducts(context.Background(), &ProductListRequest{Page: math.MaxInt, Limit: 12})
	require.NoError(t, err)
	assert.Empty(t, resp.Products)
	assert.Equal(t, int64(6), resp.Total)
}

func TestGetProducts_Pagination(t *testing.T) {
	svc, repo := newTestService()
	require.NoError(t, repo.Create(context.Background(), SeedProducts(time.Now())...))

	resp, err := svc.GetProducts(context.Background(), &ProductListRequest{Page: 2, Limit: 4})
	require.NoError(t, err)

	assert.Equal(t, int64(6), resp.Total)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Products, 2)

	resp, err = svc.GetProducts(context.Background(), &ProductListRequest{Page: 1, Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalPages)
	assert.Len(t, resp.Products, 6)
}

func TestGetProducts_EmptyStore(t *testing.T) {
	svc, _ := newTestService()
	resp, err := svc.GetProducts(context.Background(), &ProductListRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.Total)
	assert.Zero(t, resp.TotalPages)
}

func TestCreateUpdateDelete(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, &ProductCreateRequest{
		Name: " Lip Glow ", Brand: "DIOR", Description: "Balm", Price: 38, Category: CategoryMakeup,
	})
	require.NoError(t, err)
	assert.Equal(t, "Lip Glow", created.Name)
	assert.NotNil(t, created.Images)
	assert.NotNil(t, created.Reviews)

	price := 42.0
	featured := true
	updated, err := svc.UpdateProduct(ctx, created.ID, &ProductUpdateRequest{Price: &price, Featured: &featured})
	require.NoError(t, err)
	assert.Equal(t, 42.0, updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Lip Glow", updated.Name)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, "Product not found", apperrors.Message(err))

	err = svc.DeleteProduct(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateProduct(ctx, created.ID, &ProductUpdateRequest{Price: &price})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAddReview_RecomputesRating(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seed := SeedProducts(time.Now())
	require.NoError(t, repo.Create(ctx, seed[0]))

	p, err := svc.AddReview(ctx, seed[0].ID, Reviewer{ID: "u1", Name: "Asha"}, &ReviewRequest{Rating: 5, Comment: " Lovely "})
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Rating)
	assert.Equal(t, "Lovely", p.Reviews[0].Comment)

	p, err = svc.AddReview(ctx, seed[0].ID, Reviewer{ID: "u2", Name: "Ben"}, &ReviewRequest{Rating: 4})
	require.NoError(t, err)
	p, err = svc.AddReview(ctx, seed[0].ID, Reviewer{ID: "u3", Name: "Cleo"}, &ReviewRequest{Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, 4.3, p.Rating)

	_, err = svc.AddReview(ctx, seed[0].ID, Reviewer{ID: "u1", Name: "Asha"}, &ReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)

	_, err = svc.AddReview(ctx, "missing", Reviewer{ID: "u1"}, &ReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetProductsByIDs_KeepsOrderAndSkipsMissing(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	seed := SeedProducts(time.Now())
	require.NoError(t, repo.Create(ctx, seed...))

	got, err := svc.GetProductsByIDs(ctx, []string{seed[2].ID, "gone", seed[0].ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, seed[2].ID, got[0].ID)
	assert.Equal(t, seed[0].ID, got[1].ID)

	got, err = svc.GetProductsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProductHelpers(t *testing.T) {
	p := Product{Price: 185, Discount: 15, Stock: 0}
	assert.Equal(t, 157.25, p.DiscountedPrice())
	assert.False(t, p.IsInStock())
	assert.True(t, IsValidCategory("skincare"))
	assert.False(t, IsValidCategory("haircare"))

	p.RecalculateRating()
	assert.Zero(t, p.Rating)
}

func TestSeedProducts(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := SeedProducts(now)
	require.Len(t, seed, 6)
	assert.Equal(t, "MAC", seed[0].Brand)
	assert.Len(t, seed[0].Shades, 3)
	assert.Equal(t, 15, seed[2].Discount)
	assert.True(t, seed[5].CreatedAt.After(seed[0].CreatedAt))
	assert.NotEqual(t, seed[0].ID, seed[1].ID)
}

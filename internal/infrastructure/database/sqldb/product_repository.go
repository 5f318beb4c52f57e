package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/beauty-store/internal/domain/product"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"gorm.io/gorm"
)

// ProductRepository stores products in a relational database.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, f product.ListFilter) ([]product.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&product.Product{})

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if len(f.Brands) > 0 {
		query = query.Where("brand IN ?", f.Brands)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.Search != "" {
		search := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(brand) LIKE ?)", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	var products []product.Product
	err := query.Order(orderClause(f.Sort)).
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

func orderClause(sort string) string {
	switch sort {
	case product.SortPriceLow:
		return "price ASC, created_at DESC"
	case product.SortPriceHigh:
		return "price DESC, created_at DESC"
	case product.SortRating:
		return "rating DESC, created_at DESC"
	case product.SortNewest:
		return "created_at DESC"
	default:
		return "featured DESC, created_at DESC"
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var p product.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	var products []product.Product
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) Create(ctx context.Context, products ...*product.Product) error {
	if len(products) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(products).Error; err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	result := r.db.WithContext(ctx).Model(p).Select("*").Omit("created_at").Updates(p)
	if result.Error != nil {
		return fmt.Errorf("update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&product.Product{})
	if result.Error != nil {
		return fmt.Errorf("delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&product.Product{}).Count(&n).Error
	return n, err
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&product.Product{}).Error
}

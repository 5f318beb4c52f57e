// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
)

const (
	defaultLimit = 12
	maxLimit     = 100
	// keeps (page-1)*limit far from overflowing; pages past the catalog are
	// empty anyway
	maxPage = 100000
)

// Service handles product business logic
type Service struct {
	repo   Repository
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewService creates a new product service
func NewService(repo Repository, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Category string   `form:"category"`
	Brand    string   `form:"brand"` // comma-separated
	MinPrice *float64 `form:"minPrice"`
	MaxPrice *float64 `form:"maxPrice"`
	Sort     string   `form:"sort"`
	Search   string   `form:"search"`
	Page     int      `form:"page,default=1"`
	Limit    int      `form:"limit,default=12"`
}

// ProductListResponse is one page of products
type ProductListResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Brand       string   `json:"brand" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Category    string   `json:"category" binding:"required,oneof=makeup skincare fragrance"`
	Images      []string `json:"images"`
	Shades      []Shade  `json:"shades"`
	Rating      float64  `json:"rating" binding:"gte=0,lte=5"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Discount    int      `json:"discount" binding:"gte=0,lte=100"`
	IsNew       bool     `json:"isNew"`
	Featured    bool     `json:"featured"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name        *string   `json:"name"`
	Brand       *string   `json:"brand"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price" binding:"omitempty,gt=0"`
	Category    *string   `json:"category" binding:"omitempty,oneof=makeup skincare fragrance"`
	Images      *[]string `json:"images"`
	Shades      *[]Shade  `json:"shades"`
	Rating      *float64  `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Stock       *int      `json:"stock" binding:"omitempty,gte=0"`
	Discount    *int      `json:"discount" binding:"omitempty,gte=0,lte=100"`
	IsNew       *bool     `json:"isNew"`
	Featured    *bool     `json:"featured"`
}

// ReviewRequest is a new customer review
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// Reviewer identifies who wrote a review
type Reviewer struct {
	ID   string
	Name string
}

// Filter normalizes the request into a repository filter.
func (r *ProductListRequest) Filter() ListFilter {
	f := ListFilter{
		Category: r.Category,
		MinPrice: r.MinPrice,
		MaxPrice: r.MaxPrice,
		Search:   strings.TrimSpace(r.Search),
		Sort:     r.Sort,
		Page:     r.Page,
		Limit:    r.Limit,
	}
	if f.Category == "all" {
		f.Category = ""
	}
	for _, b := range strings.Split(r.Brand, ",") {
		if b = strings.TrimSpace(b); b != "" {
			f.Brands = append(f.Brands, b)
		}
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > maxPage {
		f.Page = maxPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(ctx context.Context, req *ProductListRequest) (*ProductListResponse, error) {
	filter := req.Filter()

	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to list products: %w", err))
	}
	for i := range products {
		products[i].normalize()
	}

	return &ProductListResponse{
		Products:   products,
		Total:      total,
		Page:       filter.Page,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
	}, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NotFound("Product")
	}
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to retrieve product: %w", err))
	}
	product.normalize()
	return product, nil
}

// GetProductsByIDs returns the products that still exist, in id order.
func (s *Service) GetProductsByIDs(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}
	found, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to retrieve products: %w", err))
	}

	byID := make(map[string]Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	products := make([]Product, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			p.normalize()
			products = append(products, p)
		}
	}
	return products, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(ctx context.Context, req *ProductCreateRequest) (*Product, error) {
	now := s.now()
	product := &Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Brand:       strings.TrimSpace(req.Brand),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		Shades:      req.Shades,
		Rating:      req.Rating,
		Stock:       req.Stock,
		Discount:    req.Discount,
		IsNew:       req.IsNew,
		Featured:    req.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	product.normalize()

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to create product: %w", err))
	}

	s.logger.WithFields(logrus.Fields{"product_id": product.ID, "name": product.Name}).Info("Product created")
	return product, nil
}

// UpdateProduct applies the fields present in req
func (s *Service) UpdateProduct(ctx context.Context, id string, req *ProductUpdateRequest) (*Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Brand != nil {
		product.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Shades != nil {
		product.Shades = *req.Shades
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Discount != nil {
		product.Discount = *req.Discount
	}
	if req.IsNew != nil {
		product.IsNew = *req.IsNew
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
	product.UpdatedAt = s.now()
	product.normalize()

	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("Product")
		}
		return nil, apperrors.Internal(fmt.Errorf("failed to update product: %w", err))
	}
	return product, nil
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NotFound("Product")
	}
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to delete product: %w", err))
	}
	s.logger.WithField("product_id", id).Info("Product deleted")
	return nil
}

// AddReview appends a review and recomputes the product rating
func (s *Service) AddReview(ctx context.Context, productID string, reviewer Reviewer, req *ReviewRequest) (*Product, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	for _, r := range product.Reviews {
		if r.User == reviewer.ID {
			return nil, apperrors.AlreadyExists("Product already reviewed")
		}
	}

	product.Reviews = append(product.Reviews, Review{
		User:      reviewer.ID,
		Name:      reviewer.Name,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
		CreatedAt: s.now(),
	})
	product.RecalculateRating()
	product.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to save review: %w", err))
	}
	return product, nil
}

// Count returns the number of products.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/domain/product"
	"github.com/your-org/beauty-store/internal/domain/user"
	"github.com/your-org/beauty-store/internal/interfaces/http/middleware"
)

// ReviewHandler handles review-related HTTP requests
type ReviewHandler struct {
	productService *product.Service
	userService    *user.Service
	logger         logrus.FieldLogger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(productService *product.Service, userService *user.Service, logger logrus.FieldLogger) *ReviewHandler {
	return &ReviewHandler{
		productService: productService,
		userService:    userService,
		logger:         logger,
	}
}

// CreateReview handles POST /products/:id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req product.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	author, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	p, err := h.productService.AddReview(c.Request.Context(), c.Param("id"),
		product.Reviewer{ID: author.ID, Name: author.Name}, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": p})
}

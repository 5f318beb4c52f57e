// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/domain/product"
	"github.com/your-org/beauty-store/internal/domain/user"
	"github.com/your-org/beauty-store/internal/interfaces/http/middleware"
)

// WishlistHandler handles the signed-in user's wishlist
type WishlistHandler struct {
	userService    *user.Service
	productService *product.Service
	logger         logrus.FieldLogger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(userService *user.Service, productService *product.Service, logger logrus.FieldLogger) *WishlistHandler {
	return &WishlistHandler{
		userService:    userService,
		productService: productService,
		logger:         logger,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	ids, err := h.userService.GetWishlist(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	products, err := h.productService.GetProductsByIDs(c.Request.Context(), ids)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": nonNil(ids), "products": nonNil(products)})
}

// AddToWishlist handles POST /wishlist/:productId
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	productID := c.Param("productId")
	if _, err := h.productService.GetProduct(c.Request.Context(), productID); err != nil {
		respondError(c, h.logger, err)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	ids, err := h.userService.AddToWishlist(c.Request.Context(), userID, productID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": nonNil(ids)})
}

// RemoveFromWishlist handles DELETE /wishlist/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	ids, err := h.userService.RemoveFromWishlist(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"wishlist": nonNil(ids)})
}

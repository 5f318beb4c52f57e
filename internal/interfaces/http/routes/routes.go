// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/domain/analytics"
	"github.com/your-org/beauty-store/internal/domain/order"
	"github.com/your-org/beauty-store/internal/domain/product"
	"github.com/your-org/beauty-store/internal/domain/user"
	"github.com/your-org/beauty-store/internal/infrastructure/database"
	"github.com/your-org/beauty-store/internal/interfaces/http/handlers"
	"github.com/your-org/beauty-store/internal/interfaces/http/middleware"
	"github.com/your-org/beauty-store/internal/pkg/pdf"
)

// Dependencies are the services the API routes are built from.
type Dependencies struct {
	Tokens    middleware.TokenValidator
	Users     *user.Service
	Products  *product.Service
	Orders    *order.Service
	Analytics *analytics.Service
	Invoices  *pdf.Service
	// Seeder is nil outside development; /seed is not routed then.
	Seeder *database.Seeder
	Logger logrus.FieldLogger
}

// accounts is the resolver handed to the auth middleware.
func (d Dependencies) accounts() middleware.AccountResolver {
	if d.Users == nil {
		return nil
	}
	return d.Users
}

// SetupRoutes registers every API route on rg.
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	SetupAuthRoutes(rg, deps)
	SetupProductRoutes(rg, deps)
	SetupOrderRoutes(rg, deps)
	SetupWishlistRoutes(rg, deps)
	SetupAdminRoutes(rg, deps)

	if deps.Seeder != nil {
		seedHandler := handlers.NewSeedHandler(deps.Seeder, deps.Logger)
		rg.POST("/seed", seedHandler.Seed)
	}
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Logger)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.AuthMiddleware(deps.Tokens, deps.accounts()), authHandler.GetCurrentUser)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Products, deps.Logger)
	reviewHandler := handlers.NewReviewHandler(deps.Products, deps.Users, deps.Logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("/:id/reviews", middleware.AuthMiddleware(deps.Tokens, deps.accounts()), reviewHandler.CreateReview)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(deps.Tokens, deps.accounts()), middleware.AdminMiddleware())
		{
			admin.POST("", productHandler.CreateProduct)
			admin.PUT("/:id", productHandler.UpdateProduct)
			admin.DELETE("/:id", productHandler.DeleteProduct)
		}
	}
}

// SetupOrderRoutes sets up order related routes
func SetupOrderRoutes(rg *gin.RouterGroup, deps Dependencies) {
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Logger)
	invoiceHandler := handlers.NewInvoiceHandler(deps.Orders, deps.Invoices, deps.Logger)

	orders := rg.Group("/orders")
	{
		// guests can check out
		orders.POST("", middleware.OptionalAuthMiddleware(deps.Tokens, deps.accounts()), orderHandler.CreateOrder)

		protected := orders.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.accounts()))
		{
			protected.GET("", orderHandler.GetOrders)
			protected.GET("/:id", orderHandler.GetOrder)
			protected.GET("/:id/invoice", invoiceHandler.GenerateInvoice)
		}
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, deps Dependencies) {
	wishlistHandler := handlers.NewWishlistHandler(deps.Users, deps.Products, deps.Logger)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.AuthMiddleware(deps.Tokens, deps.accounts()))
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/:productId", wishlistHandler.AddToWishlist)
		wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
	}
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, deps Dependencies) {
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Analytics, deps.Logger)
	orderHandler := handlers.NewOrderHandler(deps.Orders, deps.Logger)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Tokens, deps.accounts()))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.GET("/stats", analyticsHandler.GetDashboard)
		admin.GET("/orders", orderHandler.AdminGetOrders)
		admin.PUT("/orders/:id", orderHandler.AdminUpdateOrderStatus)
	}
}

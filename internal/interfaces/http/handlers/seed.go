package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/infrastructure/database"
)

// SeedHandler resets the store with demo data. Only routed in development.
type SeedHandler struct {
	seeder *database.Seeder
	logger logrus.FieldLogger
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seeder *database.Seeder, logger logrus.FieldLogger) *SeedHandler {
	return &SeedHandler{seeder: seeder, logger: logger}
}

// Seed handles POST /seed
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seeder.Seed(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Database seeded successfully",
		"products": result.Products,
		"admin":    result.Admin,
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/beauty-store/internal/interfaces/http/middleware"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
)

// respondError writes err as {"message": ...} with the status it maps to.
// Server errors are logged with their cause; the client only sees
// "Server error".
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.ContextRequestID),
			"path":       c.FullPath(),
		}).Error("Request failed")
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"message": apperrors.Message(err)})
}

// respondBindError reports a malformed request body or query.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Invalid request data",
		"details": err.Error(),
	})
}

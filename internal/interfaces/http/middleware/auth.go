// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/beauty-store/internal/pkg/apperrors"
	"github.com/your-org/beauty-store/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
	ContextClaims = "token_claims"
)

const roleAdmin = "admin"

// TokenValidator verifies session tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// AccountResolver reloads the account a token was issued for and returns its
// current role.
type AccountResolver interface {
	ResolveRole(ctx context.Context, userID string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer token. With a
// non-nil resolver the account must still exist and its stored role wins
// over the role in the token.
func AuthMiddleware(tokens TokenValidator, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "No token, authorization denied",
			})
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Token is not valid",
			})
			return
		}

		claims, err = resolve(c.Request.Context(), accounts, claims)
		if err != nil {
			switch apperrors.HTTPStatus(err) {
			case http.StatusUnauthorized, http.StatusNotFound:
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message": "Token is not valid",
				})
			default:
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Server error",
				})
			}
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// AdminMiddleware ensures the user is an admin. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdminFromContext(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Access denied. Admin only.",
			})
			return
		}
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token for an existing
// account is sent and lets the request through either way.
func OptionalAuthMiddleware(tokens TokenValidator, accounts AccountResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if tokenString != "" {
			if claims, err := tokens.ValidateToken(tokenString); err == nil {
				if claims, err = resolve(c.Request.Context(), accounts, claims); err == nil {
					setClaims(c, claims)
				}
			}
		}
		c.Next()
	}
}

func resolve(ctx context.Context, accounts AccountResolver, claims *auth.Claims) (*auth.Claims, error) {
	if accounts == nil {
		return claims, nil
	}
	role, err := accounts.ResolveRole(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	resolved := *claims
	resolved.Role = role
	return &resolved, nil
}

func setClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextClaims, claims)
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextUserID)
	return userID, userID != ""
}

// IsAdminFromContext checks if user is admin from gin context
func IsAdminFromContext(c *gin.Context) bool {
	return c.GetString(ContextRole) == roleAdmin
}

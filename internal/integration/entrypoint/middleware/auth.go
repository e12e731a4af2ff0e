// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/auth"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserKey is the context key for the authenticated *entity.User.
	UserKey ContextKey = "user"
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
)

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	resolveCaller *auth.ResolveCallerUseCase
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(resolveCaller *auth.ResolveCallerUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		resolveCaller: resolveCaller,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
// A missing token is 401; a token that fails validation or whose user is gone is 403.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		token = strings.TrimSpace(token)
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Message: "Access token required",
				Code:    string(domainerror.ErrCodeMissingToken),
			})
			return
		}

		user, err := m.resolveCaller.Execute(c.Request.Context(), token)
		if err != nil {
			var authErr *domainerror.AuthError
			if errors.As(err, &authErr) {
				c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
					Message: "Invalid or expired token",
					Code:    string(authErr.Code),
				})
				return
			}
			slog.Error("Failed to resolve caller", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
				Message: "Internal server error",
			})
			return
		}

		c.Set(string(UserKey), user)
		c.Set(string(UserIDKey), user.ID)
		c.Next()
	}
}

// RequireRoles rejects callers whose current role is not listed.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok || !user.HasRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Message: "Unauthorized: insufficient permissions",
				Code:    string(domainerror.ErrCodeInsufficientRole),
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects callers that are not company Admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromContext(c)
		if !ok || user.Role != entity.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Message: "Admin access required",
				Code:    string(domainerror.ErrCodeAdminRequired),
			})
			return
		}
		c.Next()
	}
}

// GetUserFromContext extracts the authenticated user from the Gin context.
func GetUserFromContext(c *gin.Context) (*entity.User, bool) {
	value, exists := c.Get(string(UserKey))
	if !exists {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok && user != nil
}

// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bitbank/ledger/internal/application/adapter"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
	"github.com/bitbank/ledger/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// MemberIDKey is the context key for the authenticated member's ID.
const MemberIDKey ContextKey = "member_id"

// AuthMiddleware provides JWT authentication middleware.
type AuthMiddleware struct {
	verifier adapter.TokenVerifier
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(verifier adapter.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// Authenticate returns a Gin middleware handler that enforces JWT authentication.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid authorization header format",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Token is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			return
		}

		claims, err := m.verifier.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			message := "Invalid or expired token"
			if errors.Is(err, domainerror.ErrMissingMemberClaim) {
				message = "Token does not identify a member"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: message,
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			return
		}

		c.Set(string(MemberIDKey), claims.MemberID)

		c.Next()
	}
}

// GetMemberIDFromContext extracts the authenticated member ID from the Gin context.
func GetMemberIDFromContext(c *gin.Context) (int64, bool) {
	memberID, exists := c.Get(string(MemberIDKey))
	if !exists {
		return 0, false
	}
	id, ok := memberID.(int64)
	return id, ok
}

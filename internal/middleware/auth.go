package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"expensehub/internal/auth"
	apperrors "expensehub/internal/errors"
)

// UserIDKey is the gin context key holding the authenticated user ID.
const UserIDKey = "userID"

// AuthMiddleware verifies the bearer token and sets the user ID in the context.
// Every token failure produces the same INVALID_TOKEN response.
func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}

		scheme, tokenString, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
			abortWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		userID, err := tokens.Resolve(tokenString)
		if err != nil {
			abortWithError(c, apperrors.ErrInvalidToken)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

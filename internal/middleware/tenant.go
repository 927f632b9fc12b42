package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/services"
)

const (
	// TenantHeader carries the tenant selector. It is the only place the
	// selector is read from.
	TenantHeader = "X-Tenant-ID"
	// TenantContextKey is the gin context key holding *services.TenantContext.
	TenantContextKey = "tenantContext"
)

// TenantContext resolves the request's tenant and checks the caller's
// membership. It must run after AuthMiddleware.
func TenantContext(resolver services.TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey)
		if userID == "" {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		tc, err := resolver.Resolve(c.Request.Context(), userID, c.GetHeader(TenantHeader))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(TenantContextKey, tc)
		c.Next()
	}
}

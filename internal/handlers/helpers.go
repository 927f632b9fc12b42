package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/logger"
	"expensehub/internal/middleware"
	"expensehub/internal/services"
	"expensehub/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// getTenantContext returns the tenant resolved by middleware.TenantContext.
// Handlers never read the tenant id from anywhere else.
func getTenantContext(c *gin.Context) (*services.TenantContext, error) {
	v, exists := c.Get(middleware.TenantContextKey)
	if !exists {
		return nil, apperrors.ErrMissingTenantSelector
	}
	tc, ok := v.(*services.TenantContext)
	if !ok || tc == nil || tc.Tenant == nil {
		return nil, apperrors.ErrMissingTenantSelector
	}
	return tc, nil
}

// requestScope returns the caller's user ID and the resolved tenant ID.
func requestScope(c *gin.Context) (userID, tenantID string, err error) {
	userID, err = getUserID(c)
	if err != nil {
		return "", "", err
	}
	tc, err := getTenantContext(c)
	if err != nil {
		return "", "", err
	}
	return userID, tc.Tenant.ID, nil
}

// parsePathID reads a UUID path parameter and returns its canonical form.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseQueryID reads an optional UUID query parameter. An empty value yields nil.
func parseQueryID(c *gin.Context, key string) (*string, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid "+key)
	}
	return &id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

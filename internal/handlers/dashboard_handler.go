package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"expensehub/internal/services"
)

// DashboardHandler serves tenant-wide expense aggregates.
type DashboardHandler struct {
	statsService services.StatsServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(statsService services.StatsServicer) *DashboardHandler {
	return &DashboardHandler{statsService: statsService}
}

// GetStats returns the dashboard figures for the current tenant
// @Summary     Dashboard statistics
// @Description Totals, current-month total, per-category breakdown and a six-month trend for the current tenant
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Success     200 {object} services.DashboardStats "Dashboard statistics"
// @Failure     400 {object} ErrorResponse "Missing tenant"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member of the tenant"
// @Failure     404 {object} ErrorResponse "Tenant not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	tc, err := getTenantContext(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), tc.Tenant.ID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
	"expensehub/internal/services"
	"expensehub/internal/uuid"
)

// TenantHandler handles tenant and membership requests.
type TenantHandler struct {
	tenantService services.TenantServicer
	auditService  services.AuditServicer
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService services.TenantServicer, auditService services.AuditServicer) *TenantHandler {
	return &TenantHandler{tenantService: tenantService, auditService: auditService}
}

// CreateTenantRequest represents the request payload for creating a tenant
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Plan string `json:"plan" binding:"max=50"`
}

// JoinTenantRequest represents the request payload for joining a tenant
type JoinTenantRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
}

// TenantResponse wraps a single tenant
type TenantResponse struct {
	Tenant models.Tenant `json:"tenant"`
}

// TenantListResponse wraps the caller's tenants
type TenantListResponse struct {
	Tenants []services.TenantWithRole `json:"tenants"`
}

// MemberListResponse wraps a tenant's members
type MemberListResponse struct {
	Members []services.MemberView `json:"members"`
}

// ListTenants returns the caller's tenants
// @Summary     List my tenants
// @Description List every tenant the caller belongs to, with the caller's role
// @Tags        tenants
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} TenantListResponse "Tenants"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tenants, err := h.tenantService.ListUserTenants(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if tenants == nil {
		tenants = []services.TenantWithRole{}
	}

	c.JSON(http.StatusOK, gin.H{"tenants": tenants})
}

// CreateTenant creates a tenant owned by the caller
// @Summary     Create a tenant
// @Description Create a tenant; the caller becomes its owner
// @Tags        tenants
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTenantRequest true "Tenant details"
// @Success     201 {object} TenantResponse "Tenant created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), userID, req.Name, req.Plan)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenant.ID, userID, "CREATE_TENANT", "tenant", tenant.ID, c.ClientIP(),
		map[string]interface{}{"name": tenant.Name, "plan": tenant.Plan})

	c.JSON(http.StatusCreated, gin.H{"tenant": tenant})
}

// JoinTenant adds the caller to an existing tenant as a member
// @Summary     Join a tenant
// @Description Join an existing tenant with the member role
// @Tags        tenants
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body JoinTenantRequest true "Tenant to join"
// @Success     200 {object} TenantResponse "Joined tenant"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Tenant not found"
// @Failure     409 {object} ErrorResponse "Already a member"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tenants/join [post]
func (h *TenantHandler) JoinTenant(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req JoinTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	tenantID, err := uuid.Parse(req.TenantID)
	if err != nil {
		respondWithError(c, apperrors.ErrTenantNotFound)
		return
	}

	tenant, err := h.tenantService.JoinTenant(c.Request.Context(), userID, tenantID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenant.ID, userID, "JOIN_TENANT", "tenant", tenant.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"tenant": tenant})
}

// ListMembers returns the members of a tenant the caller belongs to
// @Summary     List tenant members
// @Description List a tenant's memberships with user name and email
// @Tags        tenants
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Tenant ID"
// @Success     200 {object} MemberListResponse "Members"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member"
// @Failure     404 {object} ErrorResponse "Tenant not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tenants/{id}/users [get]
func (h *TenantHandler) ListMembers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tenantID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	members, err := h.tenantService.ListMembers(c.Request.Context(), userID, tenantID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if members == nil {
		members = []services.MemberView{}
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}

// DeleteTenant deletes a tenant and everything it owns
// @Summary     Delete a tenant
// @Description Delete a tenant with its expenses, groups, categories and memberships. Owner only.
// @Tags        tenants
// @Security    BearerAuth
// @Param       id path string true "Tenant ID"
// @Success     204 "Tenant deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not the owner"
// @Failure     404 {object} ErrorResponse "Tenant not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tenants/{id} [delete]
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	tenantID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), userID, tenantID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenantID, userID, "DELETE_TENANT", "tenant", tenantID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

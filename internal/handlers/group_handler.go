package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
	"expensehub/internal/services"
)

// GroupHandler handles group-related requests
type GroupHandler struct {
	groupService services.GroupServicer
	auditService    services.AuditServicer
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService services.GroupServicer, auditService services.AuditServicer) *GroupHandler {
	return &GroupHandler{groupService: groupService, auditService: auditService}
}

// CreateGroupRequest represents the request payload for creating a group
type CreateGroupRequest struct {
	Name string              `json:"name" binding:"required,max=100"`
	Type models.GroupType `json:"type" binding:"omitempty,group_type"`
}

// UpdateGroupRequest represents the request payload for updating a group.
// Omitted fields are left unchanged.
type UpdateGroupRequest struct {
	Name *string              `json:"name" binding:"omitempty,min=1,max=100"`
	Type *models.GroupType `json:"type" binding:"omitempty,group_type"`
}

// GroupResponse wraps a single group
type GroupResponse struct {
	Group models.Group `json:"group"`
}

// GroupListResponse wraps a list of groups
type GroupListResponse struct {
	Groups []models.Group `json:"groups"`
}

// CreateGroup handles the creation of a new group
// @Summary     Create a group
// @Description Create a group in the current tenant
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       request body CreateGroupRequest true "Group details"
// @Success     201 {object} GroupResponse "Group created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     403 {object} ErrorResponse "Not a member of the tenant"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [post]
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	userID, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), tenantID, req.Name, req.Type)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenantID, userID, "CREATE_GROUP", "group", group.ID, c.ClientIP(),
		map[string]interface{}{"name": group.Name, "type": group.Type})

	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// ListGroups handles the retrieval of the tenant's groups
// @Summary     List groups
// @Description List the current tenant's groups, optionally filtered by type
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true  "Tenant ID"
// @Param       type        query  string false "Filter by group type (family, trip, event)"
// @Success     200 {object} GroupListResponse "Groups"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups [get]
func (h *GroupHandler) ListGroups(c *gin.Context) {
	_, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var groupType *models.GroupType
	if v := c.Query("type"); v != "" {
		t := models.GroupType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid type"))
			return
		}
		groupType = &t
	}

	groups, err := h.groupService.ListGroups(c.Request.Context(), tenantID, groupType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if groups == nil {
		groups = []models.Group{}
	}

	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup handles the retrieval of a single group
// @Summary     Get a group
// @Tags        groups
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       id          path   string true "Group ID"
// @Success     200 {object} GroupResponse "Group"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id} [get]
func (h *GroupHandler) GetGroup(c *gin.Context) {
	_, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	group, err := h.groupService.GetGroup(c.Request.Context(), tenantID, groupID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// UpdateGroup handles partial updates of a group
// @Summary     Update a group
// @Tags        groups
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       id          path   string true "Group ID"
// @Param       request body UpdateGroupRequest true "Fields to change"
// @Success     200 {object} GroupResponse "Group updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id} [put]
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	userID, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), tenantID, groupID, services.GroupPatch{
		Name: req.Name,
		Type: req.Type,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenantID, userID, "UPDATE_GROUP", "group", group.ID, c.ClientIP(),
		map[string]interface{}{"name": group.Name, "type": group.Type})

	c.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteGroup handles deletion of a group. Its expenses are deleted with it.
// @Summary     Delete a group
// @Tags        groups
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       id          path   string true "Group ID"
// @Success     204 "Group deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /groups/{id} [delete]
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	userID, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	groupID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), tenantID, groupID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenantID, userID, "DELETE_GROUP", "group", groupID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

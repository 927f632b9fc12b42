package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
	"expensehub/internal/optional"
	"expensehub/internal/pagination"
	"expensehub/internal/services"
	"expensehub/internal/uuid"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for creating an expense.
// Amount is required but its sign is not checked.
type CreateExpenseRequest struct {
	GroupID     *string  `json:"group_id"`
	CategoryID  *string  `json:"category_id"`
	Amount      *float64 `json:"amount" binding:"required"`
	Date        *string  `json:"date" binding:"omitempty,iso_date" example:"2024-02-20"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
}

// UpdateExpenseRequest is a partial update. Keys left out of the payload are
// not changed; null clears group_id, category_id and description.
type UpdateExpenseRequest struct {
	GroupID     optional.Field[string]  `json:"group_id" swaggertype:"string"`
	CategoryID  optional.Field[string]  `json:"category_id" swaggertype:"string"`
	Amount      optional.Field[float64] `json:"amount" swaggertype:"number"`
	Date        optional.Field[string]  `json:"date" swaggertype:"string" example:"2024-02-20"`
	Description optional.Field[string]  `json:"description" swaggertype:"string"`
}

// ExpenseResponse wraps a single expense
type ExpenseResponse struct {
	Expense services.ExpenseView `json:"expense"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record an expense in the current tenant. Without group_id it is personal; without date it is dated today.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Group or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.ExpenseInput{
		Amount:      *req.Amount,
		Description: req.Description,
	}
	if input.GroupID, err = canonicalRef(req.GroupID, apperrors.ErrGroupNotFound); err != nil {
		respondWithError(c, err)
		return
	}
	if input.CategoryID, err = canonicalRef(req.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
		respondWithError(c, err)
		return
	}
	if req.Date != nil {
		d, _ := time.Parse(models.DateLayout, *req.Date)
		input.Date = &d
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenantID, userID, "CREATE_EXPENSE", "expense", expense.ID, c.ClientIP(),
		map[string]interface{}{"amount": expense.Amount, "date": expense.Date, "group_id": expense.GroupID})

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// ListExpenses handles the retrieval of the tenant's expenses
// @Summary     List expenses
// @Description Paginated expenses of the current tenant, newest first
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true  "Tenant ID"
// @Param       group_id    query  string false "Only expenses of this group"
// @Param       category_id query  string false "Only expenses of this category"
// @Param       personal    query  bool   false "Only expenses without a group"
// @Param       page        query  int    false "Page number (default 1)"
// @Param       page_size   query  int    false "Items per page (default 50, max 200)"
// @Success     200 {object} pagination.PageResponse[services.ExpenseView] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	_, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), tenantID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetExpense handles the retrieval of a single expense
// @Summary     Get an expense
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       id          path   string true "Expense ID"
// @Success     200 {object} ExpenseResponse "Expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	_, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), tenantID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// UpdateExpense handles partial updates of an expense
// @Summary     Update an expense
// @Description Change only the supplied fields. null clears group_id, category_id or description.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       id          path   string true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to change"
// @Success     200 {object} ExpenseResponse "Expense updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense, group or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), tenantID, expenseID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenantID, userID, "UPDATE_EXPENSE", "expense", expense.ID, c.ClientIP(), req.changes())

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deletion of an expense
// @Summary     Delete an expense
// @Tags        expenses
// @Security    BearerAuth
// @Param       X-Tenant-ID header string true "Tenant ID"
// @Param       id          path   string true "Expense ID"
// @Success     204 "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, tenantID, err := requestScope(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), tenantID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(c.Request.Context(), tenantID, userID, "DELETE_EXPENSE", "expense", expenseID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var filter services.ExpenseFilter
	var err error

	if filter.GroupID, err = parseQueryID(c, "group_id"); err != nil {
		return filter, err
	}
	if filter.CategoryID, err = parseQueryID(c, "category_id"); err != nil {
		return filter, err
	}
	if v := c.Query("personal"); v != "" {
		personal, parseErr := strconv.ParseBool(v)
		if parseErr != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid personal flag")
		}
		filter.PersonalOnly = personal
	}

	return filter, nil
}

// canonicalRef normalizes a referenced id. A malformed id cannot name a row,
// so it is reported with the referenced entity's not-found error.
func canonicalRef(id *string, notFound *apperrors.AppError) (*string, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := uuid.Parse(*id)
	if err != nil {
		return nil, notFound
	}
	return &parsed, nil
}

func canonicalRefField(f optional.Field[string], notFound *apperrors.AppError) (optional.Field[string], error) {
	if !f.IsSet() {
		return f, nil
	}
	parsed, err := uuid.Parse(f.Value)
	if err != nil {
		return f, notFound
	}
	return optional.Of(parsed), nil
}

func (r UpdateExpenseRequest) toPatch() (services.ExpensePatch, error) {
	patch := services.ExpensePatch{
		Amount:      r.Amount,
		Description: r.Description,
	}

	var err error
	if patch.GroupID, err = canonicalRefField(r.GroupID, apperrors.ErrGroupNotFound); err != nil {
		return patch, err
	}
	if patch.CategoryID, err = canonicalRefField(r.CategoryID, apperrors.ErrCategoryNotFound); err != nil {
		return patch, err
	}

	switch {
	case r.Date.IsSet():
		d, parseErr := time.Parse(models.DateLayout, r.Date.Value)
		if parseErr != nil {
			return patch, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD")
		}
		patch.Date = optional.Of(d)
	case r.Date.Null:
		patch.Date = optional.Null[time.Time]()
	}

	return patch, nil
}

// changes lists the fields present in the payload for the audit trail.
func (r UpdateExpenseRequest) changes() map[string]interface{} {
	out := make(map[string]interface{})
	if r.GroupID.Present {
		out["group_id"] = r.GroupID.Ptr()
	}
	if r.CategoryID.Present {
		out["category_id"] = r.CategoryID.Ptr()
	}
	if r.Amount.Present {
		out["amount"] = r.Amount.Ptr()
	}
	if r.Date.Present {
		out["date"] = r.Date.Ptr()
	}
	if r.Description.Present {
		out["description"] = r.Description.Ptr()
	}
	return out
}

package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
	"expensehub/internal/pagination"
	"expensehub/internal/uuid"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db, now: time.Now}
}

// expenseRow is what the enrichment query scans into.
type expenseRow struct {
	models.Expense
	CategoryName *string
	GroupName    *string
	UserName     *string
}

func (r expenseRow) view() ExpenseView {
	return ExpenseView{
		ID:           r.ID,
		TenantID:     r.TenantID,
		UserID:       r.UserID,
		GroupID:      r.GroupID,
		CategoryID:   r.CategoryID,
		Amount:       r.Amount,
		Date:         r.Date.Format(models.DateLayout),
		Description:  r.Description,
		CategoryName: r.CategoryName,
		GroupName:    r.GroupName,
		UserName:     r.UserName,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// viewQuery selects the tenant's expenses with the names they reference.
// The joins repeat the tenant condition so a foreign row is never named.
func (s *expenseService) viewQuery(ctx context.Context, tenantID string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.*, categories.name AS category_name, " +
			"expense_groups.name AS group_name, users.name AS user_name").
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id AND categories.tenant_id = expenses.tenant_id").
		Joins("LEFT JOIN expense_groups ON expense_groups.id = expenses.group_id AND expense_groups.tenant_id = expenses.tenant_id").
		Joins("LEFT JOIN users ON users.id = expenses.user_id").
		Where("expenses.tenant_id = ?", tenantID)
}

func (f ExpenseFilter) apply(q *gorm.DB) *gorm.DB {
	if f.GroupID != nil {
		q = q.Where("expenses.group_id = ?", *f.GroupID)
	}
	if f.CategoryID != nil {
		q = q.Where("expenses.category_id = ?", *f.CategoryID)
	}
	if f.PersonalOnly {
		q = q.Where("expenses.group_id IS NULL")
	}
	return q
}

// ListExpenses returns a page of the tenant's expenses, newest date first.
func (s *expenseService) ListExpenses(ctx context.Context, tenantID string, filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[ExpenseView], error) {
	page.Defaults()

	if (filter.GroupID != nil && !uuid.IsValid(*filter.GroupID)) ||
		(filter.CategoryID != nil && !uuid.IsValid(*filter.CategoryID)) {
		result := pagination.NewPageResponse[ExpenseView](nil, page.Page, page.PageSize, 0)
		return &result, nil
	}

	var totalItems int64
	if err := filter.apply(scopedQuery[models.Expense](ctx, s.db, tenantID)).
		Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rows []expenseRow
	if err := filter.apply(s.viewQuery(ctx, tenantID)).
		Order("expenses.date DESC, expenses.created_at DESC").
		Scopes(pagination.Paginate(page)).
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	views := make([]ExpenseView, 0, len(rows))
	for _, row := range rows {
		views = append(views, row.view())
	}

	result := pagination.NewPageResponse(views, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpense retrieves an expense of the tenant by ID.
func (s *expenseService) GetExpense(ctx context.Context, tenantID, expenseID string) (*ExpenseView, error) {
	if !uuid.IsValid(expenseID) {
		return nil, apperrors.ErrExpenseNotFound
	}

	var row expenseRow
	result := s.viewQuery(ctx, tenantID).Where("expenses.id = ?", expenseID).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}

	view := row.view()
	return &view, nil
}

// verifyGroup and verifyCategory reject references into other tenants.
func verifyGroup(ctx context.Context, tx *gorm.DB, tenantID, groupID string) error {
	_, err := findOwned[models.Group](ctx, tx, tenantID, groupID, apperrors.ErrGroupNotFound)
	return err
}

func verifyCategory(ctx context.Context, tx *gorm.DB, tenantID, categoryID string) error {
	_, err := findOwned[models.Category](ctx, tx, tenantID, categoryID, apperrors.ErrCategoryNotFound)
	return err
}

// CreateExpense records an expense for userID. Tenant and user come from the
// caller's context, never from the payload.
func (s *expenseService) CreateExpense(ctx context.Context, tenantID, userID string, input ExpenseInput) (*ExpenseView, error) {
	date := models.CivilDate(s.now())
	if input.Date != nil {
		date = models.CivilDate(*input.Date)
	}

	expense := &models.Expense{
		TenantID:    tenantID,
		UserID:      userID,
		GroupID:     input.GroupID,
		CategoryID:  input.CategoryID,
		Amount:      input.Amount,
		Date:        date,
		Description: input.Description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.GroupID != nil {
			if err := verifyGroup(ctx, tx, tenantID, *input.GroupID); err != nil {
				return err
			}
		}
		if input.CategoryID != nil {
			if err := verifyCategory(ctx, tx, tenantID, *input.CategoryID); err != nil {
				return err
			}
		}
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetExpense(ctx, tenantID, expense.ID)
}

// UpdateExpense applies a partial update. Only fields present in the patch
// are written.
func (s *expenseService) UpdateExpense(ctx context.Context, tenantID, expenseID string, patch ExpensePatch) (*ExpenseView, error) {
	if patch.Amount.Null {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount cannot be null")
	}
	if patch.Date.Null {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date cannot be null")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expense, err := findOwned[models.Expense](ctx, tx, tenantID, expenseID, apperrors.ErrExpenseNotFound)
		if err != nil {
			return err
		}

		updates := make(map[string]interface{})
		if patch.GroupID.Present {
			if patch.GroupID.IsSet() {
				if err := verifyGroup(ctx, tx, tenantID, patch.GroupID.Value); err != nil {
					return err
				}
			}
			updates["group_id"] = patch.GroupID.Ptr()
		}
		if patch.CategoryID.Present {
			if patch.CategoryID.IsSet() {
				if err := verifyCategory(ctx, tx, tenantID, patch.CategoryID.Value); err != nil {
					return err
				}
			}
			updates["category_id"] = patch.CategoryID.Ptr()
		}
		if patch.Amount.IsSet() {
			updates["amount"] = patch.Amount.Value
		}
		if patch.Date.IsSet() {
			updates["date"] = models.CivilDate(patch.Date.Value)
		}
		if patch.Description.Present {
			updates["description"] = patch.Description.Ptr()
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(expense).Where("tenant_id = ?", tenantID).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetExpense(ctx, tenantID, expenseID)
}

// DeleteExpense deletes an expense of the tenant.
func (s *expenseService) DeleteExpense(ctx context.Context, tenantID, expenseID string) error {
	return deleteOwned[models.Expense](ctx, s.db, tenantID, expenseID, apperrors.ErrExpenseNotFound)
}

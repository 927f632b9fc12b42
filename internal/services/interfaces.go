package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"expensehub/internal/models"
	"expensehub/internal/optional"
	"expensehub/internal/pagination"
)

// UserServicer defines the contract for registration and login.
type UserServicer interface {
	Register(ctx context.Context, name, email, password, tenantName string) (*models.User, *models.Tenant, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// MembershipServicer answers which users belong to which tenants.
type MembershipServicer interface {
	// MembershipOf returns nil, nil when the user is not a member.
	MembershipOf(ctx context.Context, tenantID, userID string) (*models.Membership, error)
	MembershipsOfUser(ctx context.Context, userID string) ([]models.Membership, error)
	// CreateMembership inserts through tx when it is non-nil so callers can
	// bundle it with other writes.
	CreateMembership(ctx context.Context, tx *gorm.DB, tenantID, userID string, role models.Role) (*models.Membership, error)
}

// TenantContext is the access-checked tenant a request operates in.
type TenantContext struct {
	Tenant *models.Tenant
	Role   models.Role
}

// TenantResolver turns a caller-supplied tenant selector into a TenantContext.
type TenantResolver interface {
	Resolve(ctx context.Context, userID, selector string) (*TenantContext, error)
}

// TenantWithRole is a tenant as seen by one of its members.
type TenantWithRole struct {
	models.Tenant
	Role models.Role `json:"role"`
}

// MemberView is a membership row with the member's display fields.
type MemberView struct {
	ID        string      `json:"id"`
	TenantID  string      `json:"tenant_id"`
	UserID    string      `json:"user_id"`
	Role      models.Role `json:"role"`
	UserName  *string     `json:"user_name"`
	UserEmail *string     `json:"user_email"`
	CreatedAt time.Time   `json:"created_at"`
}

// TenantServicer manages tenants and their members.
type TenantServicer interface {
	CreateTenant(ctx context.Context, userID, name, plan string) (*models.Tenant, error)
	ListUserTenants(ctx context.Context, userID string) ([]TenantWithRole, error)
	JoinTenant(ctx context.Context, userID, tenantID string) (*models.Tenant, error)
	ListMembers(ctx context.Context, userID, tenantID string) ([]MemberView, error)
	DeleteTenant(ctx context.Context, userID, tenantID string) error
}

// CategoryPatch holds the category fields to change. Nil fields are left alone.
type CategoryPatch struct {
	Name *string
	Type *models.CategoryType
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	ListCategories(ctx context.Context, tenantID string, categoryType *models.CategoryType) ([]models.Category, error)
	CreateCategory(ctx context.Context, tenantID, name string, categoryType models.CategoryType) (*models.Category, error)
	GetCategory(ctx context.Context, tenantID, categoryID string) (*models.Category, error)
	UpdateCategory(ctx context.Context, tenantID, categoryID string, patch CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, tenantID, categoryID string) error
}

// GroupPatch holds the group fields to change. Nil fields are left alone.
type GroupPatch struct {
	Name *string
	Type *models.GroupType
}

// GroupServicer defines the contract for group-related business logic.
type GroupServicer interface {
	ListGroups(ctx context.Context, tenantID string, groupType *models.GroupType) ([]models.Group, error)
	CreateGroup(ctx context.Context, tenantID, name string, groupType models.GroupType) (*models.Group, error)
	GetGroup(ctx context.Context, tenantID, groupID string) (*models.Group, error)
	UpdateGroup(ctx context.Context, tenantID, groupID string, patch GroupPatch) (*models.Group, error)
	DeleteGroup(ctx context.Context, tenantID, groupID string) error
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	GroupID      *string
	CategoryID   *string
	PersonalOnly bool
}

// ExpenseInput carries the fields of a new expense. A nil Date means today.
type ExpenseInput struct {
	GroupID     *string
	CategoryID  *string
	Amount      float64
	Date        *time.Time
	Description *string
}

// ExpensePatch is a partial update. Absent fields are left unchanged and
// null clears the nullable ones.
type ExpensePatch struct {
	GroupID     optional.Field[string]
	CategoryID  optional.Field[string]
	Amount      optional.Field[float64]
	Date        optional.Field[time.Time]
	Description optional.Field[string]
}

// ExpenseView is an expense with the names of the things it references.
// A name is nil when the reference is absent.
type ExpenseView struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	UserID       string    `json:"user_id"`
	GroupID      *string   `json:"group_id"`
	CategoryID   *string   `json:"category_id"`
	Amount       float64   `json:"amount"`
	Date         string    `json:"date" example:"2024-02-20"`
	Description  *string   `json:"description"`
	CategoryName *string   `json:"category_name"`
	GroupName    *string   `json:"group_name"`
	UserName     *string   `json:"user_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExpenseServicer defines the contract for expense-related business logic.
type ExpenseServicer interface {
	ListExpenses(ctx context.Context, tenantID string, filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[ExpenseView], error)
	CreateExpense(ctx context.Context, tenantID, userID string, input ExpenseInput) (*ExpenseView, error)
	GetExpense(ctx context.Context, tenantID, expenseID string) (*ExpenseView, error)
	UpdateExpense(ctx context.Context, tenantID, expenseID string, patch ExpensePatch) (*ExpenseView, error)
	DeleteExpense(ctx context.Context, tenantID, expenseID string) error
}

// CategoryTotal is the amount spent under one category.
type CategoryTotal struct {
	CategoryID string  `json:"category_id"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
}

// MonthTotal is the amount spent in one calendar month.
type MonthTotal struct {
	Month  string  `json:"month"`
	Year   int     `json:"year"`
	Amount float64 `json:"amount"`
}

// DashboardStats summarizes a tenant's expenses.
type DashboardStats struct {
	Total             float64         `json:"total"`
	PersonalTotal     float64         `json:"personal_total"`
	GroupTotal        float64         `json:"group_total"`
	CurrentMonthTotal float64         `json:"current_month_total"`
	ByCategory        []CategoryTotal `json:"by_category"`
	MonthlyTrend      []MonthTotal    `json:"monthly_trend"`
}

// StatsServicer computes dashboard aggregates.
type StatsServicer interface {
	Dashboard(ctx context.Context, tenantID string) (*DashboardStats, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(ctx context.Context, tenantID, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

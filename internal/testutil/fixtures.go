package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"expensehub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTenant creates a tenant on the default plan.
func CreateTestTenant(t *testing.T, db *gorm.DB) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		Name: fmt.Sprintf("Test Tenant %d", nextID()),
		Plan: models.DefaultPlan,
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("failed to create test tenant: %v", err)
	}
	return tenant
}

// CreateTestMembership binds userID to tenantID with the given role.
func CreateTestMembership(t *testing.T, db *gorm.DB, tenantID, userID string, role models.Role) *models.Membership {
	t.Helper()

	m := &models.Membership{TenantID: tenantID, UserID: userID, Role: role}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateTestTenantWithOwner creates a tenant owned by a fresh user.
func CreateTestTenantWithOwner(t *testing.T, db *gorm.DB) (*models.Tenant, *models.User) {
	t.Helper()

	user := CreateTestUser(t, db)
	tenant := CreateTestTenant(t, db)
	CreateTestMembership(t, db, tenant.ID, user.ID, models.RoleOwner)
	return tenant, user
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, tenantID string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		TenantID: tenantID,
		Name:     fmt.Sprintf("Test Category %d", nextID()),
		Type:     categoryType,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestGroup creates a group of the given type.
func CreateTestGroup(t *testing.T, db *gorm.DB, tenantID string, groupType models.GroupType) *models.Group {
	t.Helper()

	group := &models.Group{
		TenantID: tenantID,
		Name:     fmt.Sprintf("Test Group %d", nextID()),
		Type:     groupType,
	}
	if err := db.Create(group).Error; err != nil {
		t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// ExpenseOption customizes a fixture expense.
type ExpenseOption func(*models.Expense)

// InGroup attaches the expense to a group.
func InGroup(groupID string) ExpenseOption {
	return func(e *models.Expense) { e.GroupID = &groupID }
}

// InCategory attaches the expense to a category.
func InCategory(categoryID string) ExpenseOption {
	return func(e *models.Expense) { e.CategoryID = &categoryID }
}

// OnDate sets the expense date.
func OnDate(date time.Time) ExpenseOption {
	return func(e *models.Expense) { e.Date = models.CivilDate(date) }
}

// CreateTestExpense creates an expense dated today unless OnDate is given.
func CreateTestExpense(t *testing.T, db *gorm.DB, tenantID, userID string, amount float64, opts ...ExpenseOption) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		TenantID: tenantID,
		UserID:   userID,
		Amount:   amount,
		Date:     models.CivilDate(time.Now()),
	}
	for _, opt := range opts {
		opt(expense)
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

package models

// DefaultPlan is the plan label given to tenants created without one.
const DefaultPlan = "free"

// Tenant is an isolated organization owning groups, categories and expenses.
type Tenant struct {
	Base
	Name string `gorm:"not null" json:"name"`
	Plan string `gorm:"not null;default:'free'" json:"plan"`
}

// Role represents a user's role within a tenant
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	}
	return false
}

// Membership binds a user to a tenant. The composite unique index allows at
// most one row per (tenant, user) pair.
type Membership struct {
	Base
	TenantID string `gorm:"type:uuid;not null;uniqueIndex:idx_membership_tenant_user" json:"tenant_id"`
	UserID   string `gorm:"type:uuid;not null;uniqueIndex:idx_membership_tenant_user;index" json:"user_id"`
	Role     Role   `gorm:"not null" json:"role"`
}

// TableName overrides the default table name.
func (Membership) TableName() string { return "tenant_memberships" }

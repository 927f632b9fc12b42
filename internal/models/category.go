package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// Valid reports whether t is a known category type.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// Category labels expenses within a tenant.
type Category struct {
	Base
	TenantID string       `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name     string       `gorm:"not null" json:"name"`
	Type     CategoryType `gorm:"not null;default:'expense'" json:"type"`
}

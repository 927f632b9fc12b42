package models

// GroupType represents the kind of shared-expense group
type GroupType string

const (
	GroupTypeFamily GroupType = "family"
	GroupTypeTrip   GroupType = "trip"
	GroupTypeEvent  GroupType = "event"
)

// Valid reports whether t is a known group type.
func (t GroupType) Valid() bool {
	switch t {
	case GroupTypeFamily, GroupTypeTrip, GroupTypeEvent:
		return true
	}
	return false
}

// Group collects shared expenses inside a tenant. Deleting a group deletes its expenses.
type Group struct {
	Base
	TenantID string    `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name     string    `gorm:"not null" json:"name"`
	Type     GroupType `gorm:"not null;default:'family'" json:"type"`
}

// TableName overrides the default table name.
func (Group) TableName() string { return "expense_groups" }

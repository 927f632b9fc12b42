package models

import "time"

// DateLayout is the wire format of an expense date.
const DateLayout = "2006-01-02"

// Expense is a single recorded amount. A nil GroupID marks a personal expense.
type Expense struct {
	Base
	TenantID    string    `gorm:"type:uuid;not null;index:idx_expense_tenant_date" json:"tenant_id"`
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	GroupID     *string   `gorm:"type:uuid;index" json:"group_id"`
	CategoryID  *string   `gorm:"type:uuid;index" json:"category_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Date        time.Time `gorm:"type:date;not null;index:idx_expense_tenant_date" json:"date"`
	Description *string   `json:"description"`
}

// IsPersonal reports whether the expense belongs to no group.
func (e *Expense) IsPersonal() bool {
	return e.GroupID == nil
}

// CivilDate truncates t to midnight UTC of its calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package models

import (
	"time"

	"expensehub/internal/uuid"

	"gorm.io/gorm"
)

// Base contains common columns for all tables
type Base struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model, in dependency order, for schema auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Tenant{},
		&Membership{},
		&Category{},
		&Group{},
		&Expense{},
		&AuditLog{},
	}
}

package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/uuid"
)

// Every tenant-owned table carries a tenant_id column. The helpers below
// always filter on it before anything else.

// scopedQuery starts a query over E restricted to one tenant.
func scopedQuery[E any](ctx context.Context, db *gorm.DB, tenantID string) *gorm.DB {
	var model E
	return db.WithContext(ctx).Model(&model).Where("tenant_id = ?", tenantID)
}

// findOwned loads the E with the given id inside the tenant. Rows of other
// tenants and malformed ids both produce notFound.
func findOwned[E any](ctx context.Context, db *gorm.DB, tenantID, id string, notFound *apperrors.AppError) (*E, error) {
	if !uuid.IsValid(id) {
		return nil, notFound
	}

	var entity E
	if err := db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &entity, nil
}

// deleteOwned removes the E with the given id inside the tenant.
func deleteOwned[E any](ctx context.Context, db *gorm.DB, tenantID, id string, notFound *apperrors.AppError) error {
	if !uuid.IsValid(id) {
		return notFound
	}

	var model E
	result := db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&model)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

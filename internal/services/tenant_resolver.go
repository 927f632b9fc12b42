package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
	"expensehub/internal/uuid"
)

// tenantResolver validates the tenant selector of a request against the
// membership registry.
type tenantResolver struct {
	db      *gorm.DB
	members MembershipServicer
}

// NewTenantResolver creates a new TenantResolver.
func NewTenantResolver(db *gorm.DB, members MembershipServicer) TenantResolver {
	return &tenantResolver{db: db, members: members}
}

// Resolve fails with MISSING_TENANT_SELECTOR, TENANT_NOT_FOUND or
// TENANT_ACCESS_DENIED, checked in that order.
func (r *tenantResolver) Resolve(ctx context.Context, userID, selector string) (*TenantContext, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil, apperrors.ErrMissingTenantSelector
	}

	tenantID, err := uuid.Parse(selector)
	if err != nil {
		return nil, apperrors.ErrTenantNotFound
	}

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	membership, err := r.members.MembershipOf(ctx, tenant.ID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperrors.ErrTenantAccessDenied
	}

	return &TenantContext{Tenant: &tenant, Role: membership.Role}, nil
}

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

// tenantService handles tenant lifecycle and membership listing.
type tenantService struct {
	db      *gorm.DB
	members MembershipServicer
}

// NewTenantService creates a new TenantServicer.
func NewTenantService(db *gorm.DB, members MembershipServicer) TenantServicer {
	return &tenantService{db: db, members: members}
}

// createTenantWithOwner inserts a tenant and its owner membership using tx.
func createTenantWithOwner(ctx context.Context, tx *gorm.DB, members MembershipServicer, userID, name, plan string) (*models.Tenant, error) {
	if plan = strings.TrimSpace(plan); plan == "" {
		plan = models.DefaultPlan
	}

	tenant := &models.Tenant{Name: name, Plan: plan}
	if err := tx.WithContext(ctx).Create(tenant).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if _, err := members.CreateMembership(ctx, tx, tenant.ID, userID, models.RoleOwner); err != nil {
		return nil, err
	}
	return tenant, nil
}

// CreateTenant creates a tenant with the caller as its owner.
func (s *tenantService) CreateTenant(ctx context.Context, userID, name, plan string) (*models.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "tenant name is required")
	}

	var tenant *models.Tenant
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		tenant, err = createTenantWithOwner(ctx, tx, s.members, userID, name, plan)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// ListUserTenants returns every tenant the user belongs to, in join order.
func (s *tenantService) ListUserTenants(ctx context.Context, userID string) ([]TenantWithRole, error) {
	memberships, err := s.members.MembershipsOfUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return []TenantWithRole{}, nil
	}

	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.TenantID)
	}

	var tenants []models.Tenant
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tenants).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	byID := make(map[string]models.Tenant, len(tenants))
	for _, t := range tenants {
		byID[t.ID] = t
	}

	result := make([]TenantWithRole, 0, len(memberships))
	for _, m := range memberships {
		if t, ok := byID[m.TenantID]; ok {
			result = append(result, TenantWithRole{Tenant: t, Role: m.Role})
		}
	}
	return result, nil
}

// JoinTenant adds the caller to an existing tenant as a member.
func (s *tenantService) JoinTenant(ctx context.Context, userID, tenantID string) (*models.Tenant, error) {
	if !uuid.IsValid(tenantID) {
		return nil, apperrors.ErrTenantNotFound
	}

	var tenant models.Tenant
	if err := s.db.WithContext(ctx).Where("id = ?", tenantID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTenantNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if _, err := s.members.CreateMembership(ctx, nil, tenant.ID, userID, models.RoleMember); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateMembership) {
			return nil, apperrors.Wrap(apperrors.ErrAlreadyMember, err)
		}
		return nil, err
	}
	return &tenant, nil
}

// ListMembers lists the members of a tenant the caller belongs to.
func (s *tenantService) ListMembers(ctx context.Context, userID, tenantID string) ([]MemberView, error) {
	membership, err := s.members.MembershipOf(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, apperrors.ErrTenantAccessDenied
	}

	var members []MemberView
	if err := s.db.WithContext(ctx).
		Table("tenant_memberships").
		Select("tenant_memberships.id, tenant_memberships.tenant_id, tenant_memberships.user_id, " +
			"tenant_memberships.role, tenant_memberships.created_at, " +
			"users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = tenant_memberships.user_id").
		Where("tenant_memberships.tenant_id = ?", membership.TenantID).
		Order("tenant_memberships.created_at ASC").
		Scan(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if members == nil {
		members = []MemberView{}
	}
	return members, nil
}

// DeleteTenant removes a tenant and everything it owns. Only the owner may do this.
func (s *tenantService) DeleteTenant(ctx context.Context, userID, tenantID string) error {
	membership, err := s.members.MembershipOf(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperrors.ErrTenantAccessDenied
	}
	if membership.Role != models.RoleOwner {
		return apperrors.WithMessage(apperrors.ErrForbidden, "only the tenant owner can delete it")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Expense{}, &models.Group{}, &models.Category{}, &models.Membership{}} {
			if err := tx.Where("tenant_id = ?", membership.TenantID).Delete(model).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		if err := tx.Where("id = ?", membership.TenantID).Delete(&models.Tenant{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

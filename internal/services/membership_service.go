package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
	"expensehub/internal/uuid"
)

// membershipService is the registry of user-to-tenant bindings.
type membershipService struct {
	db *gorm.DB
}

// NewMembershipService creates a new MembershipServicer.
func NewMembershipService(db *gorm.DB) MembershipServicer {
	return &membershipService{db: db}
}

func (s *membershipService) MembershipOf(ctx context.Context, tenantID, userID string) (*models.Membership, error) {
	if !uuid.IsValid(tenantID) || !uuid.IsValid(userID) {
		return nil, nil
	}

	var m models.Membership
	err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &m, nil
}

func (s *membershipService) MembershipsOfUser(ctx context.Context, userID string) ([]models.Membership, error) {
	var memberships []models.Membership
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return memberships, nil
}

// CreateMembership relies on the (tenant_id, user_id) unique index instead of
// a prior lookup, so two concurrent calls for the same pair cannot both succeed.
func (s *membershipService) CreateMembership(ctx context.Context, tx *gorm.DB, tenantID, userID string, role models.Role) (*models.Membership, error) {
	if !role.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown role")
	}
	if tx == nil {
		tx = s.db
	}

	m := &models.Membership{TenantID: tenantID, UserID: userID, Role: role}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Wrap(apperrors.ErrDuplicateMembership, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return m, nil
}

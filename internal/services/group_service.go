package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
)

// groupService handles shared-expense groups.
type groupService struct {
	db *gorm.DB
}

// NewGroupService creates a new GroupServicer.
func NewGroupService(db *gorm.DB) GroupServicer {
	return &groupService{db: db}
}

func (s *groupService) ListGroups(ctx context.Context, tenantID string, groupType *models.GroupType) ([]models.Group, error) {
	query := scopedQuery[models.Group](ctx, s.db, tenantID)
	if groupType != nil {
		query = query.Where("type = ?", *groupType)
	}

	var groups []models.Group
	if err := query.Order("name ASC").Find(&groups).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return groups, nil
}

func (s *groupService) CreateGroup(ctx context.Context, tenantID, name string, groupType models.GroupType) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name is required")
	}
	if groupType == "" {
		groupType = models.GroupTypeFamily
	}
	if !groupType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group type must be family, trip or event")
	}

	group := &models.Group{
		TenantID: tenantID,
		Name:     name,
		Type:     groupType,
	}
	if err := s.db.WithContext(ctx).Create(group).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return group, nil
}

func (s *groupService) GetGroup(ctx context.Context, tenantID, groupID string) (*models.Group, error) {
	return findOwned[models.Group](ctx, s.db, tenantID, groupID, apperrors.ErrGroupNotFound)
}

func (s *groupService) UpdateGroup(ctx context.Context, tenantID, groupID string, patch GroupPatch) (*models.Group, error) {
	group, err := s.GetGroup(ctx, tenantID, groupID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group name cannot be empty")
		}
		updates["name"] = name
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "group type must be family, trip or event")
		}
		updates["type"] = *patch.Type
	}

	if len(updates) == 0 {
		return group, nil
	}
	if err := s.db.WithContext(ctx).Model(group).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetGroup(ctx, tenantID, groupID)
}

// DeleteGroup deletes a group together with its expenses.
func (s *groupService) DeleteGroup(ctx context.Context, tenantID, groupID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		group, err := findOwned[models.Group](ctx, tx, tenantID, groupID, apperrors.ErrGroupNotFound)
		if err != nil {
			return err
		}

		if err := tx.Where("tenant_id = ? AND group_id = ?", tenantID, group.ID).
			Delete(&models.Expense{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return deleteOwned[models.Group](ctx, tx, tenantID, group.ID, apperrors.ErrGroupNotFound)
	})
}

package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns the tenant's categories ordered by name, optionally
// restricted to one type.
func (s *categoryService) ListCategories(ctx context.Context, tenantID string, categoryType *models.CategoryType) ([]models.Category, error) {
	query := scopedQuery[models.Category](ctx, s.db, tenantID)
	if categoryType != nil {
		query = query.Where("type = ?", *categoryType)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(ctx context.Context, tenantID, name string, categoryType models.CategoryType) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if categoryType == "" {
		categoryType = models.CategoryTypeExpense
	}
	if !categoryType.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be expense or income")
	}

	category := &models.Category{
		TenantID: tenantID,
		Name:     name,
		Type:     categoryType,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return category, nil
}

// GetCategory retrieves a category of the tenant by ID.
func (s *categoryService) GetCategory(ctx context.Context, tenantID, categoryID string) (*models.Category, error) {
	return findOwned[models.Category](ctx, s.db, tenantID, categoryID, apperrors.ErrCategoryNotFound)
}

// UpdateCategory updates an existing category
func (s *categoryService) UpdateCategory(ctx context.Context, tenantID, categoryID string, patch CategoryPatch) (*models.Category, error) {
	category, err := s.GetCategory(ctx, tenantID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		updates["name"] = name
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be expense or income")
		}
		updates["type"] = *patch.Type
	}

	if len(updates) == 0 {
		return category, nil
	}
	if err := s.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return s.GetCategory(ctx, tenantID, categoryID)
}

// DeleteCategory deletes a category. Expenses that referenced it stay and
// lose their category.
func (s *categoryService) DeleteCategory(ctx context.Context, tenantID, categoryID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := findOwned[models.Category](ctx, tx, tenantID, categoryID, apperrors.ErrCategoryNotFound)
		if err != nil {
			return err
		}

		if err := scopedQuery[models.Expense](ctx, tx, tenantID).
			Where("category_id = ?", category.ID).
			Update("category_id", gorm.Expr("NULL")).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		return deleteOwned[models.Category](ctx, tx, tenantID, category.ID, apperrors.ErrCategoryNotFound)
	})
}

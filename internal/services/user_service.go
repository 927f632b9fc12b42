package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"expensehub/internal/auth"
	apperrors "expensehub/internal/errors"
	"expensehub/internal/models"
	"expensehub/internal/uuid"
)

// userService handles user-related business logic.
type userService struct {
	db      *gorm.DB
	members MembershipServicer
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, members MembershipServicer) UserServicer {
	return &userService{db: db, members: members}
}

// Register creates a user. When tenantName is not empty the user's first
// tenant is created in the same transaction with the user as owner.
func (s *userService) Register(ctx context.Context, name, email, password, tenantName string) (*models.User, *models.Tenant, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name, email and password are required")
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Email is stored exactly as given; the unique index decides duplicates.
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}

	var tenant *models.Tenant
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperrors.Wrap(apperrors.ErrDuplicateEmail, err)
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if tenantName = strings.TrimSpace(tenantName); tenantName != "" {
			var err error
			tenant, err = createTenantWithOwner(ctx, tx, s.members, user.ID, tenantName, "")
			return err
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return user, tenant, nil
}

// Authenticate checks an email and password pair. Unknown emails and wrong
// passwords fail the same way and take the same time.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		auth.BurnPasswordCheck(password)
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !auth.VerifyPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrUserNotFound
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

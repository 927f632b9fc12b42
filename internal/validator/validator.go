// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"time"

	"expensehub/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("category_type", validateCategoryType)
	_ = v.RegisterValidation("group_type", validateGroupType)
	_ = v.RegisterValidation("tenant_role", validateTenantRole)
	_ = v.RegisterValidation("iso_date", validateISODate)
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

func validateGroupType(fl validator.FieldLevel) bool {
	return models.GroupType(fl.Field().String()).Valid()
}

func validateTenantRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(models.DateLayout, fl.Field().String())
	return err == nil
}

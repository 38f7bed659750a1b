package validator

import (
	"log"
	"strings"

	"mentormatch_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Ошибка регистрации правила - критическая,
			// приложение не должно запускаться.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-gender", validateGender)
	mustRegister("is-verification-action", validateVerificationAction)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}

	switch models.UserRole(value) {
	case models.UserRoleStudent, models.UserRoleProfessional:
		return true
	default:
		return false
	}
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch strings.ToLower(value) {
	case "male", "female", "other":
		return true
	default:
		return false
	}
}

func validateVerificationAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	switch value {
	case models.VerificationActionApprove, models.VerificationActionReject:
		return true
	default:
		return false
	}
}

package validator

import (
	"log"

	"tourhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-difficulty", validateDifficulty)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empties
	}
	return models.ValidRole(models.UserRole(value))
}

func validateDifficulty(fl validator.FieldLevel) bool {
	switch models.Difficulty(fl.Field().String()) {
	case models.DifficultyEasy, models.DifficultyMedium, models.DifficultyDifficult:
		return true
	case "":
		return true
	}
	return false
}

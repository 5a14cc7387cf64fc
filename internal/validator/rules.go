package validator

import (
	"log"

	"triveni_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила для enum-полей моделей.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил приложение работать не должно.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", enumRule(models.IsValidUserRole))
	mustRegister("is-job-type", enumRule(models.IsValidJobType))
	mustRegister("is-job-status", enumRule(models.IsValidJobStatus))
	mustRegister("is-application-status", enumRule(models.IsValidApplicationStatus))
	mustRegister("is-blog-category", enumRule(models.IsValidBlogCategory))
	mustRegister("is-blog-status", enumRule(models.IsValidBlogStatus))
	mustRegister("is-comment-status", enumRule(models.IsValidCommentStatus))
	mustRegister("is-contact-status", enumRule(models.IsValidContactStatus))
	mustRegister("is-contact-priority", enumRule(models.IsValidContactPriority))
}

// enumRule строит правило из функции проверки значения.
// Пустые значения пропускаются: за них отвечает 'required'.
func enumRule(isValid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return isValid(value)
	}
}

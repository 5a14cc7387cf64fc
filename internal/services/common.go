package services

import (
	"errors"
	"strings"

	"triveni_backend/internal/validator"
	"triveni_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// validateModel - ошибки валидатора превращаются в 400 с картой "поле -> сообщение".
func validateModel(v *validator.Validator, model interface{}) error {
	err := v.Validate(model)
	if err == nil {
		return nil
	}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return apperrors.ValidationError(ve.Errors)
	}
	return apperrors.InternalError(err)
}

// fieldError - ошибка валидации одного поля.
func fieldError(field, message string) error {
	return apperrors.ValidationError(map[string]string{field: message})
}

func enumError(field, value string) error {
	return fieldError(field, "'"+value+"' is not an allowed value")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// trimList убирает пробелы по краям и пустые элементы.
func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it = strings.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

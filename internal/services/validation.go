package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	validatorv10 "github.com/go-playground/validator/v10"

	apperrors "mgao/internal/errors"
)

// validationError converts a validator failure into an AppError carrying a
// human-readable message for the first failed field.
func validationError(err error) error {
	var verrs validatorv10.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, fieldMessage(verrs[0]))
	}
	return apperrors.Wrap(apperrors.ErrValidation, err)
}

func fieldMessage(fe validatorv10.FieldError) string {
	field := fieldWords(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
	case "allocation_method":
		return fmt.Sprintf("%s must be one of: equal, gdp_per_capita, project_score", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

// fieldWords turns a struct field name like "ProjectScore" into "project score".
func fieldWords(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"rutinas/internal/models"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("dia_semana", func(fl validator.FieldLevel) bool {
		return models.DiaSemana(fl.Field().String()).IsValid()
	})

	return v
}

// ValidateStruct checks s against its `validate` tags and returns a single
// human-readable message describing every failing field, or "" when valid.
func ValidateStruct(s any) (string, error) {
	err := validate.Struct(s)
	if err == nil {
		return "", nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", err
	}

	return FormatValidationErrors(validationErrors), nil
}

func FormatValidationErrors(validationErrors validator.ValidationErrors) string {
	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Field()+": "+describe(fieldErr))
	}
	return strings.Join(messages, "; ")
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "field required"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldErr.Param())
	case "min":
		return "must not be empty"
	case "dia_semana":
		dias := make([]string, len(models.DiasSemana))
		for i, dia := range models.DiasSemana {
			dias[i] = string(dia)
		}
		return "must be one of " + strings.Join(dias, ", ")
	default:
		return fmt.Sprintf("failed %s validation", fieldErr.Tag())
	}
}

package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Reportamos errores con el nombre del campo JSON, no el del struct Go.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
}

// Struct corre las validaciones declaradas en tags `validate`.
func Struct(value any) error {
	return validate.Struct(value)
}

// FieldErrors convierte los errores del validador en un mapa
// campo → mensaje legible, apto para la respuesta HTTP.
func FieldErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errorsAs(err, &validationErrors) {
		return fields
	}

	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = message(fieldError)
	}
	return fields
}

func errorsAs(err error, target *validator.ValidationErrors) bool {
	validationErrors, ok := err.(validator.ValidationErrors)
	if ok {
		*target = validationErrors
	}
	return ok
}

func message(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("maximum length is %s", fieldError.Param())
	case "min":
		return fmt.Sprintf("minimum length is %s", fieldError.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fieldError.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fieldError.Param())
	default:
		return fmt.Sprintf("validation failed on '%s'", fieldError.Tag())
	}
}

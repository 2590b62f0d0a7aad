// Package validation evaluates declarative schemas on request bodies
// before handler logic runs. Rules are struct tags on the service DTOs.
package validation

import (
	"fmt"
	"strings"

	"taskhub/internal/common"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("taskstatus", TaskStatusValidator)
}

// TaskStatusValidator accepts the three task states. A custom rule rather
// than oneof because "in progress" contains a space.
func TaskStatusValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "pending" || value == "in progress" || value == "completed"
}

// Validate runs the schema and converts the first violation into a
// user-facing validation error.
func Validate(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return common.WithMessage(common.ErrValidation, "Invalid request body")
	}
	return common.WithMessage(common.ErrValidation, messageFor(errs[0]))
}

func messageFor(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot be more than %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "taskstatus":
		return field + " must be one of: pending, in progress, completed"
	default:
		return field + " is invalid"
	}
}

package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// BaseError carries a stable machine-readable code alongside the message.
type BaseError struct {
	Code    string
	Message string
	Field   string
}

func (e *BaseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, field string) *BaseError {
	return &BaseError{Code: code, Message: message, Field: field}
}

// ValidationErrors maps field names to their first violated rule.
type ValidationErrors map[string]*BaseError

// Messages flattens validation errors into field -> message.
func (v ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for field, err := range v {
		out[field] = err.Message
	}
	return out
}

func NewRequiredError(field, label string) *BaseError {
	return &BaseError{
		Code:    "VALIDATION_REQUIRED",
		Message: fmt.Sprintf("%s is required", label),
		Field:   field,
	}
}

func NewInvalidError(field, label string) *BaseError {
	return &BaseError{
		Code:    "VALIDATION_INVALID",
		Message: fmt.Sprintf("%s is invalid", label),
		Field:   field,
	}
}

// ProcessValidatorErrors folds validator violations into ValidationErrors,
// keeping the first violation per field.
func ProcessValidatorErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, err := range errs {
		if _, seen := out[err.Field()]; seen {
			continue
		}
		switch err.Tag() {
		case "required":
			out[err.Field()] = NewRequiredError(err.Field(), err.Field())
		case "eqfield":
			out[err.Field()] = NewError("VALIDATION_MISMATCH", fmt.Sprintf("%s does not match %s", err.Field(), err.Param()), err.Field())
		default:
			out[err.Field()] = NewInvalidError(err.Field(), err.Field())
		}
	}
	return out
}

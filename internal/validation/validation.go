// Package validation provides explicit, independently testable validation
// functions decoupled from persistence. Rules that the record store used to
// enforce declaratively live here as field constraints.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var (
	usernamePattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Tag-level rules the built-in set doesn't cover.
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// messages maps validator tags to user-facing text.
func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, param)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "username":
		return fmt.Sprintf("%s can only contain lowercase letters, numbers, underscores, and hyphens", field)
	case "slug":
		return fmt.Sprintf("%s can only contain lowercase letters, numbers, and hyphens", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a valid hex color", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// ValidateStruct validates any tagged struct and returns one FieldError per
// failed constraint. A nil slice means the value is valid.
func ValidateStruct(s interface{}) []FieldError {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Rule: "invalid", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		out = append(out, FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Message: message(field, fe.Tag(), fe.Param()),
		})
	}
	return out
}

// Package validate runs struct-tag validation and translates failures into
// errs.ValidationError so callers can block a write before anything changes.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates s and returns the first failing field.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	fe := fieldErrs[0]

	return errs.Invalid(fieldName(fe.Field()), reason(fe))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "email":
		return "must be an email address"
	}

	return "failed " + fe.Tag()
}

// fieldName lower-cases the leading rune so "HouseholdID" reads as "householdID".
func fieldName(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// Package validation holds the identity-format and field-range rules
// for student records. It is independent of storage: the store calls
// it on every write path before touching its collection.
//
// Range rules live as validate:"..." tags on types.Student and are
// checked by go-playground/validator. The ID rule is registered as the
// custom "studentid" tag so a whole record is checked in one call.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/roster/internal/types"
)

var (
	// ErrInvalidID is returned when an ID fails IsValidID.
	ErrInvalidID = errors.New("invalid id: must be alphanumeric with at least one letter and one digit")

	// ErrInvalidRange is returned when age or gpa falls outside the
	// accepted window at a guarded entry point.
	ErrInvalidRange = errors.New("value out of range")
)

// Accepted windows. GPA is half-open: 10.0 itself is rejected.
const (
	MinAge = 1
	MaxAge = 100
	MinGPA = 0.0
	MaxGPA = 10.0
)

// validate is built once; a *validator.Validate caches struct metadata
// and is safe to reuse.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// RegisterValidation only fails for an empty tag or nil func.
	if err := v.RegisterValidation("studentid", func(fl validator.FieldLevel) bool {
		return IsValidID(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsValidID reports whether s is non-empty, made only of ASCII letters
// and digits, and contains at least one of each.
func IsValidID(s string) bool {
	if s == "" {
		return false
	}
	var hasAlpha, hasDigit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasAlpha = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasAlpha && hasDigit
}

// Student checks every tagged field of s.
// An ID failure wins over range failures so callers see the most
// fundamental problem first.
func Student(s types.Student) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation.Student: %w", err)
	}

	var fields []string
	for _, fe := range verrs {
		if fe.Field() == "ID" {
			return fmt.Errorf("%w: %q", ErrInvalidID, s.ID)
		}
		fields = append(fields, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRange, strings.Join(fields, ", "))
}

// Age checks a single age value against [MinAge, MaxAge].
func Age(n int) error {
	if err := validate.Var(n, "min=1,max=100"); err != nil {
		return fmt.Errorf("%w: age %d must be between %d and %d", ErrInvalidRange, n, MinAge, MaxAge)
	}
	return nil
}

// GPA checks a single gpa value against [MinGPA, MaxGPA).
func GPA(g float64) error {
	if err := validate.Var(g, "gte=0,lt=10"); err != nil {
		return fmt.Errorf("%w: gpa %g must be at least %g and below %g", ErrInvalidRange, g, MinGPA, MaxGPA)
	}
	return nil
}

// describe converts a validator.FieldError into a plain sentence.
func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "Age":
		return fmt.Sprintf("age %v must be between %d and %d", fe.Value(), MinAge, MaxAge)
	case "GPA":
		return fmt.Sprintf("gpa %v must be at least %g and below %g", fe.Value(), MinGPA, MaxGPA)
	default:
		return fmt.Sprintf("field %s is invalid", fe.Field())
	}
}

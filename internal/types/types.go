// Package types holds the shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the store, the codecs, analytics, and the CLI layer can all import
// types without depending on each other.
package types

// Student represents one record on the roster.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when the CLI layer
//     encodes a record to JSON.
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package at the guarded entry points (add and update).
//     "studentid" is a custom tag registered by the validation package.
//
// A Student built directly in code may hold any Age or GPA; the
// ranges are only enforced when a record enters through the store.
type Student struct {
	ID     string  `json:"id"     validate:"studentid"`
	Name   string  `json:"name"`
	Age    int     `json:"age"    validate:"min=1,max=100"`
	Course string  `json:"course"`
	GPA    float64 `json:"gpa"    validate:"gte=0,lt=10"`
}

// Field names one of the mutable attributes of a Student.
// The ID is immutable after creation, so it has no Field.
type Field string

// Field constants — use these instead of raw string literals so a typo
// is caught by the compiler.
const (
	FieldName   Field = "name"
	FieldAge    Field = "age"
	FieldCourse Field = "course"
	FieldGPA    Field = "gpa"
)

// ParseField converts user input into a Field.
// The second return value is false for anything that is not a mutable field.
func ParseField(s string) (Field, bool) {
	switch f := Field(s); f {
	case FieldName, FieldAge, FieldCourse, FieldGPA:
		return f, true
	default:
		return "", false
	}
}

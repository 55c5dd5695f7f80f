package task

import "fmt"

// ❌ ValidationError reports a proposed status or priority value that is not
// part of the recognized enum. It is returned before any mutation is applied.
type ValidationError struct {
	Field   Field
	Value   string
	Allowed []string
}

// NewValidationError builds a ValidationError for field with the given
// rejected value and the allowed set.
func NewValidationError(field Field, value string, allowed []string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Allowed: allowed}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q (use: %s)", e.Field, e.Value, joinNames(e.Allowed))
}

package address

import (
	"errors"
	"fmt"
)

// TypeMismatchError is returned when a field value does not satisfy the
// type declared by its schema.
type TypeMismatchError struct {
	Field    string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("parameter %s must be %s, not %s", e.Field, e.Expected, e.Actual)
}

// AsTypeMismatch attempts to unwrap an error into a TypeMismatchError.
func AsTypeMismatch(err error) (*TypeMismatchError, bool) {
	var typeErr *TypeMismatchError
	if errors.As(err, &typeErr) {
		return typeErr, true
	}
	return nil, false
}

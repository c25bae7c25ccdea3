package builder

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// UnknownFieldError rejects an assignment to a field the schema does not
// declare.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("builder: unknown field %q", e.Field)
}

// TypeMismatchError rejects a value that cannot be converted to the field's
// declared type.
type TypeMismatchError struct {
	Field string
	Want  cty.Type
	Got   cty.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("builder: field %q expects %s, got %s",
		e.Field, e.Want.FriendlyName(), e.Got.FriendlyName())
}

// MissingRequiredFieldsError rejects finalizing a state whose checklist is
// not empty. Missing holds the still-unsupplied required field names, sorted.
type MissingRequiredFieldsError struct {
	Missing []string
}

func (e *MissingRequiredFieldsError) Error() string {
	return fmt.Sprintf("builder: required fields not supplied: %s",
		strings.Join(e.Missing, ", "))
}

// StateConsumedError reports reuse of a state that a previous Set or Build
// already consumed. This is a programmer error in the calling code, not a
// property of the schema or the supplied values.
type StateConsumedError struct{}

func (e *StateConsumedError) Error() string {
	return "builder: state already consumed; use the state returned by the previous transition"
}

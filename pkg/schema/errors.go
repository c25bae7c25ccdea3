package schema

import "errors"

var (
	// ErrEmptyFieldName rejects fields declared without a name.
	ErrEmptyFieldName = errors.New("schema: field name is required")

	// ErrNilFieldType rejects fields declared without a value type.
	ErrNilFieldType = errors.New("schema: field type is required")

	// ErrDuplicateField rejects schemas where two fields share a name.
	ErrDuplicateField = errors.New("schema: duplicate field name")

	// ErrRequiredHasDefault rejects required fields that declare a default
	// provider; a field with a default is optional by definition.
	ErrRequiredHasDefault = errors.New("schema: required field cannot declare a default")
)

package transform

import "fmt"

// MappingError reports source data that cannot be mapped into the
// target schema, naming the field at fault.
type MappingError struct {
	Field  string
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("cannot map field %q: %s", e.Field, e.Reason)
}

func missingField(field string) error {
	return &MappingError{Field: field, Reason: "required field is missing or empty"}
}

package registry

import "fmt"

// ValidationError reports a device draft that is missing a required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid device draft: %s %s", e.Field, e.Reason)
}

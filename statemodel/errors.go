package statemodel

import "fmt"

// NotFoundError is returned when a state name cannot be resolved.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no state named %q exists in diagram", e.Name)
}

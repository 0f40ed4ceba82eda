package application

import (
	"errors"
	"fmt"
)

// ErrInvariant signals state that should be impossible, such as a
// reconciled file whose hash vanished from its own group mid-operation
var ErrInvariant = errors.New("invariant violated")

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

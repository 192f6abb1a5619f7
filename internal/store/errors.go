package store

import (
	"errors"
	"fmt"
)

// ErrStorage wraps infrastructure failures. Nothing retries automatically;
// the submitter is told to try again.
var ErrStorage = errors.New("storage unavailable")

// ValidationError names the rejected field so the form can show a
// field-specific message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

package portable

import (
	"errors"
	"fmt"

	"github.com/euwesleysilv4/meu-app-digitfy-sub003/pkg/domain"
)

// ValidationError represents a single rule violation in a document.
type ValidationError struct {
	Field  string `json:"field"` // JSON path of the offending value, e.g. nodes[2].kind
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AggregateError collects every violation found in a document.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap lets errors.Is match domain.ErrInvalidDocument.
func (e *AggregateError) Unwrap() error { return domain.ErrInvalidDocument }

// ValidationErrors returns all violations if err wraps an AggregateError, nil otherwise.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

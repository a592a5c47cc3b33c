package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cleared-dev/sneakerbook/internal/id"
)

var (
	// ErrValidation matches any ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound matches any NotFoundError via errors.Is.
	ErrNotFound = errors.New("transaction not found")
)

// FieldError describes one missing or malformed draft field.
type FieldError struct {
	Field       string
	Description string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Description
}

// ValidationError is returned when a draft cannot be admitted.
// The ledger is left untouched whenever one is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, fe := range e.Fields {
		msgs[i] = fe.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(msgs, "; "))
}

// Is lets callers test with errors.Is(err, ErrValidation).
func (e ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field failed validation.
func (e ValidationError) Has(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// NotFoundError is returned when an operation names an ID with no live record.
type NotFoundError struct {
	ID int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found", id.Format(e.ID))
}

// Is lets callers test with errors.Is(err, ErrNotFound).
func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

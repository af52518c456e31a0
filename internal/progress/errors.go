package progress

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrNotFound        = errors.New("book record not found")
	ErrInvalidProgress = errors.New("page number must not regress")
	ErrInvalidStatus   = errors.New("invalid read status")
)

// ValidationError carries field-level messages for malformed input.
// It is distinct from ErrInvalidProgress, which is a business-rule
// violation on otherwise well-formed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// PersistenceError wraps a store write failure, keeping it distinct
// from validation and business-rule failures.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "persistence failure: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

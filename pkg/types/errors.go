package types

import (
	"errors"
	"sort"
	"strings"
)

// Repository errors. Callers match them with errors.Is.
var (
	ErrNotFound    = errors.New("record not found")
	ErrInvalidID   = errors.New("invalid record ID")
	ErrValidation  = errors.New("validation failed")
	ErrDuplicate   = errors.New("record already exists")
	ErrInUse       = errors.New("record is in use")
	ErrUnknownKind = errors.New("unknown entity kind")
)

// ValidationError reports every failing field of one submission. Fields maps
// a field name (e.g. "name", "email") to its message. Duplicate holds the
// single aggregate message for a comparison-key collision and is empty when
// no duplicate was found.
//
// A ValidationError matches ErrValidation, and also ErrDuplicate when
// Duplicate is set.
type ValidationError struct {
	Kind      Kind
	Fields    map[string]string
	Duplicate string
}

// NewValidationError returns an empty ValidationError for kind.
func NewValidationError(kind Kind) *ValidationError {
	return &ValidationError{Kind: kind, Fields: make(map[string]string)}
}

// Add records msg for field unless the field already failed; the first
// failure for a field wins.
func (e *ValidationError) Add(field, msg string) {
	if e.Has(field) {
		return
	}
	e.Fields[field] = msg
}

// Has reports whether field already failed.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// Empty reports whether no rule failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0 && e.Duplicate == ""
}

// Err returns e, or nil when no rule failed. It keeps a typed nil pointer
// from escaping as a non-nil error.
func (e *ValidationError) Err() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

// Error lists field messages in field-name order followed by the duplicate
// message.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields)+1)
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	if e.Duplicate != "" {
		parts = append(parts, e.Duplicate)
	}
	return "invalid " + e.Kind.Label() + ": " + strings.Join(parts, "; ")
}

// Is implements errors.Is matching against ErrValidation and ErrDuplicate.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrDuplicate:
		return e.Duplicate != ""
	}
	return false
}

package services

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports request fields that could not be accepted, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Messages shared with the HTTP layer.
const (
	MsgInvalidDate     = "Invalid date, expected YYYY-MM-DD"
	MsgPasswordTooLong = "Password must be at most 72 bytes"
)

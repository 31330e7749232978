package models

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the service layer. Handlers map them to
// HTTP statuses with errors.Is.
var (
	// ErrNotFound means no record matched the given id.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateUser means the username is already taken.
	ErrDuplicateUser = errors.New("username already taken")
)

// FieldError describes a single violated input constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"msg"`
}

// ValidationErrors collects every violated constraint for a request, not
// just the first one.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

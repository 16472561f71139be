// Package service holds the business rules for accounts and tweets.  It
// sits between the HTTP handlers and the repositories and speaks only in
// the error types below, which the handlers map onto status codes.
package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown username
	// and for a wrong password alike.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrCouldNotValidate is returned by CurrentUser for every token or
	// subject problem.
	ErrCouldNotValidate = errors.New("could not validate credentials")
)

// ValidationError lists input problems keyed by JSON field name.
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

// Invalid builds a ValidationError for a single field.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// ConflictError means a unique value (username or email) is already used.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError means the addressed resource does not exist.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

var (
	errUserNotFound  = &NotFoundError{Resource: "user"}
	errTweetNotFound = &NotFoundError{Resource: "tweet"}
)

// validationFailed turns the result of an ozzo Validate call into a
// *ValidationError.  Internal validator failures are passed through.
func validationFailed(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make(map[string]string, len(errs))
	for k, v := range errs {
		fields[k] = v.Error()
	}
	return &ValidationError{Fields: fields}
}

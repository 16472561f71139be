// Package repository holds the SQL behind users and tweets.  Every method
// takes a database.DBTX so the same code runs against the pool or inside a
// transaction opened by the service layer.
//
// The sentinel errors below let higher layers tell "row missing" and
// "unique key taken" apart from real store failures without looking at
// driver specific error types.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTweetNotFound = errors.New("tweet not found")

	// ErrDuplicate is wrapped by every DuplicateError.
	ErrDuplicate = errors.New("duplicate")
)

// DuplicateError reports which unique column rejected a write.  Field is
// "username" or "email", or empty when the constraint could not be told
// apart from the driver message.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	if e.Field == "" {
		return "duplicate value"
	}
	return e.Field + " already exists"
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

const (
	mysqlDupEntry   = 1062
	pgUniqueViolate = "23505"
)

// uniqueViolation converts a driver error raised by a unique index into a
// *DuplicateError.  Any other error is returned untouched.
func uniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var msg string
	var myErr *mysql.MySQLError
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &myErr) && myErr.Number == mysqlDupEntry:
		// Duplicate entry 'bob' for key 'users.uq_users_username'
		msg = after(myErr.Message, " for key ")
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolate:
		msg = pgErr.ConstraintName
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		// UNIQUE constraint failed: users.email
		msg = after(err.Error(), "UNIQUE constraint failed")
	default:
		return err
	}
	return &DuplicateError{Field: duplicateField(msg)}
}

// after returns the part of s following sep, or s when sep is absent.  The
// offending value is dropped so it cannot be mistaken for a column name.
func after(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

func duplicateField(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "username"):
		return "username"
	case strings.Contains(msg, "email"):
		return "email"
	}
	return ""
}

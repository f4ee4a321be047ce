package services

import (
	"errors"
	"fmt"

	"github.com/atmnet/backend/internal/models"
)

// Error is a classified engine failure. Business-rule failures and wrapped
// storage failures both travel as *Error until they become a Result.
type Error struct {
	Code    models.ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code models.ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func wrapError(code models.ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// databaseError hides driver detail from callers.
func databaseError(err error) *Error {
	return wrapError(models.CodeDatabaseError, "A database error occurred", err)
}

// classify turns any error into a code and a caller-safe message.
func classify(err error) (models.ErrorCode, string) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, e.Message
	}
	return models.CodeSystemError, "An internal error occurred"
}

func failFrom[T any](err error) models.Result[T] {
	code, message := classify(err)
	return models.Fail[T](code, message)
}

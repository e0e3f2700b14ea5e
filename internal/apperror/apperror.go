package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("Validation Error")
	ErrInvalidType = errors.New("invalid input type")
	ErrConflict    = errors.New("conflict")
)

// InvalidTypeMessage is returned whenever a value cannot be coerced to the
// column type it targets (a text id on a numeric route, a string vote delta).
const InvalidTypeMessage = "Invalid input type - Text"

type AppError struct {
	Err     error  // actual error
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a resource looked up by its natural key,
// e.g. NotFound("User", "lurker") -> "User 'lurker' does not exist!".
func NotFound(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s '%s' does not exist!", resource, key),
	}
}

// NotFoundByID reports a resource looked up by its numeric id.
func NotFoundByID(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with ID '%d' does not exist!", resource, id),
	}
}

// NotFoundMsg is a NotFound with a caller-supplied message.
func NotFoundMsg(message string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: message,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidType is the error kind for values the database (or the handler,
// on its behalf) cannot coerce to the column type. HTTP maps it to 400.
func InvalidType(field string) *AppError {
	return &AppError{
		Err:     ErrInvalidType,
		Message: InvalidTypeMessage,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

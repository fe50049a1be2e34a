package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the client and server.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeServer       = "SERVER_ERROR"
	CodeTransport    = "TRANSPORT_ERROR"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewServerError(message string, err error) *AppError {
	return &AppError{Code: CodeServer, Message: message, Err: err}
}

func NewTransportError(err error) *AppError {
	return &AppError{Code: CodeTransport, Message: "request failed", Err: err}
}

// ErrorCode extracts the AppError code from err, or SERVER_ERROR when err is
// not an AppError.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeServer
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return ErrorCode(err) == CodeNotFound
}

// RespondWithError writes a standardized error envelope. Handlers return its
// result directly.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	env := Envelope{StatusText: StatusError, Msg: err.Error()}
	var appErr *AppError
	if errors.As(err, &appErr) {
		env.Msg = appErr.Message
	}
	return c.Status(status).JSON(env)
}

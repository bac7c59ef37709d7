package utils

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
)

type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewBadRequestError(message string, details any) *APIError {
	return &APIError{
		StatusCode: fiber.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
		Details:    details,
	}
}

func NewNotFoundError(resource string) *APIError {
	return &APIError{
		StatusCode: fiber.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
	}
}

func NewUnprocessableError(message string, details any) *APIError {
	return &APIError{
		StatusCode: fiber.StatusUnprocessableEntity,
		Code:       "UNPROCESSABLE",
		Message:    message,
		Details:    details,
	}
}

func NewInternalError(err error) *APIError {
	return &APIError{
		StatusCode: fiber.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    "An internal error occurred",
		Details:    err.Error(),
	}
}

// ErrorHandler renders any error returned by a handler as an APIError, details included
func ErrorHandler(c fiber.Ctx, err error) error {
	apiErr := toAPIError(err)
	return c.Status(apiErr.StatusCode).JSON(apiErr)
}

// NewErrorHandler returns an ErrorHandler. With exposeDetails false, details of 5xx
// errors are dropped from the response body.
func NewErrorHandler(exposeDetails bool) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		apiErr := toAPIError(err)
		if !exposeDetails && apiErr.StatusCode >= fiber.StatusInternalServerError {
			redacted := *apiErr
			redacted.Details = nil
			apiErr = &redacted
		}
		return c.Status(apiErr.StatusCode).JSON(apiErr)
	}
}

func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &APIError{StatusCode: fiberErr.Code, Code: "HTTP_ERROR", Message: fiberErr.Message}
	}
	return NewInternalError(err)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/smokemap/smokemap/internal/core/ports"
	"github.com/smokemap/smokemap/internal/core/usecases"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errUnsupportedMedia returns a 415 error.
func errUnsupportedMedia(c *fiber.Ctx, msg string) error {
	return newError(c, 415, "unsupported_media_type", msg)
}

// errUnavailable returns a 503 error.
func errUnavailable(c *fiber.Ctx, msg string) error {
	return newError(c, 503, "service_unavailable", msg)
}

// serviceError maps well-known service errors onto HTTP statuses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecases.ErrInvalidSubmission):
		return errBadRequest(c, err.Error())
	case errors.Is(err, ports.ErrNotFound):
		return errNotFound(c, err.Error())
	case errors.Is(err, ports.ErrUnsupportedMedia):
		return errUnsupportedMedia(c, err.Error())
	default:
		return errInternal(c, err.Error())
	}
}

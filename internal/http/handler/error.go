package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studiosync/internal/http/middleware"
	"studiosync/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service sentinel errors into the error
// envelope. Anything unrecognized collapses to a generic 500 so raw store
// errors never reach the client.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return writeError(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
	case errors.Is(err, service.ErrWeakCredential):
		return writeError(c, fiber.StatusBadRequest, "WEAK_PASSWORD", "password must be at least 8 characters")
	case errors.Is(err, service.ErrUnknownAccount):
		return writeError(c, fiber.StatusNotFound, "UNKNOWN_ACCOUNT", "account not found")
	case errors.Is(err, service.ErrDuplicateEntity):
		return writeError(c, fiber.StatusConflict, "DUPLICATE_ENTITY", "entity already exists")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrForbidden):
		return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "you cannot perform this action")
	case errors.Is(err, service.ErrStorageFailure):
		return writeError(c, fiber.StatusInternalServerError, "STORAGE_FAILURE", "storage operation failed")
	case errors.Is(err, service.ErrProvisioningFailed):
		return writeError(c, fiber.StatusInternalServerError, "PROVISIONING_FAILED", "client provisioning failed")
	case errors.Is(err, service.ErrCascadeFailed):
		return writeError(c, fiber.StatusInternalServerError, "CASCADE_FAILED", "client delete failed")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"inventory-tracker/internal/apperr"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

var internalServerErr = ErrorResponse{
	Code:    "INTERNAL_SERVER_ERROR",
	Message: "an unknown error occurred",
}

// HTTPStatus maps an error kind to its HTTP status.
func HTTPStatus(kind apperr.Kind) int {
	switch kind {
	case apperr.KindInvalidArgument:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInsufficientStock, apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorResponse converts err into a status and body. Unknown errors are
// hidden behind a generic 500.
func NewErrorResponse(err error) (int, ErrorResponse) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return HTTPStatus(appErr.Kind()), ErrorResponse{
			Code:    appErr.Code(),
			Message: appErr.Msg(),
			Details: appErr.Details(),
		}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, ErrorResponse{
			Code:    http.StatusText(fiberErr.Code),
			Message: fiberErr.Message,
		}
	}

	return http.StatusInternalServerError, internalServerErr
}

// ErrorHandler is installed as fiber.Config.ErrorHandler.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := NewErrorResponse(err)

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Any("error", err),
		}
		if status >= http.StatusInternalServerError {
			log.ErrorContext(c.UserContext(), "Request failed", attrs...)
		} else {
			log.WarnContext(c.UserContext(), "Request rejected", attrs...)
		}

		return c.Status(status).JSON(body)
	}
}

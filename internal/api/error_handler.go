package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/donelist/task-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Unmatched routes get a uniform envelope, not echo's default message.
	if errors.Is(err, echo.ErrNotFound) {
		return http.StatusNotFound, "route not found"
	}
	if errors.Is(err, echo.ErrMethodNotAllowed) {
		return http.StatusMethodNotAllowed, "method not allowed"
	}

	// Echo's own errors (bind failures, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Authentication
	// failures stay coarse; ownership mismatches surface as not-found.
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized, domain.ErrMissingCredential.Error()
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, domain.ErrTokenInvalid.Error()
	case errors.Is(err, domain.ErrMalformedIdentity):
		return http.StatusBadRequest, domain.ErrMalformedIdentity.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, domain.ErrUsernameTaken.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, domain.ErrEmailTaken.Error()
	case errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest, domain.ErrWeakPassword.Error()
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, domain.ErrTaskNotFound.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

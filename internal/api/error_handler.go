package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes and a
//     fixed user-facing message.
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
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The login failures
	// are stable strings the UI keys on; they are never rephrased here.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or credentials"
	case errors.Is(err, domain.ErrAccountPending):
		return http.StatusForbidden, "account is pending approval, please wait for an administrator to approve your request"
	case errors.Is(err, domain.ErrAccountRejected):
		return http.StatusForbidden, "your account has been rejected, please contact support"
	case errors.Is(err, domain.ErrReferralCodeRequired):
		return http.StatusBadRequest, "referral code is required for non-admin login"
	case errors.Is(err, domain.ErrReferralExpired):
		return http.StatusUnauthorized, "referral code expired"
	case errors.Is(err, domain.ErrNoPasswordConfigured):
		return http.StatusUnauthorized, "administrator account has no password set"
	case errors.Is(err, domain.ErrAlreadyApproved):
		return http.StatusConflict, "user already approved"
	case errors.Is(err, domain.ErrAlreadyRejected):
		return http.StatusConflict, "user already rejected"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, "insufficient role"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job post not found"
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, "company not found"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return http.StatusBadRequest, "you have already applied for this job"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		err      error
		wantCode int
		wantMsg  string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or credentials"},
		{domain.ErrAccountPending, http.StatusForbidden, "account is pending approval, please wait for an administrator to approve your request"},
		{domain.ErrAccountRejected, http.StatusForbidden, "your account has been rejected, please contact support"},
		{domain.ErrReferralCodeRequired, http.StatusBadRequest, "referral code is required for non-admin login"},
		{domain.ErrReferralExpired, http.StatusUnauthorized, "referral code expired"},
		{domain.ErrAlreadyApproved, http.StatusConflict, "user already approved"},
		{domain.ErrAlreadyRejected, http.StatusConflict, "user already rejected"},
		{domain.ErrUnauthorized, http.StatusForbidden, "insufficient role"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrAccountNotFound, http.StatusNotFound, "user not found"},
		{domain.ErrAccountExists, http.StatusConflict, "user already exists"},
		{domain.ErrJobNotFound, http.StatusNotFound, "job post not found"},
		{domain.ErrAlreadyApplied, http.StatusBadRequest, "you have already applied for this job"},
	}

	for _, tc := range cases {
		code, msg := renderError(t, tc.err)
		if code != tc.wantCode || msg != tc.wantMsg {
			t.Fatalf("%v: got (%d, %q), want (%d, %q)", tc.err, code, msg, tc.wantCode, tc.wantMsg)
		}
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrJobNotFound)

	code, msg := renderError(t, wrapped)
	if code != http.StatusNotFound || msg != "job post not found" {
		t.Fatalf("wrapped error not unwrapped: (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later"))
	if code != http.StatusTooManyRequests || msg != "too many login attempts, try again later" {
		t.Fatalf("unexpected: (%d, %q)", code, msg)
	}
}

func TestHTTPErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: socket closed"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

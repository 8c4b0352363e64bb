package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runSession(t *testing.T, authHeader string) Principal {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got Principal
	handler := Session(testSecret)(func(c echo.Context) error {
		got = PrincipalFrom(c)
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return got
}

func TestSession_ValidToken(t *testing.T) {
	expiry := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":                 "acc-1",
		"email":               "seeker@example.com",
		"name":                "Seeker",
		"role":                string(domain.RoleJobSeeker),
		"status":              string(domain.StatusApproved),
		"exp":                 time.Now().Add(time.Hour).Unix(),
		"referral_expires_at": expiry.Unix(),
	})

	p := runSession(t, "Bearer "+token)
	if !p.Authenticated {
		t.Fatalf("expected authenticated principal")
	}
	if p.ID != "acc-1" || p.Role != domain.RoleJobSeeker || p.Status != domain.StatusApproved {
		t.Fatalf("unexpected principal: %+v", p)
	}
	if !p.ReferralExpiresAt.Equal(expiry) {
		t.Fatalf("unexpected referral expiry: %v", p.ReferralExpiresAt)
	}
}

func TestSession_GuestFallbacks(t *testing.T) {
	expired := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "acc-1",
		"role": string(domain.RoleJobSeeker),
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})
	wrongSecret := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  "acc-1",
		"role": string(domain.RoleJobSeeker),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	missingSub := signToken(t, testSecret, jwt.MapClaims{
		"role": string(domain.RoleJobSeeker),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + wrongSecret},
		{"missing sub claim", "Bearer " + missingSub},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := runSession(t, tc.header)
			if p.Authenticated {
				t.Fatalf("expected guest principal, got %+v", p)
			}
			if p.Role != domain.RoleGuest || p.Status != domain.StatusPending {
				t.Fatalf("guest default wrong: %+v", p)
			}
		})
	}
}

func TestSession_RejectsUnexpectedAlgorithm(t *testing.T) {
	// alg=none must not be accepted even with a well-formed payload.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "acc-1",
		"role": string(domain.RoleAdministrator),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	p := runSession(t, "Bearer "+token)
	if p.Authenticated {
		t.Fatalf("unsigned token was accepted: %+v", p)
	}
}

func TestPrincipalFrom_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	p := PrincipalFrom(c)
	if p.Authenticated || p.Role != domain.RoleGuest {
		t.Fatalf("expected guest default, got %+v", p)
	}
}

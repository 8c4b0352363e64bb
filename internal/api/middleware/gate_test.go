package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

type stubAccountReader struct {
	summaries map[string]*domain.AccountSummary
	failWith  error
}

func (r *stubAccountReader) FindSummaryByID(_ context.Context, id string) (*domain.AccountSummary, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	summary, ok := r.summaries[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	clone := *summary
	return &clone, nil
}

var gateNow = func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) }

// serveWithPrincipal seeds the principal the way the session middleware
// would, then runs the request through the gate.
func serveWithPrincipal(reader *stubAccountReader, path string, p Principal) *httptest.ResponseRecorder {
	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(principalKey, p)
			return next(c)
		}
	})
	e.Use(Gate(GateConfig{
		Routes: RouteTable{
			"/api/jobs":        {domain.RoleJobSeeker, domain.RoleJobPoster, domain.RoleAdministrator},
			"/api/admin/users": {domain.RoleAdministrator},
		},
		Public:   []string{"/api/login", "/health"},
		Accounts: reader,
		Logger:   zerolog.Nop(),
		Now:      gateNow,
	}))

	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.GET("/api/login", ok)
	e.GET("/health", ok)
	e.GET("/api/jobs", ok)
	e.GET("/api/admin/users", ok)
	e.GET("/open", ok)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func approvedSummary(id string, role domain.Role) *domain.AccountSummary {
	return &domain.AccountSummary{
		ID:                id,
		Email:             id + "@example.com",
		Role:              role,
		Status:            domain.StatusApproved,
		ReferralExpiresAt: gateNow().Add(24 * time.Hour),
	}
}

func authedPrincipal(id string, role domain.Role) Principal {
	return Principal{
		ID:            id,
		Email:         id + "@example.com",
		Role:          role,
		Status:        domain.StatusApproved,
		Authenticated: true,
	}
}

func TestGate_PublicBypassesEverything(t *testing.T) {
	reader := &stubAccountReader{failWith: errors.New("store down")}

	rec := serveWithPrincipal(reader, "/api/login", guestPrincipal())
	if rec.Code != http.StatusOK {
		t.Fatalf("public route blocked: %d", rec.Code)
	}
}

func TestGate_UnprotectedRoutePassesGuests(t *testing.T) {
	rec := serveWithPrincipal(&stubAccountReader{}, "/open", guestPrincipal())
	if rec.Code != http.StatusOK {
		t.Fatalf("unprotected route blocked: %d", rec.Code)
	}
}

func TestGate_GuestRedirectedToLogin(t *testing.T) {
	rec := serveWithPrincipal(&stubAccountReader{}, "/api/jobs", guestPrincipal())
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("unexpected redirect: %s", loc)
	}
}

func TestGate_UnapprovedStatusDominates(t *testing.T) {
	// A pending admin is bounced even on an unprotected route; approval
	// gating precedes the route table.
	p := authedPrincipal("admin-1", domain.RoleAdministrator)
	p.Status = domain.StatusPending

	rec := serveWithPrincipal(&stubAccountReader{}, "/open", p)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "/login?error=AccessDenied&status=Pending" {
		t.Fatalf("unexpected redirect: %s", loc)
	}
}

func TestGate_RoleDenied(t *testing.T) {
	reader := &stubAccountReader{summaries: map[string]*domain.AccountSummary{
		"seeker-1": approvedSummary("seeker-1", domain.RoleJobSeeker),
	}}

	rec := serveWithPrincipal(reader, "/api/admin/users", authedPrincipal("seeker-1", domain.RoleJobSeeker))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("role denial should redirect home, got %s", loc)
	}
}

func TestGate_AllowsMatchingRole(t *testing.T) {
	reader := &stubAccountReader{summaries: map[string]*domain.AccountSummary{
		"seeker-1": approvedSummary("seeker-1", domain.RoleJobSeeker),
	}}

	rec := serveWithPrincipal(reader, "/api/jobs", authedPrincipal("seeker-1", domain.RoleJobSeeker))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (location %s)", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGate_FreshnessOverridesTokenClaims(t *testing.T) {
	// The token says Approved, the store says Rejected: the store wins.
	rejected := approvedSummary("seeker-1", domain.RoleJobSeeker)
	rejected.Status = domain.StatusRejected
	reader := &stubAccountReader{summaries: map[string]*domain.AccountSummary{
		"seeker-1": rejected,
	}}

	rec := serveWithPrincipal(reader, "/api/jobs", authedPrincipal("seeker-1", domain.RoleJobSeeker))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=AccessDenied&status=Rejected" {
		t.Fatalf("unexpected redirect: %s", loc)
	}
}

func TestGate_ReferralExpiryBites(t *testing.T) {
	stale := approvedSummary("seeker-1", domain.RoleJobSeeker)
	stale.ReferralExpiresAt = gateNow().Add(-time.Minute)
	reader := &stubAccountReader{summaries: map[string]*domain.AccountSummary{
		"seeker-1": stale,
	}}

	rec := serveWithPrincipal(reader, "/api/jobs", authedPrincipal("seeker-1", domain.RoleJobSeeker))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=ReferralExpired" {
		t.Fatalf("unexpected redirect: %s", loc)
	}
}

func TestGate_AdminExemptFromReferralExpiry(t *testing.T) {
	admin := approvedSummary("admin-1", domain.RoleAdministrator)
	admin.ReferralExpiresAt = gateNow().Add(-time.Hour)
	reader := &stubAccountReader{summaries: map[string]*domain.AccountSummary{
		"admin-1": admin,
	}}

	rec := serveWithPrincipal(reader, "/api/admin/users", authedPrincipal("admin-1", domain.RoleAdministrator))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin blocked by referral expiry: %d", rec.Code)
	}
}

func TestGate_DeletedAccountDenied(t *testing.T) {
	reader := &stubAccountReader{summaries: map[string]*domain.AccountSummary{}}

	rec := serveWithPrincipal(reader, "/api/jobs", authedPrincipal("ghost", domain.RoleJobSeeker))
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?error=AccessDenied" {
		t.Fatalf("unexpected redirect: %s", loc)
	}
}

func TestGate_StoreFailureFailsClosed(t *testing.T) {
	reader := &stubAccountReader{failWith: errors.New("store down")}

	rec := serveWithPrincipal(reader, "/api/jobs", authedPrincipal("seeker-1", domain.RoleJobSeeker))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRouteTable_Allowed(t *testing.T) {
	table := RouteTable{"/api/jobs": {domain.RoleJobSeeker}}

	if !table.Allowed("/api/jobs", domain.RoleJobSeeker) {
		t.Fatalf("expected allow")
	}
	if table.Allowed("/api/jobs", domain.RoleReferrer) {
		t.Fatalf("expected deny for unlisted role")
	}
	if table.Allowed("/unknown", domain.RoleJobSeeker) {
		t.Fatalf("unknown route must not allow anyone")
	}
}

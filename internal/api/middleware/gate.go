package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/api/metrics"
	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// RouteTable maps registered echo route patterns (e.g. "/api/jobs/:id") to
// the roles allowed on them. Routes absent from the table are unprotected.
// The table is configuration: handlers never re-derive authorization.
type RouteTable map[string][]domain.Role

// Allowed reports whether the role may access the route pattern.
func (t RouteTable) Allowed(path string, role domain.Role) bool {
	for _, r := range t[path] {
		if r == role {
			return true
		}
	}
	return false
}

// GateConfig wires the authorization gate.
type GateConfig struct {
	Routes RouteTable
	// Public routes bypass every check: login, registration, health.
	Public   []string
	Accounts ports.AccountReader
	Logger   zerolog.Logger
	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// Gate enforces status, role, and referral-expiry rules on every request,
// in that order. An unapproved session is bounced before its role is even
// considered, and a revoked or expired referral window overrides an
// otherwise valid session token: the shorter of the two expiries controls.
// Every denial redirects; the gate never fails open.
func Gate(cfg GateConfig) echo.MiddlewareFunc {
	public := make(map[string]struct{}, len(cfg.Public))
	for _, p := range cfg.Public {
		public[p] = struct{}{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}

			if _, ok := public[path]; ok {
				return next(c)
			}

			p := PrincipalFrom(c)

			// Approval gating dominates route-specific rules: an unapproved
			// session is denied everywhere, whatever it asked for.
			if p.Authenticated && p.Status != domain.StatusApproved {
				metrics.GateDecisionsTotal.WithLabelValues("status_denied").Inc()
				cfg.Logger.Warn().
					Str("email", p.Email).
					Str("status", string(p.Status)).
					Msg("unapproved account denied")
				return redirectLogin(c, "AccessDenied", string(p.Status))
			}

			_, protected := cfg.Routes[path]
			if !protected {
				return next(c)
			}

			if !p.Authenticated || p.Role == domain.RoleGuest {
				metrics.GateDecisionsTotal.WithLabelValues("guest_denied").Inc()
				return redirectLogin(c, "", "")
			}

			if !cfg.Routes.Allowed(path, p.Role) {
				metrics.GateDecisionsTotal.WithLabelValues("role_denied").Inc()
				cfg.Logger.Warn().
					Str("email", p.Email).
					Str("role", string(p.Role)).
					Str("path", path).
					Msg("access denied")
				return c.Redirect(http.StatusFound, "/")
			}

			// Freshness check against current store state, not the token
			// claim: a rejection or expiry must bite before the 30-day
			// session runs out.
			summary, err := cfg.Accounts.FindSummaryByID(c.Request().Context(), p.ID)
			if err != nil {
				if errors.Is(err, domain.ErrAccountNotFound) {
					metrics.GateDecisionsTotal.WithLabelValues("status_denied").Inc()
					return redirectLogin(c, "AccessDenied", "")
				}
				metrics.GateDecisionsTotal.WithLabelValues("store_error").Inc()
				return echo.NewHTTPError(http.StatusServiceUnavailable, "account store unavailable")
			}
			if summary.Status != domain.StatusApproved {
				metrics.GateDecisionsTotal.WithLabelValues("status_denied").Inc()
				return redirectLogin(c, "AccessDenied", string(summary.Status))
			}
			if summary.Role != domain.RoleAdministrator && summary.ReferralExpired(now()) {
				metrics.GateDecisionsTotal.WithLabelValues("referral_expired").Inc()
				cfg.Logger.Warn().Str("email", p.Email).Msg("referral access expired")
				return redirectLogin(c, "ReferralExpired", "")
			}

			metrics.GateDecisionsTotal.WithLabelValues("allow").Inc()
			return next(c)
		}
	}
}

func redirectLogin(c echo.Context, reason, status string) error {
	target := "/login"
	q := url.Values{}
	if reason != "" {
		q.Set("error", reason)
	}
	if status != "" {
		q.Set("status", status)
	}
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return c.Redirect(http.StatusFound, target)
}

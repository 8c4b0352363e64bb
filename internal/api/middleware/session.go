package middleware

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

const principalKey = "principal"

// Principal is the requester's identity as decoded from the session token.
// An absent or invalid token yields the zero-trust default: role Guest,
// status Pending, Authenticated false.
type Principal struct {
	ID            string
	Email         string
	Name          string
	Image         string
	Role          domain.Role
	Status        domain.Status
	Authenticated bool
	// ReferralExpiresAt is the expiry claim minted at login. It can be up to
	// thirty days stale, so the gate re-reads the store instead of trusting it.
	ReferralExpiresAt time.Time
}

func guestPrincipal() Principal {
	return Principal{Role: domain.RoleGuest, Status: domain.StatusPending}
}

// Session decodes the bearer token and stores the resulting Principal in
// the request context. It never rejects a request itself; routing decisions
// belong to the Gate.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(principalKey, decodePrincipal(c, jwtSecret))
			return next(c)
		}
	}
}

// PrincipalFrom returns the Principal stored by Session, or the guest
// default when the middleware did not run.
func PrincipalFrom(c echo.Context) Principal {
	if p, ok := c.Get(principalKey).(Principal); ok {
		return p
	}
	return guestPrincipal()
}

func decodePrincipal(c echo.Context, jwtSecret string) Principal {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return guestPrincipal()
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return guestPrincipal()
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return guestPrincipal()
	}

	p := Principal{
		ID:            stringClaim(claims, "sub"),
		Email:         stringClaim(claims, "email"),
		Name:          stringClaim(claims, "name"),
		Image:         stringClaim(claims, "image"),
		Role:          domain.Role(stringClaim(claims, "role")),
		Status:        domain.Status(stringClaim(claims, "status")),
		Authenticated: true,
	}
	if p.ID == "" || p.Role == "" {
		return guestPrincipal()
	}
	if p.Status == "" {
		p.Status = domain.StatusPending
	}
	if exp, ok := claims["referral_expires_at"].(float64); ok {
		p.ReferralExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return p
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}

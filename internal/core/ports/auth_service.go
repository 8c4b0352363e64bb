package ports

import (
	"context"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// LoginInput is one authentication attempt. Email is required; exactly one
// of Password or ReferralCode is meaningful depending on the account class.
type LoginInput struct {
	Email        string
	Password     string
	ReferralCode string
}

// RegisterInput creates a new Pending account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthService is the login and registration surface.
type AuthService interface {
	// Login validates credentials and, on success, returns a signed session
	// token plus the authenticated identity. Failures are the sentinel
	// errors of the domain package, surfaced verbatim and never retried.
	Login(ctx context.Context, input LoginInput) (string, *domain.Identity, error)

	Register(ctx context.Context, input RegisterInput) (*domain.AccountSummary, error)
}

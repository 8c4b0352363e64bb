package ports

import (
	"context"
	"time"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// AccountRepository is the credential store. Emails are stored lowercased
// and the store enforces their uniqueness.
//
// FindByEmail is the only query that returns the full record including the
// password hash and the bound referral code; every other read hands back a
// secret-free AccountSummary.
type AccountRepository interface {
	Create(ctx context.Context, acc *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindSummaryByID(ctx context.Context, id string) (*domain.AccountSummary, error)
	ListSummariesByStatus(ctx context.Context, status domain.Status) ([]domain.AccountSummary, error)

	// Approve flips the account to Approved and binds the referral code in a
	// single conditional update. Returns domain.ErrAlreadyApproved when the
	// account is already Approved, so two concurrent approvals cannot both
	// issue a code.
	Approve(ctx context.Context, id, code string, expiresAt time.Time) error

	// Reject flips the account to Rejected and clears the referral fields,
	// revoking any outstanding access. Returns domain.ErrAlreadyRejected when
	// the account is already Rejected.
	Reject(ctx context.Context, id string) error

	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.AccountSummary, error)
}

// AccountReader is the read surface the authorization gate checks on every
// protected request. The session token can be up to thirty days old, so
// status and referral expiry come from here, not from the token;
// implementations may cache briefly.
type AccountReader interface {
	FindSummaryByID(ctx context.Context, id string) (*domain.AccountSummary, error)
}

// SnapshotInvalidator drops any cached account snapshot after a lifecycle
// change, so the gate sees the new status on the next request instead of
// after a cache TTL.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, accountID string)
}

// ProfileUpdate carries the self-service editable fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Name      *string
	Image     *string
	ResumeURL *string
}

// Empty reports whether the update would change nothing.
func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.Image == nil && u.ResumeURL == nil
}

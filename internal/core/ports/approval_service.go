package ports

import (
	"context"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// Actor identifies who is performing an administrative action, as decoded
// from the caller's session.
type Actor struct {
	ID   string
	Role domain.Role
}

// ApprovalService drives the account lifecycle: Pending → Approved/Rejected.
// The route table already restricts these operations to administrators; the
// service re-validates the actor's role anyway.
type ApprovalService interface {
	// Approve issues a fresh referral code, binds it to the account, and
	// notifies the owner by mail. Returns domain.ErrAlreadyApproved when the
	// account is already Approved; the existing code is left untouched.
	Approve(ctx context.Context, accountID string, actor Actor) (*domain.ReferralCode, error)

	// Reject revokes any outstanding referral access and notifies the owner.
	// Returns domain.ErrAlreadyRejected when the account is already Rejected.
	Reject(ctx context.Context, accountID string, actor Actor) error

	// ReferralHistory returns every code ever issued to the account, newest
	// first. Records are append-only, so a re-approved account shows one
	// record per approval.
	ReferralHistory(ctx context.Context, accountID string, actor Actor) ([]domain.ReferralCode, error)
}

// AccountService is the account read/update surface outside the approval
// workflow: admin listings and self-service profiles.
type AccountService interface {
	ListByStatus(ctx context.Context, status domain.Status, actor Actor) ([]domain.AccountSummary, error)
	Profile(ctx context.Context, accountID string) (*domain.AccountSummary, error)
	UpdateProfile(ctx context.Context, accountID string, update ProfileUpdate) (*domain.AccountSummary, error)
}

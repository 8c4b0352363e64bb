package ports

import (
	"context"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// ReferralRepository persists the audit trail of issued referral codes.
// Records are append-only in this core: a re-approval inserts a new record.
type ReferralRepository interface {
	Create(ctx context.Context, rec *domain.ReferralCode) (*domain.ReferralCode, error)
	ListByAccount(ctx context.Context, accountID string) ([]domain.ReferralCode, error)
}

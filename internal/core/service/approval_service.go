package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// ApprovalService drives the Pending → Approved/Rejected transition and
// owns referral code issuance.
type ApprovalService struct {
	accounts  ports.AccountRepository
	referrals ports.ReferralRepository
	notifier  ports.Notifier
	snapshots ports.SnapshotInvalidator
	baseURL   string
	logger    zerolog.Logger
	now       func() time.Time
}

func NewApprovalService(accounts ports.AccountRepository, referrals ports.ReferralRepository, notifier ports.Notifier, snapshots ports.SnapshotInvalidator, baseURL string, logger zerolog.Logger) *ApprovalService {
	return &ApprovalService{
		accounts:  accounts,
		referrals: referrals,
		notifier:  notifier,
		snapshots: snapshots,
		baseURL:   baseURL,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *ApprovalService) Approve(ctx context.Context, accountID string, actor ports.Actor) (*domain.ReferralCode, error) {
	if actor.Role != domain.RoleAdministrator {
		return nil, domain.ErrUnauthorized
	}

	acc, err := s.accounts.FindSummaryByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	code, err := generateReferralCode()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expiresAt := now.AddDate(0, 1, 0)

	// Conditional update: only one of two racing approvals can win, and the
	// loser reports AlreadyApproved without rotating the issued code.
	if err := s.accounts.Approve(ctx, accountID, code, expiresAt); err != nil {
		return nil, err
	}

	// The gate must see the new status on the next request, not after the
	// snapshot TTL.
	s.snapshots.Invalidate(ctx, accountID)

	rec, err := s.referrals.Create(ctx, &domain.ReferralCode{
		Code:        code,
		GeneratedBy: actor.ID,
		Account:     accountID,
		Active:      true,
		SingleUse:   false,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("account_id", accountID).
		Str("admin_id", actor.ID).
		Time("expires_at", expiresAt).
		Msg("account approved")

	// Approval is durable at this point; a failed mail must not undo it.
	if err := s.notifier.Send(ctx, acc.Email,
		"Your Udyog Jagat Account is Approved!",
		approvalText(acc.Name, code, expiresAt, s.baseURL),
		approvalHTML(acc.Name, code, expiresAt, s.baseURL),
	); err != nil {
		s.logger.Error().Err(err).Str("email", acc.Email).Msg("approval notification failed")
	}

	return rec, nil
}

func (s *ApprovalService) Reject(ctx context.Context, accountID string, actor ports.Actor) error {
	if actor.Role != domain.RoleAdministrator {
		return domain.ErrUnauthorized
	}

	acc, err := s.accounts.FindSummaryByID(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.accounts.Reject(ctx, accountID); err != nil {
		return err
	}

	// Rejection revokes access immediately; a stale cached snapshot would
	// keep the account through the gate until the TTL runs out.
	s.snapshots.Invalidate(ctx, accountID)

	s.logger.Info().
		Str("account_id", accountID).
		Str("admin_id", actor.ID).
		Msg("account rejected")

	if err := s.notifier.Send(ctx, acc.Email,
		"Your Udyog Jagat Registration Request Status",
		rejectionText(acc.Name),
		rejectionHTML(acc.Name),
	); err != nil {
		s.logger.Error().Err(err).Str("email", acc.Email).Msg("rejection notification failed")
	}

	return nil
}

func (s *ApprovalService) ReferralHistory(ctx context.Context, accountID string, actor ports.Actor) ([]domain.ReferralCode, error) {
	if actor.Role != domain.RoleAdministrator {
		return nil, domain.ErrUnauthorized
	}

	if _, err := s.accounts.FindSummaryByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.referrals.ListByAccount(ctx, accountID)
}

// generateReferralCode returns 16 uppercase hex characters from 8 random
// bytes. Codes are server-issued, never user-chosen.
func generateReferralCode() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate referral code: %w", err)
	}
	return strings.ToUpper(fmt.Sprintf("%x", b)), nil
}

func displayName(name string) string {
	if name == "" {
		return "User"
	}
	return name
}

func approvalText(name, code string, expiresAt time.Time, baseURL string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nYour Udyog Jagat registration request has been approved!\n\n"+
			"You can now log in using your email and the following referral code:\n\n"+
			"Referral Code: %s\n\nThis code is valid until: %s\n\n"+
			"Please keep this code safe. You will need it every time you log in.\n\n"+
			"Login here: %s/login\n\nThank you,\nUdyog Jagat Team",
		displayName(name), code, expiresAt.Format("January 2, 2006 15:04 MST"), baseURL)
}

func approvalHTML(name, code string, expiresAt time.Time, baseURL string) string {
	return fmt.Sprintf(
		"<p>Dear %s,</p><p>Your Udyog Jagat registration request has been approved!</p>"+
			"<p>You can now log in using your email and the following referral code:</p>"+
			"<p><strong>Referral Code: %s</strong></p>"+
			"<p>This code is valid until: %s</p>"+
			"<p>Please keep this code safe. You will need it every time you log in.</p>"+
			"<p><a href=%q>Click here to Login</a></p>"+
			"<p>Thank you,</p><p>Udyog Jagat Team</p>",
		displayName(name), code, expiresAt.Format("January 2, 2006 15:04 MST"), baseURL+"/login")
}

func rejectionText(name string) string {
	return fmt.Sprintf(
		"Dear %s,\n\nWe regret to inform you that your Udyog Jagat registration request "+
			"has been rejected. If you believe this is an error, please contact support.\n\n"+
			"Thank you,\nUdyog Jagat Team",
		displayName(name))
}

func rejectionHTML(name string) string {
	return fmt.Sprintf(
		"<p>Dear %s,</p><p>We regret to inform you that your Udyog Jagat registration request has been rejected.</p>"+
			"<p>If you believe this is an error, please contact support.</p>"+
			"<p>Thank you,</p><p>Udyog Jagat Team</p>",
		displayName(name))
}

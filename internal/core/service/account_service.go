package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// AccountService covers account reads and self-service profile updates.
type AccountService struct {
	accounts ports.AccountRepository
	logger   zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{accounts: accounts, logger: logger}
}

// ListByStatus returns account summaries for the admin management screen.
func (s *AccountService) ListByStatus(ctx context.Context, status domain.Status, actor ports.Actor) ([]domain.AccountSummary, error) {
	if actor.Role != domain.RoleAdministrator {
		return nil, domain.ErrUnauthorized
	}
	return s.accounts.ListSummariesByStatus(ctx, status)
}

func (s *AccountService) Profile(ctx context.Context, accountID string) (*domain.AccountSummary, error) {
	return s.accounts.FindSummaryByID(ctx, accountID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, accountID string, update ports.ProfileUpdate) (*domain.AccountSummary, error) {
	updated, err := s.accounts.UpdateProfile(ctx, accountID, update)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("account_id", accountID).Msg("profile updated")
	return updated, nil
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// AuthService implements login and registration. Login itself is read-only:
// all account mutation happens in the approval workflow.
type AuthService struct {
	accounts   ports.AccountRepository
	jwtSecret  string
	sessionTTL time.Duration
	logger     zerolog.Logger
	now        func() time.Time
}

func NewAuthService(accounts ports.AccountRepository, jwtSecret string, sessionTTL time.Duration, logger zerolog.Logger) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		accounts:   accounts,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.Identity, error) {
	email := normalizeEmail(input.Email)
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Same failure as a bad code or password: a login attempt must
			// not reveal whether the email is registered.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	identity, err := domain.EvaluateLogin(acc, domain.Credentials{
		Password:     input.Password,
		ReferralCode: input.ReferralCode,
	}, s.now())
	if err != nil {
		s.logger.Info().Str("email", email).Err(err).Msg("login rejected")
		return "", nil, err
	}

	token, err := s.issueToken(identity)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("email", email).Str("role", string(identity.Role)).Msg("login succeeded")
	return token, identity, nil
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.AccountSummary, error) {
	email := normalizeEmail(input.Email)
	if input.Name == "" || email == "" || !input.Role.IsRegistrable() {
		return nil, domain.ErrInvalidCredentials
	}

	acc := &domain.Account{
		Name:   input.Name,
		Email:  email,
		Role:   input.Role,
		Status: domain.StatusPending,
	}

	// Only administrator accounts authenticate by password; everyone else
	// logs in with the referral code issued at approval, so a supplied
	// password is simply discarded.
	if input.Role == domain.RoleAdministrator && input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		acc.PasswordHash = string(hash)
	}

	now := s.now().UTC()
	acc.CreatedAt = now
	acc.UpdatedAt = now

	created, err := s.accounts.Create(ctx, acc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", string(input.Role)).Msg("registration submitted")
	return summaryOf(created), nil
}

// issueToken mints the signed session. The referral fields ride along as
// informational claims; the authorization gate never trusts them and
// re-reads current account state instead.
func (s *AuthService) issueToken(identity *domain.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":    identity.ID,
		"email":  identity.Email,
		"role":   string(identity.Role),
		"status": string(identity.Status),
		"name":   identity.Name,
		"image":  identity.Image,
		"exp":    s.now().Add(s.sessionTTL).Unix(),
	}
	if identity.ReferralCode != "" {
		claims["referral_code"] = identity.ReferralCode
	}
	if !identity.ReferralExpiresAt.IsZero() {
		claims["referral_expires_at"] = identity.ReferralExpiresAt.Unix()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func summaryOf(acc *domain.Account) *domain.AccountSummary {
	return &domain.AccountSummary{
		ID:                acc.ID,
		Email:             acc.Email,
		Name:              acc.Name,
		Image:             acc.Image,
		Role:              acc.Role,
		Status:            acc.Status,
		ReferralExpiresAt: acc.ReferralExpiresAt,
		ResumeURL:         acc.ResumeURL,
		CreatedAt:         acc.CreatedAt,
		UpdatedAt:         acc.UpdatedAt,
	}
}

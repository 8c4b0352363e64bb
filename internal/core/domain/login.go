package domain

import (
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Credentials is one login attempt as presented by the caller. Exactly one
// of Password or ReferralCode is meaningful depending on the account class.
type Credentials struct {
	Password     string
	ReferralCode string
}

// Identity is the snapshot of an account returned by a successful login.
// It is what the session token is minted from.
type Identity struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name,omitempty"`
	Image             string    `json:"image,omitempty"`
	Role              Role      `json:"role"`
	Status            Status    `json:"status"`
	ReferralCode      string    `json:"-"`
	ReferralExpiresAt time.Time `json:"referral_expires_at,omitempty"`
}

// EvaluateLogin decides a login attempt against a fetched account record.
// It is a pure function: no I/O, no clock reads, no mutation.
//
// Administrators authenticate with a password; everyone else with the
// referral code issued at approval. The branch order matters: pending and
// rejected accounts get their own distinct failures so the caller can
// explain them, while a wrong code or a cleared code collapses into the
// generic invalid-credentials failure.
func EvaluateLogin(acc *Account, creds Credentials, now time.Time) (*Identity, error) {
	if acc == nil {
		return nil, ErrInvalidCredentials
	}

	if acc.Role == RoleAdministrator && creds.Password != "" {
		if acc.PasswordHash == "" {
			return nil, ErrNoPasswordConfigured
		}
		if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(creds.Password)) != nil {
			return nil, ErrInvalidCredentials
		}
		// Status is checked after the password so a failed guess learns
		// nothing about the account's lifecycle state.
		switch acc.Status {
		case StatusPending:
			return nil, ErrAccountPending
		case StatusRejected:
			return nil, ErrAccountRejected
		}
		return identityOf(acc), nil
	}

	if creds.ReferralCode == "" {
		return nil, ErrReferralCodeRequired
	}

	switch acc.Status {
	case StatusPending:
		return nil, ErrAccountPending
	case StatusRejected:
		return nil, ErrAccountRejected
	}

	if acc.ReferralCode == "" || subtle.ConstantTimeCompare([]byte(acc.ReferralCode), []byte(creds.ReferralCode)) != 1 {
		return nil, ErrInvalidCredentials
	}

	if !acc.ReferralExpiresAt.IsZero() && acc.ReferralExpiresAt.Before(now) {
		return nil, ErrReferralExpired
	}

	return identityOf(acc), nil
}

func identityOf(acc *Account) *Identity {
	return &Identity{
		ID:                acc.ID,
		Email:             acc.Email,
		Name:              acc.Name,
		Image:             acc.Image,
		Role:              acc.Role,
		Status:            acc.Status,
		ReferralCode:      acc.ReferralCode,
		ReferralExpiresAt: acc.ReferralExpiresAt,
	}
}

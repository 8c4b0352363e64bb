package domain

import (
	"errors"
	"time"
)

// Role identifies what an account is allowed to do. Fixed at registration;
// accounts cannot escalate their own role.
type Role string

const (
	RoleGuest         Role = "Guest"
	RoleJobSeeker     Role = "Job Seeker"
	RoleJobPoster     Role = "Job Poster"
	RoleReferrer      Role = "Referrer"
	RoleAdministrator Role = "Administrator"
)

// registrableRoles are the roles a new account may request at sign-up.
var registrableRoles = map[Role]struct{}{
	RoleJobSeeker:     {},
	RoleJobPoster:     {},
	RoleReferrer:      {},
	RoleAdministrator: {},
}

// IsRegistrable reports whether the role can be requested at registration.
func (r Role) IsRegistrable() bool {
	_, ok := registrableRoles[r]
	return ok
}

// Status is the account lifecycle state. Every account starts Pending and
// is moved to Approved or Rejected by an administrator.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountPending = errors.New("account pending approval")
var ErrAccountRejected = errors.New("account rejected")
var ErrReferralCodeRequired = errors.New("referral code required")
var ErrReferralExpired = errors.New("referral code expired")
var ErrNoPasswordConfigured = errors.New("administrator account has no password set")
var ErrAlreadyApproved = errors.New("account already approved")
var ErrAlreadyRejected = errors.New("account already rejected")
var ErrAccountNotFound = errors.New("account not found")
var ErrAccountExists = errors.New("account already exists")
var ErrUnauthorized = errors.New("unauthorized")

// Account is the full credential-store record, including secrets. Only the
// login path may load it; everything else works on AccountSummary.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Image        string    `json:"image,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	// ReferralCode is the single active code bound to this account. Set on
	// approval, cleared on rejection; overwritten on re-approval.
	ReferralCode      string    `json:"-"`
	ReferralExpiresAt time.Time `json:"referral_expires_at,omitempty"`
	ResumeURL         string    `json:"resume_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// AccountSummary is the secret-free projection used by the admin listing,
// profile views, and the authorization gate's freshness check.
type AccountSummary struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"name,omitempty"`
	Image             string    `json:"image,omitempty"`
	Role              Role      `json:"role"`
	Status            Status    `json:"status"`
	ReferralExpiresAt time.Time `json:"referral_expires_at,omitempty"`
	ResumeURL         string    `json:"resume_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ReferralExpired reports whether the referral window has closed as of now.
// A zero expiry means the code does not expire.
func (a AccountSummary) ReferralExpired(now time.Time) bool {
	return !a.ReferralExpiresAt.IsZero() && a.ReferralExpiresAt.Before(now)
}

package domain

import "time"

// ReferralCode is the durable record created when an administrator approves
// an account. One record per approval event; a re-approval inserts a fresh
// record rather than reusing this one.
type ReferralCode struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Code        string    `json:"code" bson:"code"`
	GeneratedBy string    `json:"generated_by" bson:"generated_by"`
	Account     string    `json:"account" bson:"account"`
	Active      bool      `json:"active" bson:"active"`
	SingleUse   bool      `json:"single_use" bson:"single_use"`
	ExpiresAt   time.Time `json:"expires_at" bson:"expires_at"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

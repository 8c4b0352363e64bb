package domain

import "time"

// Company is an employer referenced by job posts. Created explicitly or on
// the fly when a poster submits a job for a company the store has not seen.
type Company struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description,omitempty" bson:"description,omitempty"`
	Industry     string    `json:"industry,omitempty" bson:"industry,omitempty"`
	Website      string    `json:"website,omitempty" bson:"website,omitempty"`
	LogoURL      string    `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	RegisteredBy string    `json:"registered_by,omitempty" bson:"registered_by,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

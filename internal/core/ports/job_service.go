package ports

import (
	"context"
	"time"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// CreateJobInput carries everything needed to publish a listing. Exactly
// one of CompanyID or CompanyName must be set; an unknown CompanyName
// creates the company on the fly.
type CreateJobInput struct {
	Title               string
	Description         string
	CompanyID           string
	CompanyName         string
	Location            string
	JobType             domain.JobType
	ExperienceLevel     domain.ExperienceLevel
	SalaryRange         string
	SkillsRequired      []string
	ApplicationDeadline time.Time
}

// UpdateJobInput carries the editable fields of a listing. Nil means
// "leave unchanged".
type UpdateJobInput struct {
	Title               *string
	Description         *string
	Location            *string
	SalaryRange         *string
	SkillsRequired      *[]string
	ApplicationDeadline *time.Time
	Active              *bool
}

// SearchJobsInput is the public search surface. CompanyName is resolved to
// a company id before the store query; no match yields an empty result.
type SearchJobsInput struct {
	Keyword         string
	Location        string
	JobType         string
	ExperienceLevel string
	CompanyName     string
	SortBy          string
	Order           string
}

// JobDetail pairs a listing with its resolved company.
type JobDetail struct {
	Job     domain.JobPost  `json:"job"`
	Company *domain.Company `json:"company,omitempty"`
}

// JobService covers posting, searching, applying, and applicant review.
type JobService interface {
	Create(ctx context.Context, input CreateJobInput, actor Actor) (*JobDetail, error)
	Get(ctx context.Context, id string) (*JobDetail, error)
	Search(ctx context.Context, input SearchJobsInput) ([]JobDetail, error)
	Update(ctx context.Context, id string, input UpdateJobInput, actor Actor) (*JobDetail, error)
	Deactivate(ctx context.Context, id string, actor Actor) error
	Apply(ctx context.Context, jobID string, actor Actor) error
	// Applicants returns the applicant summaries for a listing. Job Posters
	// may only inspect their own listings; administrators see all.
	Applicants(ctx context.Context, jobID string, actor Actor) ([]domain.AccountSummary, error)
	ListPostedBy(ctx context.Context, actor Actor) ([]JobDetail, error)
}

package ports

import (
	"context"

	"github.com/udyogjagat/job-board/internal/core/domain"
)

// JobFilter narrows a job search. Zero values mean "no constraint".
// Keyword matches title, description, and required skills; Location and
// CompanyID are resolved by the caller before the query runs.
type JobFilter struct {
	Keyword         string
	Location        string
	JobType         domain.JobType
	ExperienceLevel domain.ExperienceLevel
	CompanyID       string
	// PostedBy restricts results to a single poster's listings.
	PostedBy string
	// IncludeInactive lifts the default active-only filter.
	IncludeInactive bool
	SortBy          string
	Ascending       bool
}

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPost) (*domain.JobPost, error)
	FindByID(ctx context.Context, id string) (*domain.JobPost, error)
	Search(ctx context.Context, filter JobFilter) ([]domain.JobPost, error)
	Update(ctx context.Context, job *domain.JobPost) error

	// AddApplicant appends the account to the job's applicant list only if it
	// is not already present. Returns domain.ErrAlreadyApplied otherwise.
	AddApplicant(ctx context.Context, jobID, accountID string) error

	// Deactivate hides the job from searches without deleting the record.
	Deactivate(ctx context.Context, id string) error
}

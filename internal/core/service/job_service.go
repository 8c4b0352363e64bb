package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// JobService implements listing management, search, and applications.
type JobService struct {
	jobs      ports.JobRepository
	companies ports.CompanyRepository
	accounts  ports.AccountRepository
	logger    zerolog.Logger
	now       func() time.Time
}

func NewJobService(jobs ports.JobRepository, companies ports.CompanyRepository, accounts ports.AccountRepository, logger zerolog.Logger) *JobService {
	return &JobService{
		jobs:      jobs,
		companies: companies,
		accounts:  accounts,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *JobService) Create(ctx context.Context, input ports.CreateJobInput, actor ports.Actor) (*ports.JobDetail, error) {
	if actor.Role != domain.RoleJobPoster && actor.Role != domain.RoleAdministrator {
		return nil, domain.ErrForbidden
	}

	company, err := s.resolveCompany(ctx, input, actor)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	job := &domain.JobPost{
		Title:               input.Title,
		Description:         input.Description,
		CompanyID:           company.ID,
		PostedBy:            actor.ID,
		Location:            input.Location,
		JobType:             input.JobType,
		ExperienceLevel:     input.ExperienceLevel,
		SalaryRange:         input.SalaryRange,
		SkillsRequired:      input.SkillsRequired,
		ApplicationDeadline: input.ApplicationDeadline,
		Active:              true,
		Applicants:          []string{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if job.SkillsRequired == nil {
		job.SkillsRequired = []string{}
	}

	created, err := s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("job_id", created.ID).Str("posted_by", actor.ID).Msg("job posted")
	return &ports.JobDetail{Job: *created, Company: company}, nil
}

// resolveCompany finds the referenced company, creating it when only a new
// name was supplied.
func (s *JobService) resolveCompany(ctx context.Context, input ports.CreateJobInput, actor ports.Actor) (*domain.Company, error) {
	if input.CompanyID != "" {
		return s.companies.FindByID(ctx, input.CompanyID)
	}

	company, err := s.companies.FindByName(ctx, input.CompanyName)
	if err == nil {
		return company, nil
	}
	if !errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, err
	}

	now := s.now().UTC()
	return s.companies.Create(ctx, &domain.Company{
		Name:         input.CompanyName,
		RegisteredBy: actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (s *JobService) Get(ctx context.Context, id string) (*ports.JobDetail, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCompany(ctx, job), nil
}

func (s *JobService) Search(ctx context.Context, input ports.SearchJobsInput) ([]ports.JobDetail, error) {
	filter := ports.JobFilter{
		Keyword:         input.Keyword,
		Location:        input.Location,
		JobType:         domain.JobType(input.JobType),
		ExperienceLevel: domain.ExperienceLevel(input.ExperienceLevel),
		SortBy:          input.SortBy,
		Ascending:       input.Order == "asc",
	}

	if input.CompanyName != "" {
		company, err := s.companies.FindByName(ctx, input.CompanyName)
		if err != nil {
			if errors.Is(err, domain.ErrCompanyNotFound) {
				return []ports.JobDetail{}, nil
			}
			return nil, err
		}
		filter.CompanyID = company.ID
	}

	jobs, err := s.jobs.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.withCompanies(ctx, jobs), nil
}

func (s *JobService) Update(ctx context.Context, id string, input ports.UpdateJobInput, actor ports.Actor) (*ports.JobDetail, error) {
	job, err := s.ownedJob(ctx, id, actor)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = *input.Title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.SalaryRange != nil {
		job.SalaryRange = *input.SalaryRange
	}
	if input.SkillsRequired != nil {
		job.SkillsRequired = *input.SkillsRequired
	}
	if input.ApplicationDeadline != nil {
		job.ApplicationDeadline = *input.ApplicationDeadline
	}
	if input.Active != nil {
		job.Active = *input.Active
	}
	job.UpdatedAt = s.now().UTC()

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, err
	}
	return s.withCompany(ctx, job), nil
}

func (s *JobService) Deactivate(ctx context.Context, id string, actor ports.Actor) error {
	if _, err := s.ownedJob(ctx, id, actor); err != nil {
		return err
	}
	if err := s.jobs.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("job_id", id).Str("actor_id", actor.ID).Msg("job deactivated")
	return nil
}

func (s *JobService) Apply(ctx context.Context, jobID string, actor ports.Actor) error {
	if actor.Role != domain.RoleJobSeeker && actor.Role != domain.RoleAdministrator {
		return domain.ErrForbidden
	}

	// Existence check first so a missing job reports NotFound rather than
	// a silent no-op from the conditional update.
	if _, err := s.jobs.FindByID(ctx, jobID); err != nil {
		return err
	}

	if err := s.jobs.AddApplicant(ctx, jobID, actor.ID); err != nil {
		return err
	}

	s.logger.Info().Str("job_id", jobID).Str("applicant_id", actor.ID).Msg("application submitted")
	return nil
}

func (s *JobService) Applicants(ctx context.Context, jobID string, actor ports.Actor) ([]domain.AccountSummary, error) {
	if actor.Role != domain.RoleJobPoster && actor.Role != domain.RoleAdministrator {
		return nil, domain.ErrForbidden
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleJobPoster && job.PostedBy != actor.ID {
		return nil, domain.ErrForbidden
	}

	applicants := make([]domain.AccountSummary, 0, len(job.Applicants))
	for _, accountID := range job.Applicants {
		summary, err := s.accounts.FindSummaryByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				continue
			}
			return nil, err
		}
		applicants = append(applicants, *summary)
	}
	return applicants, nil
}

func (s *JobService) ListPostedBy(ctx context.Context, actor ports.Actor) ([]ports.JobDetail, error) {
	if actor.Role != domain.RoleJobPoster && actor.Role != domain.RoleAdministrator {
		return nil, domain.ErrForbidden
	}

	filter := ports.JobFilter{IncludeInactive: true, SortBy: "created_at"}
	if actor.Role == domain.RoleJobPoster {
		filter.PostedBy = actor.ID
	}

	jobs, err := s.jobs.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.withCompanies(ctx, jobs), nil
}

func (s *JobService) ownedJob(ctx context.Context, id string, actor ports.Actor) (*domain.JobPost, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdministrator && job.PostedBy != actor.ID {
		return nil, domain.ErrForbidden
	}
	return job, nil
}

func (s *JobService) withCompany(ctx context.Context, job *domain.JobPost) *ports.JobDetail {
	detail := &ports.JobDetail{Job: *job}
	if company, err := s.companies.FindByID(ctx, job.CompanyID); err == nil {
		detail.Company = company
	}
	return detail
}

func (s *JobService) withCompanies(ctx context.Context, jobs []domain.JobPost) []ports.JobDetail {
	details := make([]ports.JobDetail, 0, len(jobs))
	for i := range jobs {
		details = append(details, *s.withCompany(ctx, &jobs[i]))
	}
	return details
}

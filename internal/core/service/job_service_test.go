package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

type stubJobRepo struct {
	jobs   map[string]*domain.JobPost
	nextID int
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{jobs: make(map[string]*domain.JobPost)}
}

func (r *stubJobRepo) Create(_ context.Context, job *domain.JobPost) (*domain.JobPost, error) {
	r.nextID++
	created := *job
	if created.ID == "" {
		created.ID = fmt.Sprintf("job-%d", r.nextID)
	}
	r.jobs[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.JobPost, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *job
	return &clone, nil
}

func (r *stubJobRepo) Search(_ context.Context, filter ports.JobFilter) ([]domain.JobPost, error) {
	var out []domain.JobPost
	for _, job := range r.jobs {
		if !filter.IncludeInactive && !job.Active {
			continue
		}
		if filter.PostedBy != "" && job.PostedBy != filter.PostedBy {
			continue
		}
		if filter.CompanyID != "" && job.CompanyID != filter.CompanyID {
			continue
		}
		if filter.JobType != "" && job.JobType != filter.JobType {
			continue
		}
		out = append(out, *job)
	}
	return out, nil
}

func (r *stubJobRepo) Update(_ context.Context, job *domain.JobPost) error {
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrJobNotFound
	}
	clone := *job
	r.jobs[job.ID] = &clone
	return nil
}

func (r *stubJobRepo) AddApplicant(_ context.Context, jobID, accountID string) error {
	job, ok := r.jobs[jobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.HasApplicant(accountID) {
		return domain.ErrAlreadyApplied
	}
	job.Applicants = append(job.Applicants, accountID)
	return nil
}

func (r *stubJobRepo) Deactivate(_ context.Context, id string) error {
	job, ok := r.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	job.Active = false
	return nil
}

type stubCompanyRepo struct {
	companies map[string]*domain.Company
	nextID    int
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (r *stubCompanyRepo) Create(_ context.Context, company *domain.Company) (*domain.Company, error) {
	r.nextID++
	created := *company
	if created.ID == "" {
		created.ID = fmt.Sprintf("co-%d", r.nextID)
	}
	r.companies[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubCompanyRepo) FindByID(_ context.Context, id string) (*domain.Company, error) {
	company, ok := r.companies[id]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	clone := *company
	return &clone, nil
}

func (r *stubCompanyRepo) FindByName(_ context.Context, name string) (*domain.Company, error) {
	for _, company := range r.companies {
		if company.Name == name {
			clone := *company
			return &clone, nil
		}
	}
	return nil, domain.ErrCompanyNotFound
}

var (
	posterActor = ports.Actor{ID: "poster-1", Role: domain.RoleJobPoster}
	seekerActor = ports.Actor{ID: "seeker-1", Role: domain.RoleJobSeeker}
)

func testJobService(jobs *stubJobRepo, companies *stubCompanyRepo, accounts *stubAccountRepo) *JobService {
	svc := NewJobService(jobs, companies, accounts, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestJobService_Create_NewCompanyOnTheFly(t *testing.T) {
	jobs := newStubJobRepo()
	companies := newStubCompanyRepo()
	svc := testJobService(jobs, companies, newStubAccountRepo())

	detail, err := svc.Create(context.Background(), ports.CreateJobInput{
		Title:           "Backend Engineer",
		Description:     "Build services",
		CompanyName:     "Acme",
		Location:        "Remote",
		JobType:         domain.JobFullTime,
		ExperienceLevel: domain.ExpMid,
	}, posterActor)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !detail.Job.Active || detail.Job.PostedBy != "poster-1" {
		t.Fatalf("unexpected job: %+v", detail.Job)
	}
	if detail.Company == nil || detail.Company.Name != "Acme" {
		t.Fatalf("company not created: %+v", detail.Company)
	}

	// A second post for the same company name reuses the record.
	second, err := svc.Create(context.Background(), ports.CreateJobInput{
		Title:       "Frontend Engineer",
		Description: "Build UI",
		CompanyName: "Acme",
	}, posterActor)
	if err != nil {
		t.Fatalf("second Create failed: %v", err)
	}
	if second.Company.ID != detail.Company.ID {
		t.Fatalf("duplicate company created")
	}
}

func TestJobService_Create_RoleCheck(t *testing.T) {
	svc := testJobService(newStubJobRepo(), newStubCompanyRepo(), newStubAccountRepo())

	for _, role := range []domain.Role{domain.RoleGuest, domain.RoleJobSeeker, domain.RoleReferrer} {
		actor := ports.Actor{ID: "x", Role: role}
		if _, err := svc.Create(context.Background(), ports.CreateJobInput{Title: "T", CompanyName: "C"}, actor); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestJobService_Create_UnknownCompanyID(t *testing.T) {
	svc := testJobService(newStubJobRepo(), newStubCompanyRepo(), newStubAccountRepo())

	if _, err := svc.Create(context.Background(), ports.CreateJobInput{
		Title:     "T",
		CompanyID: "missing",
	}, posterActor); !errors.Is(err, domain.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestJobService_Search_UnknownCompanyNameIsEmpty(t *testing.T) {
	svc := testJobService(newStubJobRepo(), newStubCompanyRepo(), newStubAccountRepo())

	details, err := svc.Search(context.Background(), ports.SearchJobsInput{CompanyName: "Nowhere Inc"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("expected empty result, got %d", len(details))
	}
}

func TestJobService_UpdateAndOwnership(t *testing.T) {
	jobs := newStubJobRepo()
	companies := newStubCompanyRepo()
	svc := testJobService(jobs, companies, newStubAccountRepo())

	detail, err := svc.Create(context.Background(), ports.CreateJobInput{Title: "Old", CompanyName: "Acme"}, posterActor)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "New"
	updated, err := svc.Update(context.Background(), detail.Job.ID, ports.UpdateJobInput{Title: &title}, posterActor)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Job.Title != "New" {
		t.Fatalf("title not updated: %+v", updated.Job)
	}

	other := ports.Actor{ID: "poster-2", Role: domain.RoleJobPoster}
	if _, err := svc.Update(context.Background(), detail.Job.ID, ports.UpdateJobInput{Title: &title}, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign poster, got %v", err)
	}

	admin := ports.Actor{ID: "admin-1", Role: domain.RoleAdministrator}
	if _, err := svc.Update(context.Background(), detail.Job.ID, ports.UpdateJobInput{Title: &title}, admin); err != nil {
		t.Fatalf("admin must be allowed to edit any job, got %v", err)
	}
}

func TestJobService_Deactivate(t *testing.T) {
	jobs := newStubJobRepo()
	svc := testJobService(jobs, newStubCompanyRepo(), newStubAccountRepo())

	detail, _ := svc.Create(context.Background(), ports.CreateJobInput{Title: "T", CompanyName: "Acme"}, posterActor)

	if err := svc.Deactivate(context.Background(), detail.Job.ID, posterActor); err != nil {
		t.Fatalf("Deactivate returned error: %v", err)
	}
	if jobs.jobs[detail.Job.ID].Active {
		t.Fatalf("job still active")
	}

	// Deactivated jobs drop out of the public search.
	details, err := svc.Search(context.Background(), ports.SearchJobsInput{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(details) != 0 {
		t.Fatalf("inactive job leaked into search: %+v", details)
	}
}

func TestJobService_Apply(t *testing.T) {
	jobs := newStubJobRepo()
	svc := testJobService(jobs, newStubCompanyRepo(), newStubAccountRepo())

	detail, _ := svc.Create(context.Background(), ports.CreateJobInput{Title: "T", CompanyName: "Acme"}, posterActor)

	if err := svc.Apply(context.Background(), detail.Job.ID, seekerActor); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if err := svc.Apply(context.Background(), detail.Job.ID, seekerActor); !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if err := svc.Apply(context.Background(), "missing", seekerActor); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := svc.Apply(context.Background(), detail.Job.ID, posterActor); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("posters must not apply, got %v", err)
	}
}

func TestJobService_Applicants(t *testing.T) {
	jobs := newStubJobRepo()
	accounts := newStubAccountRepo()
	svc := testJobService(jobs, newStubCompanyRepo(), accounts)

	accounts.add(&domain.Account{
		ID:     "seeker-1",
		Email:  "seeker@example.com",
		Name:   "Seeker",
		Role:   domain.RoleJobSeeker,
		Status: domain.StatusApproved,
	})

	detail, _ := svc.Create(context.Background(), ports.CreateJobInput{Title: "T", CompanyName: "Acme"}, posterActor)
	if err := svc.Apply(context.Background(), detail.Job.ID, seekerActor); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	applicants, err := svc.Applicants(context.Background(), detail.Job.ID, posterActor)
	if err != nil {
		t.Fatalf("Applicants returned error: %v", err)
	}
	if len(applicants) != 1 || applicants[0].ID != "seeker-1" {
		t.Fatalf("unexpected applicants: %+v", applicants)
	}

	other := ports.Actor{ID: "poster-2", Role: domain.RoleJobPoster}
	if _, err := svc.Applicants(context.Background(), detail.Job.ID, other); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign poster must not list applicants, got %v", err)
	}
}

func TestJobService_ListPostedBy(t *testing.T) {
	jobs := newStubJobRepo()
	svc := testJobService(jobs, newStubCompanyRepo(), newStubAccountRepo())

	mine, _ := svc.Create(context.Background(), ports.CreateJobInput{Title: "Mine", CompanyName: "Acme"}, posterActor)
	other := ports.Actor{ID: "poster-2", Role: domain.RoleJobPoster}
	_, _ = svc.Create(context.Background(), ports.CreateJobInput{Title: "Theirs", CompanyName: "Acme"}, other)
	if err := svc.Deactivate(context.Background(), mine.Job.ID, posterActor); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	// Posters see their own listings including inactive ones.
	details, err := svc.ListPostedBy(context.Background(), posterActor)
	if err != nil {
		t.Fatalf("ListPostedBy returned error: %v", err)
	}
	if len(details) != 1 || details[0].Job.ID != mine.Job.ID {
		t.Fatalf("unexpected listings: %+v", details)
	}

	admin := ports.Actor{ID: "admin-1", Role: domain.RoleAdministrator}
	all, err := svc.ListPostedBy(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin ListPostedBy failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see every listing, got %d", len(all))
	}
}

func TestAccountService_ListByStatus(t *testing.T) {
	accounts := newStubAccountRepo()
	svc := NewAccountService(accounts, zerolog.Nop())

	accounts.add(&domain.Account{ID: "p1", Email: "p1@example.com", Role: domain.RoleJobSeeker, Status: domain.StatusPending})
	accounts.add(&domain.Account{ID: "a1", Email: "a1@example.com", Role: domain.RoleJobSeeker, Status: domain.StatusApproved})

	admin := ports.Actor{ID: "admin-1", Role: domain.RoleAdministrator}
	pending, err := svc.ListByStatus(context.Background(), domain.StatusPending, admin)
	if err != nil {
		t.Fatalf("ListByStatus returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "p1" {
		t.Fatalf("unexpected result: %+v", pending)
	}

	if _, err := svc.ListByStatus(context.Background(), domain.StatusPending, seekerActor); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAccountService_UpdateProfile(t *testing.T) {
	accounts := newStubAccountRepo()
	svc := NewAccountService(accounts, zerolog.Nop())

	accounts.add(&domain.Account{ID: "acc-1", Email: "a@example.com", Role: domain.RoleJobSeeker, Status: domain.StatusApproved})

	name := "Renamed"
	resume := "https://cdn.example.com/resume.pdf"
	updated, err := svc.UpdateProfile(context.Background(), "acc-1", ports.ProfileUpdate{Name: &name, ResumeURL: &resume})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if updated.Name != "Renamed" || updated.ResumeURL != resume {
		t.Fatalf("profile not updated: %+v", updated)
	}

	if _, err := svc.UpdateProfile(context.Background(), "ghost", ports.ProfileUpdate{Name: &name}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

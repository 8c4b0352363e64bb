package handler

import (
	"time"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for informational success responses.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email        string `json:"email"         validate:"required,email"`
	Password     string `json:"password"      validate:"required_without=ReferralCode"`
	ReferralCode string `json:"referral_code" validate:"required_without=Password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  *domain.Identity `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role"     validate:"required,oneof='Job Seeker' 'Job Poster' Referrer Administrator"`
}

// --- Admin ---

type approvalRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Action string `json:"action"  validate:"required,oneof=approve reject"`
}

type approvalResponse struct {
	Message string                 `json:"message"`
	User    *domain.AccountSummary `json:"user,omitempty"`
}

type listUsersResponse struct {
	Users []domain.AccountSummary `json:"users"`
}

type referralHistoryResponse struct {
	Referrals []domain.ReferralCode `json:"referrals"`
}

// --- Jobs ---

type createJobRequest struct {
	Title               string   `json:"title"            validate:"required"`
	Description         string   `json:"description"      validate:"required"`
	CompanyID           string   `json:"company_id"       validate:"required_without=CompanyName"`
	CompanyName         string   `json:"company_name"     validate:"required_without=CompanyID"`
	Location            string   `json:"location"         validate:"required"`
	JobType             string   `json:"job_type"         validate:"required,oneof=Full-time Part-time Contract Temporary Internship"`
	ExperienceLevel     string   `json:"experience_level" validate:"required,oneof=Entry-level Mid-level Senior-level Director Executive"`
	SalaryRange         string   `json:"salary_range"`
	SkillsRequired      []string `json:"skills_required"`
	ApplicationDeadline string   `json:"application_deadline"`
}

type updateJobRequest struct {
	Title               *string   `json:"title"`
	Description         *string   `json:"description"`
	Location            *string   `json:"location"`
	SalaryRange         *string   `json:"salary_range"`
	SkillsRequired      *[]string `json:"skills_required"`
	ApplicationDeadline *string   `json:"application_deadline"`
	Active              *bool     `json:"active"`
}

type jobResponse struct {
	Message string           `json:"message,omitempty"`
	Job     *ports.JobDetail `json:"job,omitempty"`
}

type listJobsResponse struct {
	Jobs []ports.JobDetail `json:"jobs"`
}

type applicantsResponse struct {
	Applicants []domain.AccountSummary `json:"applicants"`
}

// --- Profile ---

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Image     *string `json:"image"`
	ResumeURL *string `json:"resume_url"`
}

type profileResponse struct {
	User *domain.AccountSummary `json:"user"`
}

// parseDeadline accepts RFC 3339 or a bare date.
func parseDeadline(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

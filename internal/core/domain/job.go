package domain

import (
	"errors"
	"time"
)

// JobType classifies the employment arrangement of a posting.
type JobType string

const (
	JobFullTime   JobType = "Full-time"
	JobPartTime   JobType = "Part-time"
	JobContract   JobType = "Contract"
	JobTemporary  JobType = "Temporary"
	JobInternship JobType = "Internship"
)

// ExperienceLevel classifies the seniority a posting targets.
type ExperienceLevel string

const (
	ExpEntry     ExperienceLevel = "Entry-level"
	ExpMid       ExperienceLevel = "Mid-level"
	ExpSenior    ExperienceLevel = "Senior-level"
	ExpDirector  ExperienceLevel = "Director"
	ExpExecutive ExperienceLevel = "Executive"
)

var ErrJobNotFound = errors.New("job post not found")
var ErrCompanyNotFound = errors.New("company not found")
var ErrAlreadyApplied = errors.New("already applied to this job")
var ErrForbidden = errors.New("access forbidden")

// JobPost is a single listing created by a Job Poster or an administrator.
type JobPost struct {
	ID                  string          `json:"id" bson:"_id,omitempty"`
	Title               string          `json:"title" bson:"title"`
	Description         string          `json:"description" bson:"description"`
	CompanyID           string          `json:"company_id" bson:"company_id"`
	PostedBy            string          `json:"posted_by" bson:"posted_by"`
	Location            string          `json:"location" bson:"location"`
	JobType             JobType         `json:"job_type" bson:"job_type"`
	ExperienceLevel     ExperienceLevel `json:"experience_level" bson:"experience_level"`
	SalaryRange         string          `json:"salary_range,omitempty" bson:"salary_range,omitempty"`
	SkillsRequired      []string        `json:"skills_required" bson:"skills_required"`
	ApplicationDeadline time.Time       `json:"application_deadline,omitempty" bson:"application_deadline,omitempty"`
	Active              bool            `json:"active" bson:"active"`
	Applicants          []string        `json:"applicants" bson:"applicants"`
	CreatedAt           time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at" bson:"updated_at"`
}

// HasApplicant reports whether the account already applied to this job.
func (j *JobPost) HasApplicant(accountID string) bool {
	for _, id := range j.Applicants {
		if id == accountID {
			return true
		}
	}
	return false
}

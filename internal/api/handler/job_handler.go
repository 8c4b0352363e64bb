package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/udyogjagat/job-board/internal/core/domain"
	"github.com/udyogjagat/job-board/internal/core/ports"
)

// JobHandler exposes job posting, search, and application endpoints.
type JobHandler struct {
	jobService ports.JobService
}

func NewJobHandler(jobService ports.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// Create publishes a new job listing.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	deadline, err := parseDeadline(req.ApplicationDeadline)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid application_deadline")
	}

	detail, err := h.jobService.Create(c.Request().Context(), ports.CreateJobInput{
		Title:               req.Title,
		Description:         req.Description,
		CompanyID:           req.CompanyID,
		CompanyName:         req.CompanyName,
		Location:            req.Location,
		JobType:             domain.JobType(req.JobType),
		ExperienceLevel:     domain.ExperienceLevel(req.ExperienceLevel),
		SalaryRange:         req.SalaryRange,
		SkillsRequired:      req.SkillsRequired,
		ApplicationDeadline: deadline,
	}, actorFrom(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, jobResponse{Message: "Job posted successfully", Job: detail})
}

// Search lists active jobs matching the query filters.
//
// @Summary      Search jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        keyword          query     string  false  "Matches title, description, skills"
// @Param        location         query     string  false  "Location substring"
// @Param        jobType          query     string  false  "Full-time | Part-time | Contract | Temporary | Internship"
// @Param        experienceLevel  query     string  false  "Entry-level | Mid-level | Senior-level | Director | Executive"
// @Param        companyName      query     string  false  "Company name substring"
// @Param        sortBy           query     string  false  "Sort field (default created_at)"
// @Param        order            query     string  false  "asc | desc (default desc)"
// @Success      200              {object}  listJobsResponse
// @Router       /api/jobs [get]
func (h *JobHandler) Search(c echo.Context) error {
	jobs, err := h.jobService.Search(c.Request().Context(), ports.SearchJobsInput{
		Keyword:         c.QueryParam("keyword"),
		Location:        c.QueryParam("location"),
		JobType:         c.QueryParam("jobType"),
		ExperienceLevel: c.QueryParam("experienceLevel"),
		CompanyName:     c.QueryParam("companyName"),
		SortBy:          c.QueryParam("sortBy"),
		Order:           c.QueryParam("order"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listJobsResponse{Jobs: jobs})
}

// Get returns a single job with its company.
//
// @Summary      Get a job by id
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	detail, err := h.jobService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobResponse{Job: detail})
}

// Update edits a listing owned by the caller (administrators edit any).
//
// @Summary      Update a job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	input := ports.UpdateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		SalaryRange:    req.SalaryRange,
		SkillsRequired: req.SkillsRequired,
		Active:         req.Active,
	}
	if req.ApplicationDeadline != nil {
		deadline, err := parseDeadline(*req.ApplicationDeadline)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid application_deadline")
		}
		input.ApplicationDeadline = &deadline
	}

	detail, err := h.jobService.Update(c.Request().Context(), c.Param("id"), input, actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobResponse{Message: "Job updated", Job: detail})
}

// Delete deactivates a listing.
//
// @Summary      Deactivate a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	if err := h.jobService.Deactivate(c.Request().Context(), c.Param("id"), actorFrom(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Job deactivated"})
}

// Apply records the caller as an applicant on the job.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	if err := h.jobService.Apply(c.Request().Context(), c.Param("id"), actorFrom(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Application submitted successfully"})
}

// Applicants lists who applied to a job the caller owns.
//
// @Summary      List applicants for a job
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  applicantsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/jobs/{id}/applicants [get]
func (h *JobHandler) Applicants(c echo.Context) error {
	applicants, err := h.jobService.Applicants(c.Request().Context(), c.Param("id"), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, applicantsResponse{Applicants: applicants})
}

// ListPostedBy lists the caller's own listings (admins see all).
//
// @Summary      List jobs posted by the caller
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listJobsResponse
// @Router       /api/jobs/posted-by-user [get]
func (h *JobHandler) ListPostedBy(c echo.Context) error {
	jobs, err := h.jobService.ListPostedBy(c.Request().Context(), actorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listJobsResponse{Jobs: jobs})
}

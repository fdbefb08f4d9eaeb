package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/jobboard/httpx"
	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/models"
	"github.com/diewo77/jobboard/validation"
)

// EmployerHandler serves the employer surface: job CRUD and application
// pipeline management.
type EmployerHandler struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func NewEmployerHandler(db *gorm.DB, engine *lifecycle.Engine) *EmployerHandler {
	return &EmployerHandler{DB: db, Engine: engine}
}

// requirePostingRights loads the acting employer and checks posting rights.
// Runs on every create so an account suspended mid-session loses rights
// immediately, regardless of token validity.
func (h *EmployerHandler) requirePostingRights(w http.ResponseWriter, r *http.Request) (lifecycle.Actor, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return actor, false
	}
	if actor.Role == models.RoleAdmin {
		return actor, true
	}
	var user models.User
	if err := h.DB.First(&user, actor.ID).Error; err != nil {
		httpx.Error(w, http.StatusUnauthorized, "account not found", nil)
		return actor, false
	}
	if !lifecycle.EmployerStatus(user.Status).CanPost() {
		httpx.Error(w, http.StatusForbidden, "employer account is not approved", nil)
		return actor, false
	}
	return actor, true
}

type jobInput struct {
	Title        *string  `json:"title"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	Location     *string  `json:"location"`
	Type         *string  `json:"type"`
	SalaryMin    *float64 `json:"salaryMin"`
	SalaryMax    *float64 `json:"salaryMax"`
	Currency     *string  `json:"currency"`
	Skills       *string  `json:"skills"`
	Benefits     *string  `json:"benefits"`
}

// CreateJob handles POST /employer/jobs.
func (h *EmployerHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requirePostingRights(w, r)
	if !ok {
		return
	}
	var input jobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	job := models.Job{
		CompanyID: actor.ID,
		Type:      models.JobTypeFullTime,
		Currency:  "USD",
		Status:    string(lifecycle.JobActive),
	}
	applyJobInput(&job, input)

	v := validation.Violations{}
	validation.Required("title", job.Title, v)
	validation.OneOf("type", job.Type, models.JobTypes, v)
	validation.SalaryRange("salary", job.SalaryMin, job.SalaryMax, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	if err := h.DB.Create(&job).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not create job", nil)
		return
	}
	httpx.OK(w, http.StatusCreated, "job created", job)
}

func applyJobInput(job *models.Job, input jobInput) {
	if input.Title != nil {
		job.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = *input.Requirements
	}
	if input.Location != nil {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.Type != nil {
		job.Type = *input.Type
	}
	if input.SalaryMin != nil {
		job.SalaryMin = *input.SalaryMin
	}
	if input.SalaryMax != nil {
		job.SalaryMax = *input.SalaryMax
	}
	if input.Currency != nil && *input.Currency != "" {
		job.Currency = *input.Currency
	}
	if input.Skills != nil {
		job.Skills = *input.Skills
	}
	if input.Benefits != nil {
		job.Benefits = *input.Benefits
	}
}

// loadOwnJob fetches a job and enforces ownership (admins pass).
func (h *EmployerHandler) loadOwnJob(w http.ResponseWriter, r *http.Request) (*models.Job, lifecycle.Actor, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return nil, actor, false
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return nil, actor, false
	}
	var job models.Job
	if err := h.DB.First(&job, id).Error; err != nil {
		httpx.DomainError(w, lifecycle.ErrJobNotFound)
		return nil, actor, false
	}
	if actor.Role != models.RoleAdmin && job.CompanyID != actor.ID {
		httpx.DomainError(w, lifecycle.ErrForbidden)
		return nil, actor, false
	}
	return &job, actor, true
}

// ListJobs handles GET /employer/jobs: the actor's own postings.
func (h *EmployerHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	var jobs []models.Job
	if err := h.DB.Where("company_id = ?", actor.ID).Order("created_at desc").Find(&jobs).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list jobs", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": jobs})
}

// GetJob handles GET /employer/jobs/{id}.
func (h *EmployerHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, _, ok := h.loadOwnJob(w, r)
	if !ok {
		return
	}
	httpx.OK(w, http.StatusOK, "", job)
}

// UpdateJob handles PATCH /employer/jobs/{id}. Status is not editable here;
// the status endpoint owns that transition.
func (h *EmployerHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	job, _, ok := h.loadOwnJob(w, r)
	if !ok {
		return
	}
	var input jobInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	applyJobInput(job, input)
	v := validation.Violations{}
	validation.Required("title", job.Title, v)
	validation.OneOf("type", job.Type, models.JobTypes, v)
	validation.SalaryRange("salary", job.SalaryMin, job.SalaryMax, v)
	if !v.Empty() {
		httpx.Error(w, http.StatusBadRequest, "validation failed", v)
		return
	}
	if err := h.DB.Save(job).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "could not update job", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "job updated", job)
}

// DeleteJob handles DELETE /employer/jobs/{id} with the application cascade.
func (h *EmployerHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return
	}
	if err := h.Engine.DeleteJob(r.Context(), id, actor); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "job deleted", nil)
}

// JobStatus handles PATCH /employer/jobs/{id}/status. With a status in the
// body the posting is set directly; with an empty body it toggles.
func (h *EmployerHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input)
	}
	var job *models.Job
	var err error
	if input.Status == "" {
		job, err = h.Engine.ToggleJobStatus(r.Context(), id, actor)
	} else {
		job, err = h.Engine.SetJobStatus(r.Context(), id, input.Status, actor)
	}
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "job status updated", job)
}

// applicationView flattens an application with its applicant summary for the
// employer, keeping credential and unrelated profile fields out.
func applicationView(a models.Application) map[string]any {
	return map[string]any{
		"id":                a.ID,
		"jobId":             a.JobID,
		"status":            a.Status,
		"coverLetter":       a.CoverLetter,
		"notes":             a.Notes,
		"interviewAt":       a.InterviewAt,
		"interviewLocation": a.InterviewLocation,
		"appliedAt":         a.CreatedAt,
		"applicant": map[string]any{
			"id":         a.Applicant.ID,
			"name":       a.Applicant.Name,
			"email":      a.Applicant.Email,
			"resumeRef":  a.Applicant.ResumeRef,
			"skills":     a.Applicant.Skills,
			"experience": a.Applicant.Experience,
			"education":  a.Applicant.Education,
		},
	}
}

// ListApplications handles GET /employer/applications[?job_id=]. Only
// applications to the actor's own jobs are visible.
func (h *EmployerHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	ownJobs := h.DB.Model(&models.Job{}).Select("id").Where("company_id = ?", actor.ID)
	dbq := h.DB.Preload("Applicant").Where("job_id IN (?)", ownJobs)
	if v := r.URL.Query().Get("job_id"); v != "" {
		jobID, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid job_id", nil)
			return
		}
		dbq = dbq.Where("job_id = ?", uint(jobID))
	}
	var apps []models.Application
	if err := dbq.Order("created_at desc").Find(&apps).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list applications", nil)
		return
	}
	items := make([]map[string]any, 0, len(apps))
	for _, a := range apps {
		items = append(items, applicationView(a))
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": items})
}

// GetApplication handles GET /employer/applications/{id}.
func (h *EmployerHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid application id", nil)
		return
	}
	var app models.Application
	if err := h.DB.Preload("Job").Preload("Applicant").First(&app, id).Error; err != nil {
		httpx.DomainError(w, lifecycle.ErrNotFound)
		return
	}
	if actor.Role != models.RoleAdmin && app.Job.CompanyID != actor.ID {
		httpx.DomainError(w, lifecycle.ErrForbidden)
		return
	}
	httpx.OK(w, http.StatusOK, "", applicationView(app))
}

// UpdateApplicationStatus handles PATCH /employer/applications/{id}/status.
func (h *EmployerHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid application id", nil)
		return
	}
	var input struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	app, err := h.Engine.UpdateApplicationStatus(r.Context(), id, input.Status, input.Notes, actor)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "application status updated", applicationView(*app))
}

// ScheduleInterview handles POST /employer/applications/{id}/interview.
// The invitation email is synchronous: if it cannot be delivered the
// application does not move to interview and the request fails.
func (h *EmployerHandler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	id, okID := pathID(r, "id")
	if !okID {
		httpx.Error(w, http.StatusBadRequest, "invalid application id", nil)
		return
	}
	var input struct {
		Date     string `json:"date"` // RFC3339
		Location string `json:"location"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	at, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, "validation failed", validation.Violations{"date": "invalid_datetime"})
		return
	}
	app, err := h.Engine.ScheduleInterview(r.Context(), id, at, input.Location, input.Notes, actor)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "interview scheduled", applicationView(*app))
}

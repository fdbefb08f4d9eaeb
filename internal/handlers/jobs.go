package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/jobboard/httpx"
	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/models"
)

// JobsHandler serves the public job catalog plus the jobseeker-side
// application endpoints (apply, status, withdraw).
type JobsHandler struct {
	DB     *gorm.DB
	Engine *lifecycle.Engine
}

func NewJobsHandler(db *gorm.DB, engine *lifecycle.Engine) *JobsHandler {
	return &JobsHandler{DB: db, Engine: engine}
}

// List handles GET /jobs with q/type/location filters and pagination.
// Only active postings are listed publicly.
func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	dbq := h.DB.Model(&models.Job{}).Where("status = ?", string(lifecycle.JobActive))
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		dbq = dbq.Where("lower(title) LIKE ? OR lower(description) LIKE ? OR lower(skills) LIKE ?", like, like, like)
	}
	if t := r.URL.Query().Get("type"); t != "" {
		dbq = dbq.Where("type = ?", t)
	}
	if loc := strings.TrimSpace(r.URL.Query().Get("location")); loc != "" {
		dbq = dbq.Where("lower(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}
	var total int64
	dbq.Count(&total)
	var jobs []models.Job
	if err := dbq.Order("created_at desc").Limit(limit).Offset(offset).Find(&jobs).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list jobs", nil)
		return
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": jobs, "total": total, "limit": limit, "offset": offset})
}

// Get handles GET /jobs/{id}. Every single-job fetch counts as a view,
// repeats from the same client included.
func (h *JobsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		httpx.Error(w, http.StatusBadRequest, "invalid job id", nil)
		return
	}
	if err := h.Engine.RecordView(r.Context(), id); err != nil {
		httpx.DomainError(w, err)
		return
	}
	var job models.Job
	if err := h.DB.First(&job, id).Error; err != nil {
		httpx.DomainError(w, lifecycle.ErrJobNotFound)
		return
	}
	httpx.OK(w, http.StatusOK, "", job)
}

// Apply handles POST /jobs/{id}/apply.
func (h *JobsHandler) Apply(w http.ResponseWriter, r *http.Request) {
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
		CoverLetter string `json:"coverLetter"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&input) // cover letter is optional
	}
	app, err := h.Engine.Apply(r.Context(), id, actor, input.CoverLetter)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusCreated, "application submitted", app)
}

// ApplicationStatus handles GET /jobs/{id}/application-status.
func (h *JobsHandler) ApplicationStatus(w http.ResponseWriter, r *http.Request) {
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
	app, err := h.Engine.ApplicationFor(r.Context(), id, actor)
	if err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{
		"applied":       true,
		"status":        app.Status,
		"applicationId": app.ID,
		"appliedAt":     app.CreatedAt,
	})
}

// MyApplications handles GET /applications: the jobseeker's own
// applications, newest first, with job summaries.
func (h *JobsHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		httpx.Error(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	var apps []models.Application
	if err := h.DB.Preload("Job").
		Where("applicant_id = ?", actor.ID).
		Order("created_at desc").
		Find(&apps).Error; err != nil {
		httpx.Error(w, http.StatusInternalServerError, "failed to list applications", nil)
		return
	}
	items := make([]map[string]any, 0, len(apps))
	for _, a := range apps {
		items = append(items, map[string]any{
			"id":          a.ID,
			"status":      a.Status,
			"coverLetter": a.CoverLetter,
			"interviewAt": a.InterviewAt,
			"appliedAt":   a.CreatedAt,
			"job": map[string]any{
				"id":       a.Job.ID,
				"title":    a.Job.Title,
				"location": a.Job.Location,
				"type":     a.Job.Type,
				"status":   a.Job.Status,
			},
		})
	}
	httpx.OK(w, http.StatusOK, "", map[string]any{"items": items})
}

// Withdraw handles DELETE /applications/{id}.
func (h *JobsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
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
	if err := h.Engine.Withdraw(r.Context(), id, actor); err != nil {
		httpx.DomainError(w, err)
		return
	}
	httpx.OK(w, http.StatusOK, "application withdrawn", nil)
}

package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/diewo77/jobboard/internal/models"
	"github.com/diewo77/jobboard/internal/notify"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   uint
	Role models.Role
}

func (a Actor) admin() bool { return a.Role == models.RoleAdmin }

// Engine applies the lifecycle rules. It owns the two notification policies:
// strict dispatch for interview invitations (failure aborts the operation)
// and best-effort dispatch for employer status changes (failure is logged
// and swallowed).
type Engine struct {
	db      *gorm.DB
	strict  notify.Notifier
	relaxed notify.Notifier
	log     *logrus.Logger
}

// NewEngine wires the engine to the store and a notifier.
func NewEngine(db *gorm.DB, n notify.Notifier, log *logrus.Logger) *Engine {
	return &Engine{db: db, strict: n, relaxed: notify.NewBestEffort(n, log), log: log}
}

// isDuplicate detects unique-constraint violations across drivers.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// ─── Employer approval sub-machine ──────────────────────────────────────────

// SetEmployerStatus moves an employer account to target. Admin only.
// Setting the current status again is an idempotent no-op. Approval and
// rejection notify the employer best-effort: the transition persists and the
// call succeeds even when delivery fails.
func (e *Engine) SetEmployerStatus(ctx context.Context, employerID uint, target, reason string, actor Actor) (*models.User, error) {
	if !actor.admin() {
		return nil, ErrForbidden
	}
	st, err := ParseEmployerStatus(target)
	if err != nil {
		return nil, ErrInvalidStatus
	}
	var user models.User
	if err := e.db.WithContext(ctx).First(&user, employerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if user.Role != models.RoleEmployer {
		return nil, ErrNotFound
	}
	current := EmployerStatus(user.Status)
	if current == st {
		return &user, nil
	}
	if !EmployerTransitionAllowed(current, st) {
		return nil, ErrInvalidTransition
	}
	if err := e.db.WithContext(ctx).Model(&user).Update("status", string(st)).Error; err != nil {
		return nil, err
	}
	switch st {
	case EmployerApproved:
		_ = e.relaxed.Send(ctx, user.Email, notify.TemplateEmployerApproved, map[string]any{
			"companyName": user.CompanyName,
		})
	case EmployerRejected:
		_ = e.relaxed.Send(ctx, user.Email, notify.TemplateEmployerRejected, map[string]any{
			"companyName": user.CompanyName,
			"reason":      reason,
		})
	}
	return &user, nil
}

// ApproveEmployer transitions an employer to approved.
func (e *Engine) ApproveEmployer(ctx context.Context, employerID uint, actor Actor) (*models.User, error) {
	return e.SetEmployerStatus(ctx, employerID, string(EmployerApproved), "", actor)
}

// RejectEmployer transitions an employer to rejected with a free-text reason.
func (e *Engine) RejectEmployer(ctx context.Context, employerID uint, reason string, actor Actor) (*models.User, error) {
	return e.SetEmployerStatus(ctx, employerID, string(EmployerRejected), reason, actor)
}

// ─── Job status sub-machine ─────────────────────────────────────────────────

func (e *Engine) loadJob(ctx context.Context, jobID uint) (*models.Job, error) {
	var job models.Job
	if err := e.db.WithContext(ctx).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (e *Engine) requireJobOwner(job *models.Job, actor Actor) error {
	if actor.admin() || job.CompanyID == actor.ID {
		return nil
	}
	return ErrForbidden
}

// ToggleJobStatus flips active ↔ closed. Owner or admin only.
func (e *Engine) ToggleJobStatus(ctx context.Context, jobID uint, actor Actor) (*models.Job, error) {
	job, err := e.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := e.requireJobOwner(job, actor); err != nil {
		return nil, err
	}
	next := JobStatus(job.Status).Toggle()
	if err := e.db.WithContext(ctx).Model(job).Update("status", string(next)).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// SetJobStatus sets the posting status directly. Owner or admin only; the
// value is validated before anything is persisted.
func (e *Engine) SetJobStatus(ctx context.Context, jobID uint, target string, actor Actor) (*models.Job, error) {
	st, err := ParseJobStatus(target)
	if err != nil {
		return nil, ErrInvalidStatus
	}
	job, err := e.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := e.requireJobOwner(job, actor); err != nil {
		return nil, err
	}
	if err := e.db.WithContext(ctx).Model(job).Update("status", string(st)).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// DeleteJob removes a posting and cascades to its applications and saved-job
// bookmarks in one transaction, so a partial failure cannot leave orphans.
func (e *Engine) DeleteJob(ctx context.Context, jobID uint, actor Actor) error {
	job, err := e.loadJob(ctx, jobID)
	if err != nil {
		return err
	}
	if err := e.requireJobOwner(job, actor); err != nil {
		return err
	}
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", jobID).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, jobID).Error
	})
}

// DeleteUser removes a user and everything that references them. Admin only.
// For employers that means their jobs plus all applications and bookmarks on
// those jobs; for jobseekers their applications (with counter decrements)
// and bookmarks. Runs in one transaction.
func (e *Engine) DeleteUser(ctx context.Context, userID uint, actor Actor) error {
	if !actor.admin() {
		return ErrForbidden
	}
	var user models.User
	if err := e.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if user.Role == models.RoleEmployer {
			ownedJobs := tx.Model(&models.Job{}).Select("id").Where("company_id = ?", userID)
			if err := tx.Where("job_id IN (?)", ownedJobs).Delete(&models.Application{}).Error; err != nil {
				return err
			}
			if err := tx.Where("job_id IN (?)", ownedJobs).Delete(&models.SavedJob{}).Error; err != nil {
				return err
			}
			if err := tx.Where("company_id = ?", userID).Delete(&models.Job{}).Error; err != nil {
				return err
			}
		}
		appliedJobs := tx.Model(&models.Application{}).Select("job_id").Where("applicant_id = ?", userID)
		if err := tx.Model(&models.Job{}).Where("id IN (?)", appliedJobs).
			UpdateColumn("applications_count", gorm.Expr("applications_count - 1")).Error; err != nil {
			return err
		}
		if err := tx.Where("applicant_id = ?", userID).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.SavedJob{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// ─── Application sub-machine ────────────────────────────────────────────────

// Apply creates an application for an active job. Duplicates are rejected by
// the store-level uniqueness index, so racing applies from the same user
// cannot corrupt the counter: whichever write loses fails with
// ErrAlreadyApplied and nothing is mutated.
func (e *Engine) Apply(ctx context.Context, jobID uint, actor Actor, coverLetter string) (*models.Application, error) {
	if actor.Role != models.RoleJobseeker {
		return nil, ErrForbidden
	}
	job, err := e.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if JobStatus(job.Status) != JobActive {
		return nil, ErrJobClosed
	}
	app := models.Application{
		JobID:       jobID,
		ApplicantID: actor.ID,
		Status:      string(ApplicationApplied),
		CoverLetter: coverLetter,
	}
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&app).Error; err != nil {
			if isDuplicate(err) {
				return ErrAlreadyApplied
			}
			return err
		}
		return tx.Model(&models.Job{}).Where("id = ?", jobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1)).Error
	})
	if err != nil {
		return nil, err
	}
	var applicant models.User
	if err := e.db.WithContext(ctx).First(&applicant, actor.ID).Error; err == nil {
		_ = e.relaxed.Send(ctx, applicant.Email, notify.TemplateApplicationReceived, map[string]any{
			"name":     applicant.Name,
			"jobTitle": job.Title,
		})
	}
	return &app, nil
}

// ApplicationFor returns the actor's application to the given job, if any.
func (e *Engine) ApplicationFor(ctx context.Context, jobID uint, actor Actor) (*models.Application, error) {
	var app models.Application
	err := e.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", jobID, actor.ID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (e *Engine) loadApplication(ctx context.Context, appID uint) (*models.Application, error) {
	var app models.Application
	err := e.db.WithContext(ctx).Preload("Job").Preload("Applicant").First(&app, appID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// UpdateApplicationStatus moves an application along the pipeline. The
// employer owning the job (or an admin) may call it; every move is validated
// against the central transition table. Setting the current status again is
// a no-op apart from a notes update.
func (e *Engine) UpdateApplicationStatus(ctx context.Context, appID uint, target, notes string, actor Actor) (*models.Application, error) {
	app, err := e.loadApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !actor.admin() && app.Job.CompanyID != actor.ID {
		return nil, ErrForbidden
	}
	st, err := ParseApplicationStatus(target)
	if err != nil {
		return nil, ErrInvalidStatus
	}
	updates := map[string]any{}
	if notes != "" {
		updates["notes"] = notes
	}
	from := ApplicationStatus(app.Status)
	if from != st {
		if !ApplicationTransitionAllowed(from, st) {
			return nil, ErrInvalidTransition
		}
		updates["status"] = string(st)
	}
	if len(updates) > 0 {
		if err := e.db.WithContext(ctx).Model(app).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return app, nil
}

// ScheduleInterview transitions an application to interview and emails the
// candidate the date, location, and notes. Dispatch happens before the
// status write: if delivery fails the operation fails and the application
// stays untouched. This asymmetry with employer-approval notifications is
// deliberate.
func (e *Engine) ScheduleInterview(ctx context.Context, appID uint, at time.Time, location, notes string, actor Actor) (*models.Application, error) {
	app, err := e.loadApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !actor.admin() && app.Job.CompanyID != actor.ID {
		return nil, ErrForbidden
	}
	from := ApplicationStatus(app.Status)
	if !ApplicationTransitionAllowed(from, ApplicationInterview) {
		return nil, ErrInvalidTransition
	}
	data := map[string]any{
		"name":     app.Applicant.Name,
		"jobTitle": app.Job.Title,
		"date":     at.Format(time.RFC1123),
		"location": location,
		"notes":    notes,
	}
	if err := e.strict.Send(ctx, app.Applicant.Email, notify.TemplateInterviewScheduled, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, err)
	}
	updates := map[string]any{
		"status":             string(ApplicationInterview),
		"interview_at":       at,
		"interview_location": location,
	}
	if notes != "" {
		updates["notes"] = notes
	}
	if err := e.db.WithContext(ctx).Model(app).Updates(updates).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Withdraw deletes the actor's own application and decrements the job's
// counter. Not permitted once the employer has committed meaningfully
// (interview scheduled or hired).
func (e *Engine) Withdraw(ctx context.Context, appID uint, actor Actor) error {
	app, err := e.loadApplication(ctx, appID)
	if err != nil {
		return err
	}
	if app.ApplicantID != actor.ID {
		return ErrForbidden
	}
	st := ApplicationStatus(app.Status)
	if st == ApplicationHired || st == ApplicationInterview {
		return ErrWithdrawLocked
	}
	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Application{}, appID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Job{}).Where("id = ?", app.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count - ?", 1)).Error
	})
}

// ─── View / save counters ───────────────────────────────────────────────────

// RecordView bumps the job's view counter. Every fetch counts, repeats
// included; there is deliberately no per-viewer dedup.
func (e *Engine) RecordView(ctx context.Context, jobID uint) error {
	res := e.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", jobID).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

// SaveJob bookmarks a job for the actor. Saving twice is a conflict.
func (e *Engine) SaveJob(ctx context.Context, jobID uint, actor Actor) (*models.SavedJob, error) {
	if _, err := e.loadJob(ctx, jobID); err != nil {
		return nil, err
	}
	saved := models.SavedJob{UserID: actor.ID, JobID: jobID}
	if err := e.db.WithContext(ctx).Create(&saved).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrAlreadySaved
		}
		return nil, err
	}
	return &saved, nil
}

// UnsaveJob removes a bookmark; missing bookmarks are reported, not ignored.
func (e *Engine) UnsaveJob(ctx context.Context, jobID uint, actor Actor) error {
	res := e.db.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", actor.ID, jobID).
		Delete(&models.SavedJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotSaved
	}
	return nil
}

// SavedJobs lists the actor's bookmarks, newest first, with jobs preloaded.
func (e *Engine) SavedJobs(ctx context.Context, actor Actor) ([]models.SavedJob, error) {
	var saved []models.SavedJob
	err := e.db.WithContext(ctx).Preload("Job").
		Where("user_id = ?", actor.ID).
		Order("created_at desc").
		Find(&saved).Error
	return saved, err
}

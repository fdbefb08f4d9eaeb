package models

import "time"

// Application joins one Job and one jobseeker. The composite unique index
// enforces at most one application per (job, applicant) pair at the store
// level, so racing duplicate applies fail instead of corrupting counters.
type Application struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	JobID       uint `gorm:"not null;index;uniqueIndex:idx_job_applicant" json:"jobId"`
	Job         Job  `gorm:"foreignKey:JobID" json:"-"`
	ApplicantID uint `gorm:"not null;index;uniqueIndex:idx_job_applicant" json:"applicantId"`
	Applicant   User `gorm:"foreignKey:ApplicantID" json:"-"`

	Status      string `gorm:"not null;default:'applied';index" json:"status"`
	CoverLetter string `json:"coverLetter,omitempty"`
	Notes       string `json:"notes,omitempty"` // employer-facing notes, not shown to the applicant

	InterviewAt       *time.Time `json:"interviewAt,omitempty"`
	InterviewLocation string     `json:"interviewLocation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetUserID returns the applicant's user id for ownership checks.
func (a Application) GetUserID() uint { return a.ApplicantID }

package models

import "time"

// SavedJob is a bookmark: one jobseeker, one job, unique per pair.
// Re-saving an already saved job is a conflict, not a silent success.
type SavedJob struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index;uniqueIndex:idx_user_job" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`
	JobID  uint `gorm:"not null;index;uniqueIndex:idx_user_job" json:"jobId"`
	Job    Job  `gorm:"foreignKey:JobID" json:"job"`

	CreatedAt time.Time `json:"createdAt"`
}

// GetUserID returns the bookmarking user's id for ownership checks.
func (s SavedJob) GetUserID() uint { return s.UserID }

package models

import "time"

// Job employment types accepted by validation.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeContract   = "contract"
	JobTypeInternship = "internship"
)

// JobTypes lists every accepted employment type, in display order.
var JobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

// Job is a posting owned by exactly one employer user (CompanyID).
// ApplicationsCount and ViewsCount are derived counters, adjusted only with
// atomic expression updates so concurrent requests cannot lose increments.
type Job struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	CompanyID    uint   `gorm:"not null;index" json:"companyId"`
	Company      User   `gorm:"foreignKey:CompanyID" json:"-"`
	Title        string `gorm:"not null" json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	Type         string `gorm:"not null;default:'full-time'" json:"type"`

	SalaryMin float64 `json:"salaryMin"`
	SalaryMax float64 `json:"salaryMax"`
	Currency  string  `gorm:"not null;default:'USD'" json:"currency"`

	Status   string `gorm:"not null;default:'active';index" json:"status"`
	Skills   string `json:"skills,omitempty"` // comma-separated
	Benefits string `json:"benefits,omitempty"`

	ApplicationsCount int `gorm:"not null;default:0" json:"applicationsCount"`
	ViewsCount        int `gorm:"not null;default:0" json:"viewsCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetUserID returns the owning employer's user id for ownership checks.
func (j Job) GetUserID() uint { return j.CompanyID }

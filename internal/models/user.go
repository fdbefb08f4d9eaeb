package models

import "time"

// Role determines which surface of the API a user may reach.
// It is immutable after registration.
type Role string

const (
	RoleJobseeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
	RoleAdmin     Role = "admin"
)

// User covers all three account kinds. Employer- and jobseeker-only columns
// stay empty for the other roles. Status values live in internal/lifecycle.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique;not null;index" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name"`
	Role     Role   `gorm:"not null;index" json:"role"`
	Status   string `gorm:"not null;default:'active';index" json:"status"`

	// Employer profile
	CompanyName string `json:"companyName,omitempty"`
	Location    string `json:"location,omitempty"`
	LicenseRef  string `json:"licenseRef,omitempty"` // opaque blob-store reference
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`

	// Jobseeker profile
	ResumeRef  string `json:"resumeRef,omitempty"` // opaque blob-store reference
	Skills     string `json:"skills,omitempty"`    // comma-separated
	Experience string `json:"experience,omitempty"`
	Education  string `json:"education,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetUserID implements the Ownable contract used by ownership checks.
func (u User) GetUserID() uint { return u.ID }

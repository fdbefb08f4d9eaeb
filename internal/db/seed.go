package db

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/jobboard/internal/lifecycle"
	"github.com/diewo77/jobboard/internal/models"
)

// SeedAdmin creates the admin account if it does not exist yet. Admin access
// is granted only through this seeded account and the role column; no email
// address is ever special-cased in authorization logic. Idempotent.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if password == "" {
		// No credentials supplied: skip silently so dev setups without an
		// admin still boot.
		return nil
	}
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin lookup: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed admin hash: %w", err)
	}
	admin := models.User{
		Email:    email,
		Password: string(hash),
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		Status:   string(lifecycle.EmployerActive),
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin create: %w", err)
	}
	return nil
}

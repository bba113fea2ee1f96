package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/autofix-digital/template-base/internal/model"
)

// AutoMigrate runs schema migrations for all application models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.PasswordResetToken{},
		&model.Configuration{},
		&model.BlogPost{},
		&model.ContactMessage{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

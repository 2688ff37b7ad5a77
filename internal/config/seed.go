package config

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/airxelerate/flightboard/internal/hash"
	"github.com/airxelerate/flightboard/internal/models"
	"github.com/airxelerate/flightboard/internal/token"
)

// SeedUsers creates the default admin and user accounts when absent.
func SeedUsers(db *gorm.DB) error {
	seeds := []struct {
		username string
		password string
		role     token.Role
	}{
		{"admin", "admin123", token.RoleAdmin},
		{"user", "user123", token.RoleUser},
	}

	for _, s := range seeds {
		var existing models.User
		err := db.Where("username = ?", s.username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("seed lookup %q: %w", s.username, err)
		}

		pwHash, err := hash.HashPassword(s.password)
		if err != nil {
			return fmt.Errorf("seed hash %q: %w", s.username, err)
		}
		user := models.User{
			Username:     s.username,
			PasswordHash: pwHash,
			Role:         string(s.role),
			Enabled:      true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed create %q: %w", s.username, err)
		}
	}

	return nil
}

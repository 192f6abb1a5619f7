package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/deannos/solutions-company-website/internal/config"
	"github.com/deannos/solutions-company-website/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// EnsureAdmin creates the first administrator if no user exists yet. The
// password comes from admin.initial_password; when that is unset a random one
// is generated and logged exactly once so the operator can pick it up.
// A fixed well-known default credential is deliberately not supported.
func EnsureAdmin(db *gorm.DB, cfg config.AdminConfig) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	username := cfg.Username
	if username == "" {
		username = "admin"
	}

	password := cfg.InitialPassword
	generated := false
	if password == "" {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("generate admin password: %w", err)
		}
		password = hex.EncodeToString(buf)
		generated = true
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	if generated {
		logrus.WithField("username", username).
			Warnf("no admin account existed; created one with generated password %q, change it after first login", password)
	} else {
		logrus.WithField("username", username).Info("created initial admin account")
	}
	return nil
}

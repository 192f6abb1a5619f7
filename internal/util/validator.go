package util

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

// ValidateUsername checks the account name shape: 3-20 characters, letters,
// digits and underscore only.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username must be 3-20 letters, digits or underscores")
	}
	return nil
}

// ValidatePassword checks length bounds only. Anything longer than 72 bytes
// is silently truncated by bcrypt, so reject it up front.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	if len(password) > 72 {
		return fmt.Errorf("password too long, max 72 characters")
	}
	return nil
}

// ValidateEmail checks that the address is syntactically valid and carries no
// display name ("Jane <jane@acme.com>" is rejected).
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is empty")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}
	if addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidateRequired checks that a free-text field is non-blank and within a
// length limit.
func ValidateRequired(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is empty", field)
	}
	if maxLen > 0 && len(value) > maxLen {
		return fmt.Errorf("%s too long, max %d characters", field, maxLen)
	}
	return nil
}

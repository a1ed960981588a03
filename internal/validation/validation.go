// Package validation contains input validators for the public request
// surface. Each validator returns common.ErrValidation wrapped with a
// human-readable reason suitable for the client.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ronin-designs/studiokeeper/internal/common"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// All email comparisons in the system happen on this normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Email checks that the address is present and plausibly formed.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}
	return nil
}

// Password enforces the registration password policy: at least 8 characters
// with an uppercase letter, a lowercase letter, and a digit.
func Password(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", common.ErrValidation)
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper {
		return fmt.Errorf("%w: password must contain at least one uppercase letter", common.ErrValidation)
	}
	if !lower {
		return fmt.Errorf("%w: password must contain at least one lowercase letter", common.ErrValidation)
	}
	if !digit {
		return fmt.Errorf("%w: password must contain at least one number", common.ErrValidation)
	}
	return nil
}

// Name requires a trimmed length of at least 2 characters.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if len([]rune(strings.TrimSpace(name))) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", common.ErrValidation)
	}
	return nil
}

// Phone is optional; when present it must contain exactly 10 digits after
// stripping formatting characters.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits != 10 {
		return fmt.Errorf("%w: phone number must be 10 digits", common.ErrValidation)
	}
	return nil
}

// Message requires a trimmed length of at least 5 characters.
func Message(message string) error {
	if len([]rune(strings.TrimSpace(message))) < 5 {
		return fmt.Errorf("%w: message must be at least 5 characters", common.ErrValidation)
	}
	return nil
}

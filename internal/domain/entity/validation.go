package entity

import (
	"fmt"
	"regexp"
	"strings"
)

// MinPasswordLength is the minimum accepted password length. This is a
// fail-fast client-side check, not a security boundary; the identity
// provider applies its own policy.
const MinPasswordLength = 6

// maxTitleLength bounds article titles to keep the listing page sane.
const maxTitleLength = 200

// emailPattern is a basic syntactic check, deliberately loose.
// Full RFC 5322 validation is the identity provider's problem.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail checks that the email is syntactically plausible.
// Returns a ValidationError if it is empty or malformed.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	return nil
}

// ValidatePassword checks the minimum-length rule.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// ValidateTitle checks that an article title is present and within bounds.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must not exceed %d characters", maxTitleLength),
		}
	}
	return nil
}

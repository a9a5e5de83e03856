// Package validation checks registration input before any mutation
// happens. Rules run in a fixed order and the first failure wins; every
// failure carries a specific user-facing message.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 6
	MinAge            = 8
	MaxAge            = 15
)

var (
	usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Error is a validation failure with a message safe to show to users.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// ValidateName requires a non-empty name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &Error{Field: "name", Message: "Name is required."}
	}
	return nil
}

// ValidateUsername requires at least three characters drawn from letters,
// digits and underscores.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return &Error{Field: "username", Message: "Username must be at least 3 characters long."}
	}
	if !usernameRegex.MatchString(username) {
		return &Error{Field: "username", Message: "Username can only contain letters, numbers, and underscores."}
	}
	return nil
}

// ValidatePassword requires at least six characters.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return &Error{Field: "password", Message: "Password must be at least 6 characters long."}
	}
	return nil
}

// ValidateAge requires an age between 8 and 15 inclusive.
func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return &Error{Field: "age", Message: "Age must be between 8 and 15 years old."}
	}
	return nil
}

// ValidateEmail checks email syntax. Empty is not valid here; callers
// skip the check entirely when the field was not provided.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return &Error{Field: "parentEmail", Message: "Please enter a valid email address."}
	}
	return nil
}

// IsGmailAddress reports whether the address is on gmail.com. Non-Gmail
// addresses are allowed but trigger a non-blocking recommendation.
func IsGmailAddress(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	return strings.EqualFold(email[at+1:], "gmail.com")
}

// GmailRecommendation is surfaced alongside a successful registration
// when the parent email is valid but not a Gmail address.
func GmailRecommendation(email string) string {
	return fmt.Sprintf("We recommend using a Gmail address for the most reliable delivery of daily reports. '%s' will be used as provided.", email)
}

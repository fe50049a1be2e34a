// Package validation provides input validation utilities
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/SE-Project-GatorBlog/Gator-Blog/internal/models"
)

// emailDomain is the required institutional suffix. The comparison is
// case-sensitive: "@UFL.EDU" is rejected.
const emailDomain = "@ufl.edu"

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// ValidateEmail checks that the address carries the UF domain. Pure function
// of the string.
func ValidateEmail(email string) error {
	if email == "" {
		return models.NewValidationError("Email is required")
	}
	if !strings.HasSuffix(email, emailDomain) || len(email) <= len(emailDomain) {
		return models.NewValidationError("Please use your UF email address (@ufl.edu)")
	}
	return nil
}

// ValidateUsername allows letters, digits, underscores and periods only.
func ValidateUsername(username string) error {
	if username == "" {
		return models.NewValidationError("Username is required")
	}
	if !usernameRegex.MatchString(username) {
		return models.NewValidationError("Username may only contain letters, numbers, underscores, and periods")
	}
	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return models.NewValidationError("Password must be at least 8 characters long")
	}

	hasUpper := false
	hasDigit := false
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper {
		return models.NewValidationError("Password must contain at least one uppercase letter")
	}
	if !hasDigit {
		return models.NewValidationError("Password must contain at least one digit")
	}
	return nil
}

// ValidatePasswordMatch checks the password against its confirmation field.
func ValidatePasswordMatch(password, confirm string) error {
	if password != confirm {
		return models.NewValidationError("Passwords do not match")
	}
	return nil
}

// ValidateSignUp runs all pre-flight checks for a signup form. The first
// failure wins; nothing reaches the network on error.
func ValidateSignUp(username, email, password, confirm string) error {
	if err := ValidateUsername(username); err != nil {
		return err
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	return ValidatePasswordMatch(password, confirm)
}

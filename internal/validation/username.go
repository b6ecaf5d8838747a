// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateUsername checks that a username is non-empty, within length bounds
// and contains only letters, digits and underscores. Validation happens on
// the raw input; normalization to lowercase is a separate step so the error
// messages reflect what the user actually typed.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) < minUsernameLen {
		return fmt.Errorf("username must be at least %d characters", minUsernameLen)
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLen)
	}
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits and underscores")
	}
	return nil
}

// NormalizeUsername lowercases a username for storage and lookup. Usernames
// are case-insensitive: "FooBar" and "foobar" address the same profile.
func NormalizeUsername(username string) string {
	return strings.ToLower(username)
}

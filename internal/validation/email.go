package validation

import (
	"fmt"
	"net/mail"
	"strings"
)

// ValidateEmail checks that an email address is non-empty and syntactically
// valid per RFC 5322 address parsing.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

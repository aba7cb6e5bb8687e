package validators

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)

const MinPasswordLength = 6

func IsValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// IsValidPhone accepts an optional leading + followed by digits, spaces,
// dashes or parentheses, with at least 7 digits overall.
func IsValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if !phoneRe.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7
}

func IsValidPassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// SanitizeString trims s and drops angle brackets.
func SanitizeString(s string) string {
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(s))
}

func SanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeString(*s)
	return &v
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

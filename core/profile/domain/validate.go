package domain

import "strings"

// normalizeEmail lowercases and trims the address. Applied on both create
// and update so lookups against the lower(email) index stay consistent.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validPhone checks the digit count of a phone number, ignoring separator
// characters such as spaces, dashes, parentheses and a leading plus.
func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10 && digits <= 15
}

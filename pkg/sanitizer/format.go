package sanitizer

import "strings"

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Accounts are matched case-insensitively, so every lookup and write goes
// through this function. The local part is otherwise preserved as typed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

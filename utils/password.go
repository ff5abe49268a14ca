package utils

import "unicode"

// ValidatePassword checks signup password rules and returns the violated rule
// as a user-facing message, or an empty string when the password is fine.
func ValidatePassword(password string) string {
	if len(password) < 6 {
		return "password must be at least 6 characters"
	}
	if len(password) > 72 {
		return "password must be less than 72 characters"
	}
	if password[0] == ' ' || password[len(password)-1] == ' ' {
		return "password must not start or end with spaces"
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return "password must contain an upper case letter, a lower case letter, and a number"
	}
	return ""
}

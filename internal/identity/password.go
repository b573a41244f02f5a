package identity

import (
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 8

// PasswordStrength scores a password from 0 to 100 in steps of 25:
// one step each for minimum length in characters, a lowercase letter,
// an uppercase letter and a digit.
func PasswordStrength(password string) int {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	score := 0
	if utf8.RuneCountInString(password) >= MinPasswordLength {
		score += 25
	}
	for _, ok := range []bool{lower, upper, digit} {
		if ok {
			score += 25
		}
	}
	return score
}

// StrengthLabel names a PasswordStrength score for display.
func StrengthLabel(score int) string {
	switch {
	case score >= 100:
		return "Strong"
	case score >= 75:
		return "Good"
	case score >= 50:
		return "Fair"
	default:
		return "Weak"
	}
}

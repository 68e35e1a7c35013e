// Package phone maps free-form user input to the canonical +7XXXXXXXXXX form
// used as the record key.
package phone

import (
	"strings"
	"unicode"
)

// Prefix is the country prefix every canonical phone starts with.
const Prefix = "+7"

// Normalize strips whitespace and common separators and returns the canonical
// phone. The second result is false when the input does not look like a phone.
func Normalize(raw string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || r == '(' || r == ')' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	digits := strings.TrimPrefix(cleaned, "+")
	if digits == "" || !allDigits(digits) {
		return "", false
	}

	switch {
	case len(digits) == 11 && (digits[0] == '7' || digits[0] == '8'):
		return Prefix + digits[1:], true
	case len(digits) == 10:
		return Prefix + digits, true
	}
	return "", false
}

// Mask hides the middle of a phone for logs: +79991234567 -> +7******4567.
func Mask(p string) string {
	if len(p) <= len(Prefix)+4 {
		return p
	}
	hidden := len(p) - len(Prefix) - 4
	return p[:len(Prefix)] + strings.Repeat("*", hidden) + p[len(p)-4:]
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package utils

import "strings"

// NormalizePhone reduces a phone number to its canonical 10-digit form.
// Formatting characters are stripped, then a leading "+91"/"91" country
// code or a single leading zero is removed. The second return value is
// false when the result is not exactly 10 digits.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", false
	}
	return digits, true
}

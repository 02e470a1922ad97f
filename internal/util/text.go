package util

import (
	"strconv"
	"strings"
)

func StringPtr(v string) *string { return &v }

func IntPtr(v int) *int { return &v }

// ParseGroupedInt converts a currency or count token to an integer after
// stripping thousands separators. Fractional values are rejected; amounts
// are integer-only throughout.
func ParseGroupedInt(token string) (int, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	return strconv.Atoi(compact)
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

package utils

import (
	"regexp"
	"strings"
)

var uwiSeparators = regexp.MustCompile(`[^a-zA-Z0-9]`)

// NormalizeUWI strips separators and whitespace from a unique well
// identifier so that "42-123-45678-00-00", "42 123 45678 0000" and
// "421234567800 00" all resolve to the same key. Letters are kept
// because some regulators issue alphanumeric identifiers.
func NormalizeUWI(raw string) string {
	return uwiSeparators.ReplaceAllString(strings.TrimSpace(raw), "")
}

// UWIDigits reduces an identifier to its digits only. Media and log
// files frequently embed the API number without the check digits, so
// matching happens on the digit skeleton rather than the full UWI.
func UWIDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

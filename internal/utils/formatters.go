package utils

import "strings"

// OnlyDigits returns the ASCII digits of s in order.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders an 11-digit mobile number as (99) 99999-9999. Anything
// else is returned unchanged.
func FormatPhone(value string) string {
	d := OnlyDigits(value)
	if len(d) != 11 {
		return value
	}
	return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
}

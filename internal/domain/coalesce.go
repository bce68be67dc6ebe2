package domain

import "strings"

// FirstNonBlank returns the first value with non-whitespace content, or "".
func FirstNonBlank(vals ...string) string {
	for _, v := range vals {
		if trimmedNonEmpty(v) {
			return v
		}
	}
	return ""
}

func trimmedNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

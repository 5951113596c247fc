// Package validate provides format predicates for user-supplied text.
package validate

import (
	"net/http"
	"regexp"
	"unicode"
)

var cdKeyPattern = regexp.MustCompile(`(?i)^[0-9A-Z]{4,7}-[0-9A-Z]{4,7}-[0-9A-Z]{4,7}(?:(?:-[0-9A-Z]{4,7})?(?:-[0-9A-Z]{4,7}))?$`)

// IsClientErrorCode reports whether status is in the 4xx range.
func IsClientErrorCode(status int) bool {
	return status >= http.StatusBadRequest && status < http.StatusInternalServerError
}

// IsValidCDKey reports whether key looks like a product key: three to five
// dash-separated groups of 4–7 ASCII letters or digits, case-insensitive.
func IsValidCDKey(key string) bool {
	if key == "" {
		return false
	}
	return cdKeyPattern.MatchString(key)
}

// IsValidDigitsText reports whether text is non-empty and every rune is a
// Unicode decimal digit (category Nd), so "٣" and "１２" qualify.
func IsValidDigitsText(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidHexadecimalText reports whether text is a non-empty, even-length
// run of hex digits, i.e. a whole number of encoded bytes.
func IsValidHexadecimalText(text string) bool {
	if text == "" || len(text)%2 != 0 {
		return false
	}
	for i := 0; i < len(text); i++ {
		if !isHexDigit(text[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

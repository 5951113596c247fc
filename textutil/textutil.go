// Package textutil holds small helpers for command-style argument text.
package textutil

import (
	"strings"
	"time"
	"unicode"
)

// ArgsAsText joins args after skipping the first skip entries. ok is false
// when nothing remains or delimiter is empty.
func ArgsAsText(args []string, skip int, delimiter string) (text string, ok bool) {
	if skip < 0 || len(args) <= skip || delimiter == "" {
		return "", false
	}
	return strings.Join(args[skip:], delimiter), true
}

// TextAfterArgs splits text on whitespace into at most skip+1 fields,
// dropping empty ones, and returns the last field. When text has more than
// skip+1 fields the last one is the untouched remainder, inner spacing
// included. ok is false when text holds no fields.
//
//	TextAfterArgs("!say  bot1 hello   world", 2) // "hello   world", true
//	TextAfterArgs("!say bot1", 5)                // "bot1", true
func TextAfterArgs(text string, skip int) (last string, ok bool) {
	if skip < 0 {
		return "", false
	}

	rest := strings.TrimLeftFunc(text, unicode.IsSpace)
	if rest == "" {
		return "", false
	}

	for range skip {
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			return rest, true
		}
		next := strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
		if next == "" {
			return rest[:i], true
		}
		rest = next
	}
	return rest, true
}

// UnixTime returns the current time in whole seconds since the Unix epoch.
func UnixTime() uint32 {
	return uint32(time.Now().Unix())
}

// Single wraps one item in a slice.
func Single[T any](item T) []T {
	return []T{item}
}

// Package fsutil holds small filesystem helpers.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
)

// DeleteEmptyDirectoriesRecursively removes every directory under dir that
// is empty once its own empty children are gone, dir included. It is best
// effort: unreadable or busy directories are skipped. The number of removed
// directories is returned.
func DeleteEmptyDirectoriesRecursively(dir string) int {
	if dir == "" {
		return 0
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0
	}
	return pruneEmpty(dir)
}

func pruneEmpty(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			removed += pruneEmpty(filepath.Join(dir, entry.Name()))
		}
	}

	// Re-read: children removed above no longer count.
	if entries, err = os.ReadDir(dir); err != nil || len(entries) > 0 {
		return removed
	}
	if os.Remove(dir) == nil {
		removed++
	}
	return removed
}

// RelativeDirectoryStartsWith reports whether dir lies below one of the
// given prefixes, i.e. the prefix is followed by a path separator in dir.
// Matching is ordinal; "data" does not match "database/x".
func RelativeDirectoryStartsWith(dir string, prefixes ...string) bool {
	if dir == "" {
		return false
	}
	for _, prefix := range prefixes {
		if len(dir) <= len(prefix) || !strings.HasPrefix(dir, prefix) {
			continue
		}
		if isSeparator(dir[len(prefix)]) {
			return true
		}
	}
	return false
}

func isSeparator(c byte) bool {
	return c == '/' || os.IsPathSeparator(c)
}

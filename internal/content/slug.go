package content

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapse = regexp.MustCompile(`-+`)
)

// Slugify derives the URL-safe identifier for a source file. The
// derivation is deterministic and case-insensitive: two filenames
// differing only in case or punctuation collide onto the same slug,
// and the reconciler's exists check is the collision guard.
func Slugify(filename string) string {
	s := filepath.Base(filename)
	s = strings.TrimSuffix(s, filepath.Ext(s))
	s = strings.ToLower(s)
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

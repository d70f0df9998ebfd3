package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// fold decomposes accented runes and drops the combining marks, so
// "café" sanitizes to "cafe" instead of "caf_".
var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Filename replaces filesystem-unsafe runes with underscores, keeping the
// result usable as a path segment on any platform.
func Filename(input string) string {
	s := strings.TrimSpace(input)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}
	s = unsafe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

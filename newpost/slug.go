package newpost

import (
	"strings"
	"unicode"
)

// Slugify converts a title to the filename stem of a post. Letters and digits
// are kept, whitespace and hyphen runs become a single hyphen, everything else
// is dropped. The result never starts or ends with a hyphen.
func Slugify(title string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
		case r == '-', unicode.IsSpace(r):
			sep = true
		}
	}
	return b.String()
}

// ParseTags splits comma separated input into trimmed, non-empty tags.
func ParseTags(input string) []string {
	out := []string{}
	for _, t := range strings.Split(input, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

package crawl

import (
	"strings"
	"unicode"
)

// SanitizeTitle replaces non-ASCII and non-printable runes with '?' so
// titles are safe to log on any console encoding.
func SanitizeTitle(title string) string {
	var sb strings.Builder
	for _, r := range title {
		if r < 128 && unicode.IsPrint(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

package supportflow

import (
	"strings"
	"unicode"
)

// MaxInputLength caps sanitized subject and description text.
const MaxInputLength = 1000

const truncationSuffix = "..."

// Sanitize strips control and markup-sensitive characters from user input
// and caps its length. It is idempotent: Sanitize(Sanitize(x)) == Sanitize(x)
// for any input, and the output never contains a stripped character.
func Sanitize(text string) string {
	return sanitizeWithLimit(text, MaxInputLength)
}

func sanitizeWithLimit(text string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isStrippedRune(r) {
			continue
		}
		b.WriteRune(r)
	}

	out := strings.TrimSpace(b.String())

	// Truncate so the result, suffix included, never exceeds maxLen. The cut
	// point is snapped back to a rune boundary so the output stays valid
	// UTF-8 and re-sanitization is a no-op.
	if maxLen > len(truncationSuffix) && len(out) > maxLen {
		cut := strings.ToValidUTF8(out[:maxLen-len(truncationSuffix)], "")
		out = strings.TrimSpace(cut) + truncationSuffix
	}
	return out
}

// isStrippedRune reports whether r is removed during sanitization:
// control characters plus the markup/injection set <>"'&.
func isStrippedRune(r rune) bool {
	if unicode.IsControl(r) && r != '\n' && r != '\t' {
		return true
	}
	switch r {
	case '<', '>', '"', '\'', '&', '\x00':
		return true
	}
	return false
}

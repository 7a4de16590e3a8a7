package vault

import "strings"

const maxSlugLen = 100

// Slugify derives a filesystem-safe name fragment from a title or summary:
// characters invalid on common filesystems are removed, surrounding
// whitespace and trailing dots are trimmed, inner spaces become underscores,
// and the result is length-bounded. An empty result falls back to "untitled".
func Slugify(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
		default:
			b.WriteRune(r)
		}
	}

	out := strings.TrimSpace(b.String())
	out = strings.TrimRight(out, ". ")
	out = strings.ReplaceAll(out, " ", "_")

	if runes := []rune(out); len(runes) > maxSlugLen {
		out = string(runes[:maxSlugLen])
	}
	if out == "" {
		return "untitled"
	}
	return out
}

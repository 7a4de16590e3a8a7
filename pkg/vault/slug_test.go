package vault_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/memovault/pkg/vault"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces become underscores", "A short greeting.", "A_short_greeting"},
		{"invalid characters removed", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"surrounding whitespace trimmed", "  spaced out  ", "spaced_out"},
		{"trailing dots trimmed", "Ends with dots...", "Ends_with_dots"},
		{"empty falls back", "", "untitled"},
		{"only invalid characters falls back", `???***`, "untitled"},
		{"plain title unchanged", "Greeting", "Greeting"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, vault.Slugify(tc.input), tc.expected)
		})
	}
}

func TestSlugifyBoundsLength(t *testing.T) {
	long := strings.Repeat("a", 250)
	out := vault.Slugify(long)
	gt.Equal(t, len(out), 100)
}

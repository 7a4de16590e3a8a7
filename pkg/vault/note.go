package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/model"
)

// RenderMemoNote produces the canonical markdown for one memo note.
func RenderMemoNote(n *model.MemoNote) string {
	return fmt.Sprintf(`# %s

**Date:** %s
**Audio:** [[%s]]

## Summary
%s

## Transcription
%s
`, n.Title, n.CreatedAt.Format("2006-01-02 15:04:05"), n.AudioRel, n.Summary, n.Transcription)
}

// WriteMemoNote writes the rendered note into the notes folder under
// filename and returns the vault-relative path of the note.
func (v *Vault) WriteMemoNote(filename string, note *model.MemoNote) (string, error) {
	abs := filepath.Join(v.NotesDir(), filename)
	if err := v.writeFile(abs, []byte(RenderMemoNote(note))); err != nil {
		return "", err
	}
	return v.Rel(abs), nil
}

const dailySection = "## Voice Memos"

// UpsertDailyNote links the memo note at noteRel (vault-relative, including
// .md) from the daily note of date. The daily note is created when absent.
// When present, the link line is inserted at the end of the Voice Memos
// section unless an identical line already exists, so a crash-and-retry run
// never duplicates it. All other content is preserved byte for byte and the
// file is rewritten atomically.
func (v *Vault) UpsertDailyNote(date time.Time, noteRel string) error {
	day := date.Format("2006-01-02")
	abs := filepath.Join(v.DiaryDir(), day+".md")
	link := "- [[" + strings.TrimSuffix(noteRel, ".md") + "]]"

	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		content := fmt.Sprintf("# %s\n\n%s\n%s\n", day, dailySection, link)
		return v.writeFile(abs, []byte(content))
	}
	if err != nil {
		return goerr.Wrap(err, "failed to read daily note",
			goerr.V("path", abs), goerr.T(model.ErrTagWrite))
	}

	content := string(data)
	if hasLine(content, link) {
		return nil
	}

	return v.writeFile(abs, []byte(insertDailyLink(content, link)))
}

// insertDailyLink places link at the end of the Voice Memos section,
// creating the section at the end of the note when it is missing.
func insertDailyLink(content, link string) string {
	lines := strings.Split(content, "\n")

	sec := -1
	for i, l := range lines {
		if strings.TrimSpace(l) == dailySection {
			sec = i
			break
		}
	}

	if sec == -1 {
		out := strings.TrimRight(content, "\n")
		return out + "\n\n" + dailySection + "\n" + link + "\n"
	}

	// The section runs until the next heading or the end of the file.
	end := len(lines)
	for i := sec + 1; i < len(lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "#") {
			end = i
			break
		}
	}

	// Insert before any trailing blank lines of the section.
	ins := end
	for ins > sec+1 && strings.TrimSpace(lines[ins-1]) == "" {
		ins--
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:ins]...)
	out = append(out, link)
	out = append(out, lines[ins:]...)

	joined := strings.Join(out, "\n")
	if !strings.HasSuffix(joined, "\n") {
		joined += "\n"
	}
	return joined
}

// hasLine reports whether content contains line as a complete line.
func hasLine(content, line string) bool {
	for _, l := range strings.Split(content, "\n") {
		if strings.TrimSpace(l) == line {
			return true
		}
	}
	return false
}

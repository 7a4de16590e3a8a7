package model

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// audioExts is the set of recording extensions the pipeline accepts.
var audioExts = map[string]bool{
	".m4a":  true,
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".aac":  true,
	".flac": true,
}

// IsAudioFile reports whether name has a supported audio extension.
func IsAudioFile(name string) bool {
	return audioExts[strings.ToLower(filepath.Ext(name))]
}

// Memo is one discovered source recording. It lives for a single run; memo
// identity across runs is the content hash, never the file name.
type Memo struct {
	Path      string
	CreatedAt time.Time

	hash string
}

// Name returns the base name of the source file.
func (m *Memo) Name() string {
	return filepath.Base(m.Path)
}

// Ext returns the lower-cased extension of the source file, dot included.
func (m *Memo) Ext() string {
	return strings.ToLower(filepath.Ext(m.Path))
}

// Hash returns the hex MD5 digest of the memo's audio bytes. The digest is
// computed on first use and cached for the rest of the run.
func (m *Memo) Hash() (string, error) {
	if m.hash != "" {
		return m.hash, nil
	}

	data, err := os.ReadFile(m.Path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read memo audio", goerr.V("path", m.Path))
	}

	sum := md5.Sum(data)
	m.hash = hex.EncodeToString(sum[:])
	return m.hash, nil
}

// Summary is the provider's digest of one transcript. FilenameSummary is a
// short one-liner intended for the attachment file name; Title names the
// memo note.
type Summary struct {
	Title           string `json:"title"`
	Summary         string `json:"summary"`
	FilenameSummary string `json:"filename_summary"`
}

// MemoNote holds everything needed to render one memo note. Created once per
// successfully processed memo and never mutated afterwards.
type MemoNote struct {
	Title         string
	CreatedAt     time.Time
	AudioRel      string // vault-relative path of the copied audio
	Summary       string
	Transcription string
}

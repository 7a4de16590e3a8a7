package model

import "github.com/google/uuid"

type RunID string

// NewRunID generates a new unique RunID
func NewRunID() RunID {
	return RunID(uuid.New().String())
}

// Failure records one memo that could not be processed, with its cause.
type Failure struct {
	Memo *Memo
	Err  error
}

// Report is the end-of-run summary. Skipped counts empty transcriptions and
// unreadable sources; Duplicates counts memos already filed in the vault.
type Report struct {
	RunID      RunID
	Processed  int
	Skipped    int
	Duplicates int
	Failures   []*Failure
}

// Failed reports whether any memo failed during the run.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

package ingest

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/memovault/pkg/adapter"
	"github.com/m-mizutani/memovault/pkg/vault"
)

// UseCase drives memos from discovery to fully filed notes, one at a time.
type UseCase struct {
	provider adapter.Provider
	vault    *vault.Vault
	output   io.Writer
	progress bool
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithOutput sets the output writer
func WithOutput(w io.Writer) Option {
	return func(uc *UseCase) {
		uc.output = w
	}
}

// WithProgress enables a terminal spinner during blocking provider calls.
func WithProgress(enabled bool) Option {
	return func(uc *UseCase) {
		uc.progress = enabled
	}
}

// New creates a new ingest UseCase instance
func New(provider adapter.Provider, v *vault.Vault, opts ...Option) *UseCase {
	uc := &UseCase{
		provider: provider,
		vault:    v,
		output:   os.Stdout,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// startProgress shows a spinner while a provider call blocks. The returned
// stop function is a no-op when progress display is disabled.
func (u *UseCase) startProgress(msg string) func() {
	if !u.progress {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(u.output))
	s.Suffix = " " + msg
	s.Start()
	return s.Stop
}

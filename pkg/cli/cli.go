package cli

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/usecase/ingest"
	"github.com/m-mizutani/memovault/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

// Run executes the CLI. There are no subcommands: one invocation processes
// every new memo and exits.
func Run(ctx context.Context, argv []string) *Error {
	// .env is a convenience for local runs; a missing file is fine.
	_ = godotenv.Load()

	var cfg config
	cmd := &cli.Command{
		Name:  "memovault",
		Usage: "Transcribe voice memos and file them into a note vault",
		Flags: cfg.flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, &cfg)
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}

func run(ctx context.Context, cfg *config) error {
	logger := logging.New(cfg.logLevel, os.Stdout)
	logging.SetDefault(logger)
	ctx = logging.With(ctx, logger)

	if err := cfg.validate(); err != nil {
		return err
	}
	if !cfg.after.IsZero() {
		logger.Info("processing files created after", "date", cfg.after.Format("2006-01-02"))
	}

	v, err := cfg.newVault()
	if err != nil {
		return err
	}
	if err := v.EnsureFolders(); err != nil {
		return err
	}

	provider, err := cfg.newProvider(ctx)
	if err != nil {
		return err
	}

	uc := ingest.New(provider, v, ingest.WithProgress(true))
	report, err := uc.Run(ctx, ingest.Input{
		SourceDir: cfg.sourceDir,
		After:     cfg.after,
	})
	if err != nil {
		return err
	}

	if report.Failed() {
		return goerr.New("some memos could not be processed",
			goerr.V("failed", len(report.Failures)))
	}

	return nil
}

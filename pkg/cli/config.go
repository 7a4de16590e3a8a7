package cli

import (
	"context"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/adapter"
	"github.com/m-mizutani/memovault/pkg/model"
	"github.com/m-mizutani/memovault/pkg/vault"
	"github.com/urfave/cli/v3"
)

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// config holds configuration values, sourced from flags or environment.
type config struct {
	// Provider
	provider              string
	openaiAPIKey          string
	openaiTranscribeModel string
	openaiSummaryModel    string
	geminiAPIKey          string
	geminiModel           string

	// Paths
	sourceDir         string
	vaultPath         string
	attachmentsFolder string
	diaryFolder       string
	notesFolder       string

	afterDate string
	logLevel  string

	after time.Time // parsed from afterDate during validation
}

func (cfg *config) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "provider",
			Usage:       "Transcription/summarization provider (openai or gemini)",
			Value:       ProviderOpenAI,
			Sources:     cli.EnvVars("API_PROVIDER"),
			Destination: &cfg.provider,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("OPENAI_API_KEY"),
			Destination: &cfg.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-transcribe-model",
			Usage:       "OpenAI model for audio transcription",
			Value:       "whisper-1",
			Sources:     cli.EnvVars("OPENAI_TRANSCRIBE_MODEL"),
			Destination: &cfg.openaiTranscribeModel,
		},
		&cli.StringFlag{
			Name:        "openai-summary-model",
			Usage:       "OpenAI model for summarization",
			Value:       "gpt-4o-mini",
			Sources:     cli.EnvVars("OPENAI_SUMMARY_MODEL"),
			Destination: &cfg.openaiSummaryModel,
		},
		&cli.StringFlag{
			Name:        "gemini-api-key",
			Usage:       "Gemini API key",
			Sources:     cli.EnvVars("GEMINI_API_KEY"),
			Destination: &cfg.geminiAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-model",
			Usage:       "Gemini model for transcription and summarization",
			Value:       "gemini-2.5-flash",
			Sources:     cli.EnvVars("GEMINI_MODEL"),
			Destination: &cfg.geminiModel,
		},
		&cli.StringFlag{
			Name:        "source-dir",
			Aliases:     []string{"s"},
			Usage:       "Directory containing source voice memo recordings",
			Sources:     cli.EnvVars("SOURCE_DIR"),
			Destination: &cfg.sourceDir,
		},
		&cli.StringFlag{
			Name:        "vault-path",
			Aliases:     []string{"v"},
			Usage:       "Path to the note vault",
			Sources:     cli.EnvVars("VAULT_PATH"),
			Destination: &cfg.vaultPath,
		},
		&cli.StringFlag{
			Name:        "attachments-folder",
			Usage:       "Vault folder for copied audio files",
			Value:       "attachments",
			Sources:     cli.EnvVars("ATTACHMENTS_FOLDER"),
			Destination: &cfg.attachmentsFolder,
		},
		&cli.StringFlag{
			Name:        "diary-folder",
			Usage:       "Vault folder for daily notes",
			Value:       "diary",
			Sources:     cli.EnvVars("DIARY_FOLDER"),
			Destination: &cfg.diaryFolder,
		},
		&cli.StringFlag{
			Name:        "notes-folder",
			Usage:       "Vault folder for memo notes",
			Value:       "notes/memos",
			Sources:     cli.EnvVars("NOTES_FOLDER"),
			Destination: &cfg.notesFolder,
		},
		&cli.StringFlag{
			Name:        "after",
			Usage:       "Only process memos created after this date (YYYY-MM-DD)",
			Sources:     cli.EnvVars("PROCESS_FILES_AFTER_DATE"),
			Destination: &cfg.afterDate,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
	}
}

// validate checks the configuration before any processing starts. Every
// violation is fatal for the run.
func (cfg *config) validate() error {
	if err := (validation.Errors{
		"provider":   validation.Validate(cfg.provider, validation.Required, validation.In(ProviderOpenAI, ProviderGemini)),
		"source-dir": validation.Validate(cfg.sourceDir, validation.Required),
		"vault-path": validation.Validate(cfg.vaultPath, validation.Required),
	}).Filter(); err != nil {
		return goerr.Wrap(err, "invalid configuration", goerr.T(model.ErrTagConfig))
	}

	switch cfg.provider {
	case ProviderOpenAI:
		if cfg.openaiAPIKey == "" {
			return goerr.New("OPENAI_API_KEY is required for the openai provider",
				goerr.T(model.ErrTagConfig))
		}
	case ProviderGemini:
		if cfg.geminiAPIKey == "" {
			return goerr.New("GEMINI_API_KEY is required for the gemini provider",
				goerr.T(model.ErrTagConfig))
		}
	}

	if info, err := os.Stat(cfg.vaultPath); err != nil || !info.IsDir() {
		return goerr.New("vault path does not exist",
			goerr.V("path", cfg.vaultPath), goerr.T(model.ErrTagConfig))
	}
	if info, err := os.Stat(cfg.sourceDir); err != nil || !info.IsDir() {
		return goerr.New("source directory does not exist",
			goerr.V("path", cfg.sourceDir), goerr.T(model.ErrTagConfig))
	}

	if cfg.afterDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", cfg.afterDate, time.Local)
		if err != nil {
			return goerr.Wrap(err, "after date must be in YYYY-MM-DD format",
				goerr.V("value", cfg.afterDate), goerr.T(model.ErrTagConfig))
		}
		cfg.after = parsed
	}

	return nil
}

// newProvider creates the provider adapter selected by configuration.
func (cfg *config) newProvider(ctx context.Context) (adapter.Provider, error) {
	switch cfg.provider {
	case ProviderOpenAI:
		return adapter.NewOpenAI(cfg.openaiAPIKey,
			adapter.WithTranscribeModel(cfg.openaiTranscribeModel),
			adapter.WithSummaryModel(cfg.openaiSummaryModel),
		), nil
	case ProviderGemini:
		return adapter.NewGemini(ctx, cfg.geminiAPIKey,
			adapter.WithGeminiModel(cfg.geminiModel),
		)
	default:
		return nil, goerr.New("unknown provider",
			goerr.V("provider", cfg.provider), goerr.T(model.ErrTagConfig))
	}
}

// newVault creates the vault handle from the configured layout.
func (cfg *config) newVault() (*vault.Vault, error) {
	return vault.New(cfg.vaultPath,
		vault.WithAttachmentsFolder(cfg.attachmentsFolder),
		vault.WithDiaryFolder(cfg.diaryFolder),
		vault.WithNotesFolder(cfg.notesFolder),
	)
}

package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/memovault/pkg/model"
	"github.com/m-mizutani/memovault/pkg/utils/logging"
	"github.com/m-mizutani/memovault/pkg/vault"
)

// Input carries the per-run parameters for Run.
type Input struct {
	SourceDir string
	After     time.Time // zero means no date floor
}

// Run processes every new memo in the source directory. Config and source
// level errors abort the run; anything that goes wrong while processing a
// single memo is recorded in the report and the loop moves on.
func (u *UseCase) Run(ctx context.Context, input Input) (*model.Report, error) {
	logger := logging.From(ctx)
	report := &model.Report{RunID: model.NewRunID()}

	idx, err := u.vault.BuildIndex(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("built duplicate index",
		"run_id", report.RunID, "attachments", idx.Len())

	memos, err := listMemos(ctx, input.SourceDir, input.After)
	if err != nil {
		return nil, err
	}
	if len(memos) == 0 {
		logger.Info("no new memos to process", "run_id", report.RunID)
		return report, nil
	}

	for _, memo := range memos {
		hash, err := memo.Hash()
		if err != nil {
			logger.Warn("could not read source file, skipping", "path", memo.Path, "error", err)
			report.Skipped++
			continue
		}
		if idx.Contains(hash) {
			logger.Debug("skipping already filed memo", "name", memo.Name())
			report.Duplicates++
			continue
		}

		audioRel, err := u.processMemo(ctx, memo)
		if err != nil {
			logger.Error("failed to process memo", "name", memo.Name(), "error", err)
			report.Failures = append(report.Failures, &model.Failure{Memo: memo, Err: err})
			continue
		}
		if audioRel == "" {
			report.Skipped++
			continue
		}

		idx.Add(hash, audioRel)
		report.Processed++
	}

	logger.Info("run complete",
		"run_id", report.RunID,
		"processed", report.Processed,
		"skipped", report.Skipped,
		"duplicates", report.Duplicates,
		"failed", len(report.Failures))

	return report, nil
}

// processMemo runs one memo through transcription, summarization and the
// vault writes. It returns the vault-relative attachment path, or "" when
// the memo was skipped for an empty transcription.
//
// The audio copy is the final side effect: the duplicate index is keyed on
// attachment presence, so a crash before the copy leaves the memo looking
// unprocessed and the next run repeats the earlier writes, which are
// idempotent.
func (u *UseCase) processMemo(ctx context.Context, memo *model.Memo) (string, error) {
	logger := logging.From(ctx)
	logger.Info("processing memo", "name", memo.Name(), "created_at", memo.CreatedAt)

	stop := u.startProgress("transcribing " + memo.Name())
	text, err := u.provider.Transcribe(ctx, memo.Path)
	stop()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		logger.Info("empty transcription, skipping", "name", memo.Name())
		return "", nil
	}

	stop = u.startProgress("summarizing " + memo.Name())
	summary, err := u.provider.Summarize(ctx, text)
	stop()
	if err != nil {
		return "", err
	}

	ts := memo.CreatedAt.Format("20060102_150405")
	audioName := ts + "_" + vault.Slugify(summary.FilenameSummary) + memo.Ext()
	noteName := ts + "_" + vault.Slugify(summary.Title) + ".md"

	noteRel, err := u.vault.WriteMemoNote(noteName, &model.MemoNote{
		Title:         summary.Title,
		CreatedAt:     memo.CreatedAt,
		AudioRel:      u.vault.AttachmentRel(audioName),
		Summary:       summary.Summary,
		Transcription: text,
	})
	if err != nil {
		return "", err
	}

	if err := u.vault.UpsertDailyNote(memo.CreatedAt, noteRel); err != nil {
		return "", err
	}

	audioRel, err := u.vault.CopyAttachment(memo.Path, audioName)
	if err != nil {
		return "", err
	}

	logger.Info("memo filed", "note", noteRel, "audio", audioRel)
	return audioRel, nil
}

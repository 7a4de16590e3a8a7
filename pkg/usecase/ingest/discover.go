package ingest

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/model"
	"github.com/m-mizutani/memovault/pkg/utils/logging"
)

// listMemos enumerates candidate audio files in sourceDir. Zero-byte files
// are skipped up front and do not count as failures. When after is non-zero,
// memos created before it are excluded. Results are sorted by creation time
// ascending so daily notes list memos in recording order.
func listMemos(ctx context.Context, sourceDir string, after time.Time) ([]*model.Memo, error) {
	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, goerr.Wrap(err, "source directory unavailable",
			goerr.V("dir", sourceDir), goerr.T(model.ErrTagSource))
	}

	logger := logging.From(ctx)
	var memos []*model.Memo
	for _, e := range entries {
		if e.IsDir() || !model.IsAudioFile(e.Name()) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			logger.Warn("could not stat source file, skipping", "name", e.Name(), "error", err)
			continue
		}
		if info.Size() == 0 {
			logger.Info("skipping empty source file", "name", e.Name())
			continue
		}

		createdAt := info.ModTime()
		if !after.IsZero() && createdAt.Before(after) {
			continue
		}

		memos = append(memos, &model.Memo{
			Path:      filepath.Join(sourceDir, e.Name()),
			CreatedAt: createdAt,
		})
	}

	sort.Slice(memos, func(i, j int) bool {
		return memos[i].CreatedAt.Before(memos[j].CreatedAt)
	})

	return memos, nil
}

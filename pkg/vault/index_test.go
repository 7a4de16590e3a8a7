package vault_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/memovault/pkg/model"
	"github.com/m-mizutani/memovault/pkg/vault"
)

func hashOf(t *testing.T, path string) string {
	t.Helper()
	m := &model.Memo{Path: path}
	h, err := m.Hash()
	gt.NoError(t, err)
	return h
}

func TestBuildIndex(t *testing.T) {
	v := newTestVault(t)
	ctx := context.Background()

	a := filepath.Join(v.AttachmentsDir(), "20240115_143000_a.m4a")
	b := filepath.Join(v.AttachmentsDir(), "20240116_090000_b.m4a")
	gt.NoError(t, os.WriteFile(a, []byte("audio-a"), 0o644))
	gt.NoError(t, os.WriteFile(b, []byte("audio-b"), 0o644))
	// Non-audio files are not part of the index.
	gt.NoError(t, os.WriteFile(filepath.Join(v.AttachmentsDir(), "readme.txt"), []byte("x"), 0o644))

	idx, err := v.BuildIndex(ctx)
	gt.NoError(t, err)
	gt.Equal(t, idx.Len(), 2)

	gt.Equal(t, idx.Contains(hashOf(t, a)), true)
	gt.Equal(t, idx.Contains(hashOf(t, b)), true)
	gt.Equal(t, idx.Contains("0123456789abcdef0123456789abcdef"), false)
}

func TestBuildIndexMissingFolder(t *testing.T) {
	v, err := vault.New(t.TempDir())
	gt.NoError(t, err)

	idx, err := v.BuildIndex(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, idx.Len(), 0)
}

func TestBuildIndexSkipsUnreadableFiles(t *testing.T) {
	v := newTestVault(t)

	good := filepath.Join(v.AttachmentsDir(), "good.m4a")
	gt.NoError(t, os.WriteFile(good, []byte("audio"), 0o644))
	// A dangling symlink stands in for a corrupt, unreadable attachment.
	gt.NoError(t, os.Symlink(filepath.Join(v.AttachmentsDir(), "gone"), filepath.Join(v.AttachmentsDir(), "bad.m4a")))

	idx, err := v.BuildIndex(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, idx.Len(), 1)
	gt.Equal(t, idx.Contains(hashOf(t, good)), true)
}

func TestHashIndexAdd(t *testing.T) {
	v := newTestVault(t)

	idx, err := v.BuildIndex(context.Background())
	gt.NoError(t, err)

	idx.Add("deadbeef", "attachments/x.m4a")
	gt.Equal(t, idx.Contains("deadbeef"), true)
	gt.Equal(t, idx.Len(), 1)
}

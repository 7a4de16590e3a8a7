package vault_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/memovault/pkg/model"
	"github.com/m-mizutani/memovault/pkg/vault"
)

func TestNewRejectsMissingRoot(t *testing.T) {
	_, err := vault.New(filepath.Join(t.TempDir(), "nope"))
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, model.ErrTagConfig), true)
}

func TestEnsureFolders(t *testing.T) {
	root := t.TempDir()
	v, err := vault.New(root,
		vault.WithAttachmentsFolder("media"),
		vault.WithDiaryFolder("journal"),
		vault.WithNotesFolder("memos"),
	)
	gt.NoError(t, err)
	gt.NoError(t, v.EnsureFolders())

	for _, dir := range []string{"media", "journal", "memos"} {
		info, err := os.Stat(filepath.Join(root, dir))
		gt.NoError(t, err)
		gt.Equal(t, info.IsDir(), true)
	}
}

func TestCopyAttachment(t *testing.T) {
	v := newTestVault(t)

	src := filepath.Join(t.TempDir(), "memo.m4a")
	gt.NoError(t, os.WriteFile(src, []byte("fake-audio"), 0o644))

	rel, err := v.CopyAttachment(src, "20240115_143000_greeting.m4a")
	gt.NoError(t, err)
	gt.Equal(t, rel, "attachments/20240115_143000_greeting.m4a")

	data, err := os.ReadFile(filepath.Join(v.AttachmentsDir(), "20240115_143000_greeting.m4a"))
	gt.NoError(t, err)
	gt.Equal(t, string(data), "fake-audio")
}

func TestAttachmentRel(t *testing.T) {
	v := newTestVault(t)
	gt.Equal(t, v.AttachmentRel("a.m4a"), "attachments/a.m4a")
}

func TestCopyAttachmentMissingSource(t *testing.T) {
	v := newTestVault(t)

	_, err := v.CopyAttachment(filepath.Join(t.TempDir(), "missing.m4a"), "x.m4a")
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, model.ErrTagWrite), true)
}

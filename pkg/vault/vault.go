package vault

import (
	"os"
	"path"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/model"
)

// Vault is the destination note tree. Paths handed out to callers are
// relative to the vault root with forward slashes, the form note links use.
type Vault struct {
	root        string // absolute path to the vault directory
	attachments string
	diary       string
	notes       string
}

type Option func(*Vault)

func WithAttachmentsFolder(name string) Option {
	return func(v *Vault) {
		if name != "" {
			v.attachments = name
		}
	}
}

func WithDiaryFolder(name string) Option {
	return func(v *Vault) {
		if name != "" {
			v.diary = name
		}
	}
}

func WithNotesFolder(name string) Option {
	return func(v *Vault) {
		if name != "" {
			v.notes = name
		}
	}
}

// New creates a Vault rooted at the given directory, which must exist.
func New(root string, opts ...Option) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve vault path", goerr.V("path", root))
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, goerr.Wrap(err, "vault path does not exist",
			goerr.V("path", root), goerr.T(model.ErrTagConfig))
	}
	if !info.IsDir() {
		return nil, goerr.New("vault path is not a directory",
			goerr.V("path", root), goerr.T(model.ErrTagConfig))
	}

	v := &Vault{
		root:        abs,
		attachments: "attachments",
		diary:       "diary",
		notes:       "notes/memos",
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// EnsureFolders creates the attachments, diary and notes folders.
func (v *Vault) EnsureFolders() error {
	for _, dir := range []string{v.AttachmentsDir(), v.DiaryDir(), v.NotesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return goerr.Wrap(err, "failed to create vault folder",
				goerr.V("dir", dir), goerr.T(model.ErrTagWrite))
		}
	}
	return nil
}

func (v *Vault) Root() string {
	return v.root
}

func (v *Vault) AttachmentsDir() string {
	return filepath.Join(v.root, filepath.FromSlash(v.attachments))
}

func (v *Vault) DiaryDir() string {
	return filepath.Join(v.root, filepath.FromSlash(v.diary))
}

func (v *Vault) NotesDir() string {
	return filepath.Join(v.root, filepath.FromSlash(v.notes))
}

// AttachmentRel returns the vault-relative path an attachment with the given
// file name will have. Valid before the attachment is written, so note links
// can be rendered ahead of the audio copy.
func (v *Vault) AttachmentRel(filename string) string {
	return path.Join(v.attachments, filename)
}

// Rel converts an absolute path inside the vault to its vault-relative,
// slash-separated form.
func (v *Vault) Rel(abs string) string {
	rel, err := filepath.Rel(v.root, abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}

// writeFile writes data atomically: temp file in the target directory, fsync,
// then rename over the final path. A crash mid-write never leaves a partial
// file behind.
func (v *Vault) writeFile(abs string, data []byte) error {
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return goerr.Wrap(err, "failed to create directory",
			goerr.V("dir", dir), goerr.T(model.ErrTagWrite))
	}

	tmp, err := os.CreateTemp(dir, ".memovault-tmp-*")
	if err != nil {
		return goerr.Wrap(err, "failed to create temp file",
			goerr.V("dir", dir), goerr.T(model.ErrTagWrite))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return goerr.Wrap(err, "failed to write temp file",
			goerr.V("path", abs), goerr.T(model.ErrTagWrite))
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return goerr.Wrap(err, "failed to sync temp file",
			goerr.V("path", abs), goerr.T(model.ErrTagWrite))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return goerr.Wrap(err, "failed to close temp file",
			goerr.V("path", abs), goerr.T(model.ErrTagWrite))
	}
	if err := os.Rename(tmpName, abs); err != nil {
		os.Remove(tmpName)
		return goerr.Wrap(err, "failed to rename temp file",
			goerr.V("path", abs), goerr.T(model.ErrTagWrite))
	}

	return nil
}

// CopyAttachment copies the audio bytes at srcPath into the attachments
// folder under filename and returns the vault-relative path of the copy.
func (v *Vault) CopyAttachment(srcPath, filename string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read source audio",
			goerr.V("path", srcPath), goerr.T(model.ErrTagWrite))
	}

	dst := filepath.Join(v.AttachmentsDir(), filename)
	if err := v.writeFile(dst, data); err != nil {
		return "", err
	}

	return v.Rel(dst), nil
}

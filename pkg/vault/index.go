package vault

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/memovault/pkg/model"
	"github.com/m-mizutani/memovault/pkg/utils/logging"
)

// HashIndex maps audio content hashes to the vault-relative path of the
// attachment holding them. File names are unreliable for identity: this
// system renames attachments descriptively and the vault owner may rename
// them again, so only content counts.
type HashIndex struct {
	entries map[string]string
}

// Contains reports whether an attachment with the given content hash exists.
func (x *HashIndex) Contains(hash string) bool {
	_, ok := x.entries[hash]
	return ok
}

// Add records a newly filed attachment so the same content is not processed
// twice within one run.
func (x *HashIndex) Add(hash, rel string) {
	x.entries[hash] = rel
}

// Len returns the number of indexed attachments.
func (x *HashIndex) Len() int {
	return len(x.entries)
}

// BuildIndex scans the attachments folder once and hashes every audio file
// found there. Unreadable files are logged and skipped; they never fail the
// run. A missing attachments folder yields an empty index.
func (v *Vault) BuildIndex(ctx context.Context) (*HashIndex, error) {
	idx := &HashIndex{entries: map[string]string{}}

	dir := v.AttachmentsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, goerr.Wrap(err, "failed to read attachments folder", goerr.V("dir", dir))
	}

	logger := logging.From(ctx)
	for _, e := range entries {
		if e.IsDir() || !model.IsAudioFile(e.Name()) {
			continue
		}

		p := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(p)
		if err != nil {
			logger.Warn("could not hash attachment, skipping", "path", p, "error", err)
			continue
		}

		sum := md5.Sum(data)
		idx.entries[hex.EncodeToString(sum[:])] = v.Rel(p)
	}

	return idx, nil
}

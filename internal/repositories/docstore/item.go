package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/pbk-app/project_bookkeeping_app/internal/apperrors"
)

// item is an acquired document. Its lifetime is bracketed by Store.Acquire
// and Close; all reads and writes of the underlying file happen inside that
// bracket, so concurrent callers never see a half-written document.
type item struct {
	fs   afero.Fs
	path string
	lock chan struct{}
	once sync.Once
}

// Load decodes the document into v. A document that has never been saved is
// not an error: Load reports false and leaves v at its zero value.
func (i *item) Load(v any) (bool, error) {
	data, err := afero.ReadFile(i.fs, i.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("reading document %s: %w", i.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding document %s: %w: %v", i.path, apperrors.ErrCorrupt, err)
	}
	return true, nil
}

// Save replaces the document content atomically: the new encoding is written
// to a sibling temp file first and renamed over the document, so a crash
// mid-write never leaves a truncated document behind.
func (i *item) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document %s: %w", i.path, err)
	}
	if err := i.fs.MkdirAll(filepath.Dir(i.path), 0o755); err != nil {
		return fmt.Errorf("creating document directory for %s: %w", i.path, err)
	}
	tmp := i.path + ".tmp"
	if err := afero.WriteFile(i.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing document %s: %w", i.path, err)
	}
	if err := i.fs.Rename(tmp, i.path); err != nil {
		return fmt.Errorf("replacing document %s: %w", i.path, err)
	}
	return nil
}

// Close releases the document lock. Calling Close more than once is safe;
// only the first call releases.
func (i *item) Close() error {
	i.once.Do(func() {
		<-i.lock
	})
	return nil
}

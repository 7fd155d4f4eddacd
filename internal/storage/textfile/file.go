package textfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/roster/internal/storage"
)

// File is the text-file implementation of storage.Storage.
type File struct {
	path string
}

// New returns a File backend for path. Nothing is opened until the
// first Load or Save.
func New(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads and decodes the backing file.
// A missing file is not an error: the roster simply starts empty.
func (f *File) Load() (storage.Snapshot, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Empty(), nil
	}
	if err != nil {
		return storage.Empty(), fmt.Errorf("textfile.Load: open: %w", err)
	}
	defer file.Close()

	return Decode(file)
}

// Save fully overwrites the backing file with snap.
//
// The data is written to a temporary file in the same directory and
// renamed over the target, so a failed write never leaves a half
// written roster behind.
func (f *File) Save(snap storage.Snapshot) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("textfile.Save: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("textfile.Save: create temp: %w", err)
	}
	// Remove fails harmlessly once the rename has succeeded.
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, snap); err != nil {
		tmp.Close()
		return fmt.Errorf("textfile.Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("textfile.Save: close temp: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("textfile.Save: chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("textfile.Save: rename: %w", err)
	}

	return nil
}

// Close is a no-op; the file is opened and closed on every call.
func (f *File) Close() error {
	return nil
}

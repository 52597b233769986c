package bundle

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Store reads and writes stylesheet text
type Store interface {
	ReadText(path string) (string, error)
	WriteText(path, text string) error
	WriteAll(files []TextFile) error
	EnsureDir(path string) error
	List(dir, pattern string) ([]string, error)
}

// TextFile is one destination and its full content
type TextFile struct {
	Path string
	Text string
}

// FileStore is a Store backed by the local filesystem
type FileStore struct{}

// NewFileStore creates a filesystem-backed store
func NewFileStore() *FileStore {
	return &FileStore{}
}

// ReadText reads a whole file as text
func (s *FileStore) ReadText(path string) (string, error) {
	// #nosec G304 - path comes from configuration or an @import in a trusted source tree
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fileError("read", path, err)
	}
	return string(data), nil
}

// WriteText replaces path with text
func (s *FileStore) WriteText(path, text string) error {
	return s.WriteAll([]TextFile{{Path: path, Text: text}})
}

// WriteAll replaces every file in files. All contents go to temporary files
// next to their destinations first; nothing is renamed into place unless every
// temporary file was written.
func (s *FileStore) WriteAll(files []TextFile) error {
	staged := make([]string, 0, len(files))
	discard := func(from int) {
		for _, name := range staged[from:] {
			_ = os.Remove(name)
		}
	}

	for _, f := range files {
		tmpName, err := stage(f)
		if err != nil {
			discard(0)
			return err
		}
		staged = append(staged, tmpName)
	}

	for i, f := range files {
		if err := os.Rename(staged[i], f.Path); err != nil {
			discard(i)
			return ioError("write", f.Path, err)
		}
	}
	return nil
}

// stage writes f to a temporary file in the destination directory
func stage(f TextFile) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return "", ioError("write", f.Path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(f.Text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", ioError("write", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", ioError("write", f.Path, err)
	}
	// CreateTemp uses 0600
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return "", ioError("write", f.Path, err)
	}
	return tmpName, nil
}

// EnsureDir creates path and any missing parents
func (s *FileStore) EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return ioError("mkdir", path, err)
	}
	return nil
}

// List returns the files under dir matching a doublestar pattern, sorted.
// Returned paths are joined with dir.
func (s *FileStore) List(dir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, ioError("list", dir, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(files)
	return files, nil
}

// fileError classifies an OS error as ErrFileNotFound or ErrIO
func fileError(op, path string, err error) error {
	kind := ErrIO
	if errors.Is(err, fs.ErrNotExist) {
		kind = ErrFileNotFound
	}
	return &FileError{Op: op, Path: path, Kind: kind, Err: err}
}

// ioError reports a failed write-side operation. A missing parent directory
// is still an I/O failure, not a missing stylesheet.
func ioError(op, path string, err error) error {
	return &FileError{Op: op, Path: path, Kind: ErrIO, Err: err}
}

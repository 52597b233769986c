package bundle

import (
	"errors"
	"fmt"
)

// Sentinel errors for stylesheet I/O
var (
	ErrFileNotFound = errors.New("file not found")
	ErrIO           = errors.New("i/o error")
)

// FileError describes a failed filesystem operation on a stylesheet or artifact
type FileError struct {
	Op   string // "read", "write", "mkdir", "list"
	Path string
	Kind error // ErrFileNotFound or ErrIO
	Err  error // Underlying error
}

func (e *FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func (e *FileError) Is(target error) bool {
	return target == e.Kind
}

// ImportError wraps a failure to resolve a local import with the importing file
type ImportError struct {
	From   string // Canonical path of the importing file
	Target string // Target as written in the directive
	Err    error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: import %q: %v", e.From, e.Target, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

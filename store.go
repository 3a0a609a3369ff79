package csv2yolo

import (
	"io"
	"os"
	"path/filepath"
)

// FileStore performs the file system operations of a conversion.
type FileStore interface {
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
	// MkdirAll creates the directory at path along with any missing parents.
	MkdirAll(path string) error
	// CopyFile copies the contents of the file at src to a new or truncated file at dst.
	CopyFile(dst, src string) error
	// WriteFile writes data to a new or truncated file at path.
	WriteFile(path string, data []byte) error
}

// OSStore is a FileStore backed by the local file system.
type OSStore struct{}

// Exists implements FileStore.
func (OSStore) Exists(path string) (bool, error) {
	return isRegularFile(path)
}

// MkdirAll implements FileStore.
func (OSStore) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

// CopyFile implements FileStore. A partially written dst is removed on failure.
func (OSStore) CopyFile(dst, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer closeWithErrCheck(in, &err)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	closeWithErrCheck(out, &err)
	if err != nil {
		_ = os.Remove(dst)
	}
	return err
}

// WriteFile implements FileStore.
func (OSStore) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

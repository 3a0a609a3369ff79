package csv2yolo

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// fileStem returns the base name of path with its last file extension stripped off. A name
// without an extension, or a dot file such as ".jpg", is returned unchanged.
func fileStem(path string) string {
	file := filepath.Base(path)
	ext := filepath.Ext(file)
	if ext == "" || ext == file {
		return file
	}
	return file[0 : len(file)-len(ext)]
}

// resolvePath joins path to root unless path is absolute or root is empty.
func resolvePath(root, path string) string {
	if root == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// isLocalName reports whether name is a non-empty relative path that stays within the directory
// it is joined to.
func isLocalName(name string) bool {
	if name == "" || filepath.IsAbs(name) || filepath.VolumeName(name) != "" {
		return false
	}
	clean := filepath.Clean(name)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}

// splitList splits a comma-separated list, trimming white space around each value. An empty or
// blank string yields an empty list.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	values := strings.Split(s, ",")
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// isRegularFile reports whether path names a regular file or a symlink to one.
func isRegularFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// closeWithErrCheck calls c.Close(). If it returns an error, and (*e == nil), e is set to that
// error.
func closeWithErrCheck(c io.Closer, e *error) {
	err := c.Close()
	if err != nil && *e == nil {
		*e = err
	}
}

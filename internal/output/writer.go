// Package output persists extracted documents as text files.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Extension is appended to every artifact name.
	Extension = ".txt"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Writer writes artifacts into one directory. Each write is atomic: content goes to a
// temporary file in the same directory which is then renamed over the target.
// Two writes with the same name race and the last rename wins.
type Writer struct {
	dir string
}

// NewWriter creates a writer for dir. The directory must exist; see EnsureDir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the artifact path for name.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name+Extension)
}

// Write stores content as UTF-8 text at Path(name), overwriting any existing file.
func (w *Writer) Write(name, content string) (string, error) {
	target := w.Path(name)

	tmp, err := os.CreateTemp(w.dir, "."+name+"-*.tmp")
	if err != nil {
		// Long names can exceed the file system limit once the temp suffix is added.
		tmp, err = os.CreateTemp(w.dir, ".artifact-*.tmp")
		if err != nil {
			return "", fmt.Errorf("create temp file in %s: %w", w.dir, err)
		}
	}
	tmpName := tmp.Name()

	if _, err = tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close %s: %w", target, err)
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("chmod %s: %w", target, err)
	}
	if err = os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("rename to %s: %w", target, err)
	}

	return target, nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create output directory %s: %w", dir, err)
	}
	return nil
}

package problemfs

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/aalvaropc/blanks/internal/domain"
)

func (f *FS) Read(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if os.IsNotExist(err) {
			kind = domain.KindNotFound
		}
		return "", &domain.OpError{Op: "problemfs.read", Kind: kind, Path: path, Err: err}
	}
	if !utf8.Valid(b) {
		return "", &domain.OpError{
			Op:   "problemfs.read",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("file is not valid UTF-8: %w", domain.ErrInvalidConfig),
		}
	}
	return string(b), nil
}

// Write replaces the file contents atomically (tmp then rename) and keeps
// the original permission bits.
func (f *FS) Write(path string, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &domain.OpError{Op: "problemfs.write", Kind: domain.KindExecution, Path: path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &domain.OpError{Op: "problemfs.write", Kind: domain.KindExecution, Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{Op: "problemfs.write", Kind: domain.KindExecution, Path: tmpName, Err: err}
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{Op: "problemfs.chmod", Kind: domain.KindExecution, Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return &domain.OpError{Op: "problemfs.rename", Kind: domain.KindExecution, Path: path, Err: err}
	}
	return nil
}

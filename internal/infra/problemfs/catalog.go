// Package problemfs stores problems as plain files under
// <root>/<problems_dir>/<language>/.
package problemfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
)

const defaultProblemsDir = "problems"

type FS struct {
	rootDir     string
	problemsDir string
}

func New(root string, cfg domain.Config) *FS {
	dir := cfg.Paths.ProblemsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultProblemsDir
	}
	return &FS{rootDir: root, problemsDir: dir}
}

var (
	_ ports.ProblemCatalog = (*FS)(nil)
	_ ports.ProblemStore   = (*FS)(nil)
)

// Dir returns the directory holding problems for language.
func (f *FS) Dir(language string) string {
	return filepath.Join(f.rootDir, f.problemsDir, language)
}

// ListProblems returns the regular, non-hidden files for language sorted by name.
// Editor swap and temp files are skipped.
func (f *FS) ListProblems(language string) ([]domain.ProblemRef, error) {
	if err := domain.ValidateLanguage(language); err != nil {
		return nil, &domain.OpError{Op: "problemfs.list", Kind: domain.KindInvalidConfig, Err: err}
	}
	dir := f.Dir(language)

	entries, err := os.ReadDir(dir)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.OpError{Op: "problemfs.list", Kind: kind, Path: dir, Err: err}
	}

	out := make([]domain.ProblemRef, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || skipName(name) {
			continue
		}
		out = append(out, domain.ProblemRef{Name: name, Path: filepath.Join(dir, name)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func skipName(name string) bool {
	return strings.HasPrefix(name, ".") ||
		strings.HasSuffix(name, "~") ||
		strings.HasSuffix(name, ".tmp") ||
		strings.HasSuffix(name, ".swp")
}

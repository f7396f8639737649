package fsworkspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/blanks/internal/app/template"
	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
)

type Initializer struct {
	cfg domain.Config
}

func NewInitializer() *Initializer {
	return &Initializer{cfg: domain.DefaultConfig()}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// Init lays out a workspace under spec.Root. Existing files are left alone
// unless force is set.
func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)
	lang := strings.TrimSpace(spec.Language)
	if lang == "" {
		lang = i.cfg.Defaults.Language
	}
	if err := domain.ValidateLanguage(lang); err != nil {
		return &domain.OpError{Op: "fsworkspace.init", Kind: domain.KindInvalidConfig, Err: err}
	}

	problemsDir := filepath.Join(root, i.cfg.Paths.ProblemsDir, lang)
	dirs := []string{
		problemsDir,
		filepath.Join(root, i.cfg.Paths.SessionsDir),
		filepath.Join(root, ".blanks", "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root, i.cfg.Paths.SessionsDir); err != nil {
		return err
	}

	vars := domain.Vars{
		"language":     lang,
		"ratio":        fmt.Sprintf("%g", i.cfg.Defaults.Ratio),
		"mode":         string(i.cfg.Defaults.Mode),
		"problems_dir": i.cfg.Paths.ProblemsDir,
		"sessions_dir": i.cfg.Paths.SessionsDir,
	}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}
		out, err := template.RenderString(string(b), vars)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}

		dst := filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(p, "templates/")))
		return writeFile(dst, []byte(out), force)
	})
	if err != nil {
		return err
	}

	return copySamples(lang, problemsDir, force)
}

// copySamples seeds the language directory. Languages without bundled
// samples just get the empty directory.
func copySamples(lang, dstDir string, force bool) error {
	src := path.Join("samples", lang)
	entries, err := fs.ReadDir(samplesFS, src)
	if err != nil {
		return nil
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		b, err := fs.ReadFile(samplesFS, path.Join(src, e.Name()))
		if err != nil {
			return err
		}
		dst := filepath.Join(dstDir, strings.TrimSuffix(e.Name(), ".txt"))
		if err := writeFile(dst, b, force); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(dst string, b []byte, force bool) error {
	if !force {
		if _, statErr := os.Stat(dst); statErr == nil {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return &domain.OpError{Op: "fsworkspace.write", Kind: domain.KindExecution, Path: dst, Err: err}
	}
	return nil
}

func ensureGitignore(root, sessionsDir string) error {
	const header = "# Blanks"
	entries := []string{
		strings.TrimSuffix(sessionsDir, "/") + "/",
		".blanks/",
	}

	gi := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(gi)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(gi, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 32)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(gi, []byte(out.String()), 0o644)
}

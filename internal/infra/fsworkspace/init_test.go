package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/infra/workspacefinder"
)

func TestInitializer_Init_CreatesWorkspaceFiles(t *testing.T) {
	tmp := t.TempDir()

	i := NewInitializer()
	if err := i.Init(domain.WorkspaceSpec{Root: tmp, Language: "python"}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "blanks.yaml"))
	assertFileExists(t, filepath.Join(tmp, "problems", "python", "0001_two_sum.py"))
	assertFileExists(t, filepath.Join(tmp, "sessions"))
	assertFileExists(t, filepath.Join(tmp, ".blanks", "logs"))

	cfg, err := workspacefinder.LoadConfig(tmp)
	if err != nil {
		t.Fatalf("generated blanks.yaml does not load: %v", err)
	}
	if cfg.Defaults.Language != "python" || cfg.Defaults.Ratio != 0.2 {
		t.Fatalf("unexpected defaults from template: %+v", cfg.Defaults)
	}
}

func TestInitializer_Init_GoSamplesDropSuffix(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp, Language: "go"}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "problems", "go", "0001_two_sum.go"))
	if _, err := os.Stat(filepath.Join(tmp, "problems", "go", "0001_two_sum.go.txt")); err == nil {
		t.Fatalf("expected .txt suffix to be stripped")
	}
}

func TestInitializer_Init_UnknownLanguageGetsEmptyDir(t *testing.T) {
	tmp := t.TempDir()

	if err := NewInitializer().Init(domain.WorkspaceSpec{Root: tmp, Language: "haskell"}, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(tmp, "problems", "haskell"))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty problems dir, got %d entries", len(entries))
	}
}

func TestInitializer_Init_RejectsPathLikeLanguage(t *testing.T) {
	err := NewInitializer().Init(domain.WorkspaceSpec{Root: t.TempDir(), Language: "../x"}, false)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected KindInvalidConfig, got %v", err)
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "blanks.yaml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing blanks.yaml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read blanks.yaml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected blanks.yaml preserved, got %q", string(b))
	}

	if err := i.Init(domain.WorkspaceSpec{Root: tmp}, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read blanks.yaml after force: %v", err)
	}
	if !strings.Contains(string(b), "blanks:") {
		t.Fatalf("expected blanks.yaml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}

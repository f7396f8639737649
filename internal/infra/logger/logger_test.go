package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesJSONLogUnderWorkspace(t *testing.T) {
	tmp := t.TempDir()

	cleanup, err := Setup(Config{Root: tmp, Debug: true})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("expected logger ready: %v", err)
	}

	want := filepath.Join(tmp, ".blanks", "logs", "blanks.log")
	if Path() != want {
		t.Fatalf("expected path %s, got %s", want, Path())
	}

	L().Info("round.start", "problem", "0001.py")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if IsReady() == nil {
		t.Fatalf("expected logger reset after cleanup")
	}

	b, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), `"msg":"round.start"`) {
		t.Fatalf("expected JSON entry, got:\n%s", b)
	}
}

func TestConsole_FiltersBelowWarn(t *testing.T) {
	var buf bytes.Buffer
	l := Console(&buf, false)

	l.Info("hidden")
	l.Warn("restore failed", "path", "x.py")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "restore failed") {
		t.Fatalf("expected warning in output, got %q", out)
	}
}

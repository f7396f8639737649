package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/infra/config"
	"github.com/aalvaropc/blanks/internal/infra/logger"
	"github.com/aalvaropc/blanks/internal/infra/problemfs"
	"github.com/aalvaropc/blanks/internal/infra/sessionstore"
	"github.com/aalvaropc/blanks/internal/infra/workspacefinder"
	"github.com/aalvaropc/blanks/internal/ports"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config

	problems *problemfs.FS
	settings *config.SettingsStore
	sessions *sessionstore.JSONStore
}

func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	return &workspaceCtx{
		root:     root,
		cfg:      cfg,
		problems: problemfs.New(root, cfg),
		settings: config.NewSettingsStore(root),
		sessions: sessionstore.NewJSONStore(root, cfg, sessionstore.WithIndex(true)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	var locator ports.WorkspaceLocator = workspacefinder.NewFinder()
	root, err := locator.FindRoot(wd)
	if err != nil {
		return "", fmt.Errorf("workspace not found from %q (tip: run `blanks init`): %w", wd, err)
	}
	return root, nil
}

// setupLogging opens the workspace log file. Failures only cost the log.
func setupLogging(root string, debug bool, console *log.Logger) func() {
	cleanup, err := logger.Setup(logger.Config{Root: root, Debug: debug})
	if err != nil {
		console.Warn("file logging disabled", "err", err)
		return func() {}
	}
	console.Debug("file logging enabled", "path", logger.Path(), "since", logger.InitTime().Format(time.RFC3339))
	return func() { _ = cleanup() }
}

// gameFlags are shared by the root command (TUI) and `play`.
type gameFlags struct {
	workspace string
	language  string
	ratio     float64
	problem   int
	mode      string
}

func (f *gameFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.workspace, "workspace", "w", "", "Workspace root (optional; autodetected if omitted)")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Problem language directory (e.g. python)")
	cmd.Flags().Float64VarP(&f.ratio, "ratio", "r", 0, "Fraction of eligible characters to blank, 0..1")
	cmd.Flags().IntVarP(&f.problem, "problem", "p", 0, "Start with this problem number (matches a 0042-style prefix)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "Problem selection: random|sequential")
}

// resolveSettings layers defaults < blanks.yaml < settings.yaml < env < flags.
// A broken settings file is reported and skipped.
func (ws *workspaceCtx) resolveSettings(cmd *cobra.Command, f gameFlags, console *log.Logger) (domain.Settings, error) {
	s, err := ws.settings.LoadSettings(ws.cfg.Defaults)
	if err != nil {
		console.Warn("ignoring saved settings", "path", ws.settings.Path(), "err", err)
	}

	fl := cmd.Flags()
	if fl.Changed("language") {
		s.Language = strings.TrimSpace(f.language)
	}
	if fl.Changed("ratio") {
		s.Ratio = domain.ClampRatio(f.ratio)
	}
	if fl.Changed("problem") {
		if f.problem < 0 {
			return s, fmt.Errorf("--problem must not be negative")
		}
		n := f.problem
		s.Problem = &n
	}
	if fl.Changed("mode") {
		m, ok := domain.ParseMode(f.mode)
		if !ok {
			return s, fmt.Errorf("unsupported mode %q (expected random|sequential)", f.mode)
		}
		s.Mode = m
	}

	s = s.Normalize()
	if err := domain.ValidateLanguage(s.Language); err != nil {
		return s, &domain.OpError{Op: "settings.resolve", Kind: domain.KindInvalidConfig, Err: err}
	}
	return s, nil
}

func consoleFor(w io.Writer, debug bool) *log.Logger {
	return logger.Console(w, debug)
}

package tui

import (
	"io"
	"log/slog"

	"github.com/aalvaropc/blanks/internal/ports"
	"github.com/aalvaropc/blanks/internal/usecase"
)

type Deps struct {
	Game *usecase.Game

	// Problems is used to re-read the problem file for the live counter.
	Problems ports.ProblemStore
	// Watcher is optional; without it the counter only updates on demand.
	Watcher ports.ChangeWatcher

	WorkspaceRoot string

	Logger *slog.Logger
	Debug  bool

	// Input and Output default to the terminal.
	Input  io.Reader
	Output io.Writer
}

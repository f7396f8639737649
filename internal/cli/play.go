package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aalvaropc/blanks/internal/infra/filewatch"
	"github.com/aalvaropc/blanks/internal/infra/logger"
	"github.com/aalvaropc/blanks/internal/ui/tui"
	"github.com/aalvaropc/blanks/internal/usecase"
)

// shutdownSignals end the session early. The open problem file is restored
// before the process exits, including when the terminal is closed.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

func playCmd(debug *bool) *cobra.Command {
	var flags gameFlags
	var plain bool
	var format string
	var maxRounds int

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play rounds until Ctrl+C (TUI by default, --plain for a line prompt)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return playGame(cmd, flags, *debug, plain, format, maxRounds)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "Line-based prompt instead of the TUI")
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	cmd.Flags().IntVar(&maxRounds, "rounds", 0, "Stop after this many rounds (0 = until Ctrl+C)")
	return cmd
}

// playGame loads the workspace, resolves settings and runs the game in the
// TUI or, with plain set or piped stdin, on the line prompt.
func playGame(cmd *cobra.Command, flags gameFlags, debug, plain bool, format string, maxRounds int) error {
	if err := checkFormat(format); err != nil {
		return err
	}
	console := consoleFor(cmd.ErrOrStderr(), debug)

	ws, err := loadWorkspace(flags.workspace)
	if err != nil {
		return err
	}
	defer setupLogging(ws.root, debug || ws.cfg.Logging.Debug, console)()

	settings, err := ws.resolveSettings(cmd, flags, console)
	if err != nil {
		return err
	}

	rounds := usecase.NewPlayRound(ws.problems, ws.problems, usecase.WithLogger(logger.L()))
	game := usecase.NewGame(rounds, settings, ws.settings, ws.sessions)

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	defer stop()

	if !plain && stdinIsTerminal(cmd, console) {
		return runTUI(ctx, cmd, ws, game, debug, format)
	}

	return playPlain(ctx, game, plainIO{
		in:      cmd.InOrStdin(),
		out:     cmd.OutOrStdout(),
		prompt:  promptWriter(cmd, format),
		console: console,
	}, format, maxRounds)
}

func runTUI(ctx context.Context, cmd *cobra.Command, ws *workspaceCtx, game *usecase.Game, debug bool, format string) error {
	res, err := tui.Run(ctx, tui.Deps{
		Game:          game,
		Problems:      ws.problems,
		Watcher:       filewatch.New(filewatch.WithLogger(logger.L())),
		WorkspaceRoot: ws.root,
		Logger:        logger.L(),
		Debug:         debug,
	})
	if res.Closed {
		_ = printSummary(cmd.OutOrStdout(), res.Artifact, res.ID, format)
	}
	return err
}

// stdinIsTerminal reports whether the TUI can take over the input. Piped
// input falls back to the line prompt.
func stdinIsTerminal(cmd *cobra.Command, console *log.Logger) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if ok && term.IsTerminal(int(f.Fd())) {
		return true
	}
	console.Warn("stdin is not a terminal, using the line prompt")
	return false
}

// promptWriter keeps stdout machine-readable when --format=json.
func promptWriter(cmd *cobra.Command, format string) io.Writer {
	if format == "json" {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

type plainIO struct {
	in      io.Reader
	out     io.Writer
	prompt  io.Writer
	console *log.Logger
}

// playPlain runs rounds until ctx is cancelled, input ends or maxRounds
// rounds were played. The session is always closed, which restores any
// open problem file, and the summary is printed.
func playPlain(ctx context.Context, game *usecase.Game, pio plainIO, format string, maxRounds int) (err error) {
	enter := readLines(ctx, pio.in)

	printWelcome(pio.prompt, game.Settings)

	defer func() {
		art, id, cerr := game.Close()
		if cerr != nil {
			if logger.IsReady() == nil {
				pio.console.Error("closing session", "err", cerr, "log", logger.Path())
			} else {
				pio.console.Error("closing session", "err", cerr)
			}
			err = errors.Join(err, cerr)
		}
		if perr := printSummary(pio.out, art, id, format); perr != nil {
			err = errors.Join(err, perr)
		}
	}()

	for played := 0; maxRounds <= 0 || played < maxRounds; played++ {
		round, err := game.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		printRoundStart(pio.prompt, round)

		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-enter:
			if !ok {
				return nil
			}
		}

		out, err := game.Complete(context.WithoutCancel(ctx))
		if err != nil {
			if out.Record.Path == "" {
				return err
			}
			pio.console.Warn("restoring problem file", "path", out.Record.Path, "err", err)
		}
		if err := printRound(pio.out, out, format); err != nil {
			return err
		}
		fmt.Fprintln(pio.prompt, "\nRound complete! Moving to next problem...")
	}
	return nil
}

// readLines signals once per input line and closes the channel at EOF.
func readLines(ctx context.Context, in io.Reader) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case ch <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}

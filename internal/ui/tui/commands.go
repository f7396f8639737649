package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
	"github.com/aalvaropc/blanks/internal/usecase"
	"github.com/aalvaropc/blanks/internal/usecase/blank"
)

func cmdStartRound(ctx context.Context, g *usecase.Game) tea.Cmd {
	return func() tea.Msg {
		r, err := g.Next(ctx)
		return roundStartedMsg{round: r, err: err}
	}
}

func cmdFinishRound(g *usecase.Game) tea.Cmd {
	return func() tea.Msg {
		out, err := g.Complete(context.Background())
		return roundFinishedMsg{out: out, err: err}
	}
}

func cmdCloseGame(g *usecase.Game) tea.Cmd {
	return func() tea.Msg {
		art, id, err := g.Close()
		return gameClosedMsg{art: art, id: id, err: err}
	}
}

func cmdWatch(ctx context.Context, w ports.ChangeWatcher, seq int, path string) tea.Cmd {
	return func() tea.Msg {
		if w == nil {
			return watchStartedMsg{seq: seq, err: errors.New("no watcher configured")}
		}
		ch, err := w.Watch(ctx, path)
		return watchStartedMsg{seq: seq, ch: ch, err: err}
	}
}

// listenChanges waits for the next save. A closed channel yields nil, which
// ends the listen loop.
func listenChanges(seq int, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{seq: seq, ch: ch}
	}
}

func cmdCountRemaining(store ports.ProblemStore, seq int, path string, blanks domain.BlankMap) tea.Cmd {
	return func() tea.Msg {
		if store == nil {
			return remainingMsg{seq: seq, remaining: len(blanks)}
		}
		edited, err := store.Read(path)
		if err != nil {
			return remainingMsg{seq: seq, err: err}
		}
		return remainingMsg{seq: seq, remaining: blank.Remaining(edited, blanks)}
	}
}

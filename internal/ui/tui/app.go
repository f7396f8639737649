package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/stopwatch"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/usecase"
)

type screen int

const (
	screenWelcome screen = iota
	screenRound
	screenResult
	screenGameOver
)

// Result is what the session produced once the program exits.
type Result struct {
	Artifact domain.SessionArtifact
	ID       string
	Closed   bool
}

type model struct {
	ctx   context.Context
	theme Theme
	deps  Deps

	scr           screen
	width, height int

	// busy is set while a game command is in flight; the game is not safe
	// for concurrent use.
	busy     bool
	quitting bool

	round     *domain.Round
	seq       int
	remaining int
	stopWatch context.CancelFunc
	sw        stopwatch.Model

	last   usecase.RoundOutcome
	result viewport.Model

	closed  bool
	summary Result
	toast   string
}

// Run drives the session until the user quits. The game is always closed
// before Run returns, which restores any blanked problem file.
func Run(ctx context.Context, deps Deps) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if deps.Game == nil {
		return Result{}, errors.New("tui: Game is nil")
	}

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if deps.Input != nil {
		opts = append(opts, tea.WithInput(deps.Input))
	}
	if deps.Output != nil {
		opts = append(opts, tea.WithOutput(deps.Output))
	}

	m := newModel(ctx, deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), opts...)
	final, err := p.Run()
	if err != nil && ctx.Err() != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, ctx.Err())) {
		// Cancelled by a signal: the game is closed below like a normal quit.
		err = nil
	}

	var res Result
	if sm, ok := final.(safeModel); ok {
		sm.m.stopWatching()
		res = sm.m.summary
	}
	if !res.Closed {
		// Killed or cancelled before a clean close.
		art, id, cerr := deps.Game.Close()
		res = Result{Artifact: art, ID: id, Closed: true}
		err = errors.Join(err, cerr)
	}
	return res, err
}

func newModel(ctx context.Context, deps Deps) model {
	return model{
		ctx:    ctx,
		theme:  DefaultTheme(),
		deps:   deps,
		scr:    screenWelcome,
		sw:     stopwatch.NewWithInterval(time.Second),
		result: viewport.New(76, 16),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.result.Width = max(msg.Width-10, 20)
		m.result.Height = max(msg.Height-14, 5)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case roundStartedMsg:
		m.busy = false
		if msg.err != nil {
			m.logError("round.start_failed", msg.err)
			m.toast = userMessage(msg.err)
			return m.closeGame()
		}
		m.round = msg.round
		m.seq++
		m.remaining = len(msg.round.Blanks)
		m.scr = screenRound
		m.toast = ""
		if m.quitting {
			return m.closeGame()
		}

		m.sw = stopwatch.NewWithInterval(time.Second)
		wctx, cancel := context.WithCancel(m.ctx)
		m.stopWatch = cancel
		return m, tea.Batch(m.sw.Init(), cmdWatch(wctx, m.deps.Watcher, m.seq, msg.round.Problem.Path))

	case watchStartedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		if msg.err != nil {
			m.logDebug("watch.unavailable", "err", msg.err)
			return m, nil
		}
		return m, listenChanges(msg.seq, msg.ch)

	case fileChangedMsg:
		if msg.seq != m.seq || m.round == nil {
			return m, nil
		}
		return m, tea.Batch(
			cmdCountRemaining(m.deps.Problems, msg.seq, m.round.Problem.Path, m.round.Blanks),
			listenChanges(msg.seq, msg.ch),
		)

	case remainingMsg:
		if msg.seq == m.seq && msg.err == nil {
			m.remaining = msg.remaining
		}
		return m, nil

	case roundFinishedMsg:
		m.busy = false
		m.round = nil
		m.stopWatching()

		if msg.err != nil {
			m.logError("round.finish_failed", msg.err)
			m.toast = userMessage(msg.err)
		}
		if msg.out.Record.Path == "" {
			m.scr = screenWelcome
		} else {
			m.last = msg.out
			m.result.SetContent(renderRoundResult(m.theme, msg.out))
			m.result.GotoTop()
			m.scr = screenResult
		}
		if m.quitting {
			return m.closeGame()
		}
		return m, nil

	case gameClosedMsg:
		m.busy = false
		m.closed = true
		m.round = nil
		m.summary = Result{Artifact: msg.art, ID: msg.id, Closed: true}
		if msg.err != nil {
			m.logError("game.close_failed", msg.err)
			m.toast = userMessage(msg.err)
		}
		m.scr = screenGameOver
		return m, nil
	}

	var cmd tea.Cmd
	switch m.scr {
	case screenRound:
		m.sw, cmd = m.sw.Update(msg)
	case screenResult:
		m.result, cmd = m.result.Update(msg)
	}
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		if m.scr == screenGameOver {
			return m, tea.Quit
		}
		return m.closeGame()
	}

	switch m.scr {
	case screenWelcome:
		switch key {
		case "enter", " ":
			return m.startRound()
		case "q", "esc":
			return m.closeGame()
		}

	case screenRound:
		switch key {
		case "enter":
			if m.busy {
				return m, nil
			}
			m.busy = true
			return m, tea.Batch(m.sw.Stop(), cmdFinishRound(m.deps.Game))
		case "r":
			if m.round != nil {
				return m, cmdCountRemaining(m.deps.Problems, m.seq, m.round.Problem.Path, m.round.Blanks)
			}
		}

	case screenResult:
		switch key {
		case "enter", "n":
			return m.startRound()
		case "q", "esc":
			return m.closeGame()
		default:
			var cmd tea.Cmd
			m.result, cmd = m.result.Update(msg)
			return m, cmd
		}

	case screenGameOver:
		switch key {
		case "enter", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) startRound() (tea.Model, tea.Cmd) {
	if m.busy || m.closed {
		return m, nil
	}
	m.busy = true
	return m, cmdStartRound(m.ctx, m.deps.Game)
}

// closeGame ends the session. While a command is in flight the close is
// deferred until its result arrives.
func (m model) closeGame() (tea.Model, tea.Cmd) {
	if m.closed {
		return m, tea.Quit
	}
	if m.busy {
		m.quitting = true
		return m, nil
	}
	m.stopWatching()
	m.busy = true
	return m, cmdCloseGame(m.deps.Game)
}

func (m *model) stopWatching() {
	if m.stopWatch != nil {
		m.stopWatch()
		m.stopWatch = nil
	}
}

func (m model) logError(event string, err error) {
	if m.deps.Logger != nil {
		m.deps.Logger.Error(event, "err", err)
	}
}

func (m model) logDebug(event string, args ...any) {
	if m.deps.Logger != nil && m.deps.Debug {
		m.deps.Logger.Debug(event, args...)
	}
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	s := m.deps.Game.Settings

	header := m.theme.Title.Render("Blanks") + "\n" +
		m.theme.Subtitle.Render(fmt.Sprintf("Language: %s • Ratio: %g • Mode: %s", s.Language, s.Ratio, s.Mode)) + "\n"
	if m.deps.WorkspaceRoot != "" {
		header += m.theme.Help.Render("Workspace: "+clampString(m.deps.WorkspaceRoot, 60)) + "\n"
	}

	var toast string
	if m.toast != "" {
		toast = "\n" + m.theme.Warn.Render("⚠ "+m.toast) + "\n"
	}

	var body, help string
	switch m.scr {
	case screenWelcome:
		body = m.theme.Card.Render(
			"Fill in the blanks of a solved problem, right in your editor.\n\n" +
				renderStats(m.theme, m.deps.Game.Session),
		)
		help = "enter start round • q finish • ctrl+c quit"

	case screenRound:
		body = m.theme.Card.Render(renderRound(m.theme, m.round, m.remaining, m.sw.View()))
		help = "edit and save the file, then enter to check • r recount • ctrl+c quit"
		if m.busy {
			help = "checking…"
		}

	case screenResult:
		body = m.theme.Card.Render(m.result.View())
		help = "enter next problem • ↑/↓ scroll • q finish • ctrl+c quit"

	case screenGameOver:
		body = m.theme.Card.Render(renderSummary(m.theme, m.summary.Artifact, m.summary.ID))
		help = "enter/q exit"

	default:
		body = "unknown state"
	}

	return wrap.Render(header + toast + "\n" + body + "\n" + m.theme.Help.Render(help))
}

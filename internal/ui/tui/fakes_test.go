package tui

import (
	"context"
	"errors"
	"sort"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/usecase"
)

type memFS struct {
	files map[string]string
}

func (m *memFS) ListProblems(_ string) ([]domain.ProblemRef, error) {
	refs := make([]domain.ProblemRef, 0, len(m.files))
	for p := range m.files {
		refs = append(refs, domain.ProblemRef{Name: p, Path: p})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

func (m *memFS) Read(path string) (string, error) {
	s, ok := m.files[path]
	if !ok {
		return "", errors.New("no such file")
	}
	return s, nil
}

func (m *memFS) Write(path, content string) error {
	m.files[path] = content
	return nil
}

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

const sample = "def add(a, b):\n    return a+b\n"

func newTestModel(t *testing.T, files map[string]string) (model, *memFS) {
	t.Helper()
	fs := &memFS{files: files}
	rounds := usecase.NewPlayRound(fs, fs, usecase.WithRand(firstRand{}))
	s := domain.DefaultSettings()
	s.Ratio = 1
	game := usecase.NewGame(rounds, s, nil, nil)
	return newModel(context.Background(), Deps{Game: game, Problems: fs}), fs
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	if !ok {
		t.Fatalf("expected model, got %T", next)
	}
	return mm, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mustCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	return cmd()
}

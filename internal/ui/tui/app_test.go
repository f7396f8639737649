package tui

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/usecase"
)

func roundOutcome(original, edited string, res domain.RoundResult) usecase.RoundOutcome {
	return usecase.RoundOutcome{
		Record:   domain.RoundRecord{Problem: "0001_add.py", Path: "0001_add.py", Result: res},
		Original: original,
		Edited:   edited,
	}
}

func startRound(t *testing.T, m model) model {
	t.Helper()
	m, cmd := update(t, m, key("enter"))
	if !m.busy {
		t.Fatalf("expected busy while the round starts")
	}
	msg := mustCmd(t, cmd)
	if _, ok := msg.(roundStartedMsg); !ok {
		t.Fatalf("expected roundStartedMsg, got %T", msg)
	}
	m, _ = update(t, m, msg)
	return m
}

func TestModel_RoundLifecycle(t *testing.T) {
	m, fs := newTestModel(t, map[string]string{"0001_add.py": sample})

	m = startRound(t, m)
	if m.scr != screenRound {
		t.Fatalf("expected round screen, got %v", m.scr)
	}
	if m.round == nil || len(m.round.Blanks) == 0 {
		t.Fatalf("expected an open round with blanks")
	}
	if m.remaining != len(m.round.Blanks) {
		t.Fatalf("expected all blanks remaining, got %d", m.remaining)
	}
	if !strings.Contains(fs.files["0001_add.py"], "_") {
		t.Fatalf("expected redacted file on disk, got %q", fs.files["0001_add.py"])
	}

	// The user fills everything in and saves.
	fs.files["0001_add.py"] = sample
	m, _ = update(t, m, mustCmd(t, cmdCountRemaining(fs, m.seq, m.round.Problem.Path, m.round.Blanks)))
	if m.remaining != 0 {
		t.Fatalf("expected 0 remaining after save, got %d", m.remaining)
	}

	m.busy = true
	m, _ = update(t, m, mustCmd(t, cmdFinishRound(m.deps.Game)))
	if m.scr != screenResult {
		t.Fatalf("expected result screen, got %v", m.scr)
	}
	if m.last.Record.Result.Correct != m.last.Record.Result.Total {
		t.Fatalf("expected a perfect round, got %+v", m.last.Record.Result)
	}
	if fs.files["0001_add.py"] != sample {
		t.Fatalf("expected original restored")
	}

	m, cmd := update(t, m, key("q"))
	m, _ = update(t, m, mustCmd(t, cmd))
	if m.scr != screenGameOver || !m.summary.Closed {
		t.Fatalf("expected closed game over screen, got scr=%v closed=%v", m.scr, m.summary.Closed)
	}
	if m.summary.Artifact.ProblemsCompleted != 1 {
		t.Fatalf("expected 1 problem completed, got %d", m.summary.Artifact.ProblemsCompleted)
	}
	if !strings.Contains(m.View(), "Final score") {
		t.Fatalf("expected final score in view:\n%s", m.View())
	}
}

func TestModel_CtrlCDuringRoundRestoresFile(t *testing.T) {
	m, fs := newTestModel(t, map[string]string{"0001_add.py": sample})
	m = startRound(t, m)

	m, cmd := update(t, m, key("ctrl+c"))
	msg := mustCmd(t, cmd)
	if _, ok := msg.(gameClosedMsg); !ok {
		t.Fatalf("expected gameClosedMsg, got %T", msg)
	}
	m, _ = update(t, m, msg)

	if fs.files["0001_add.py"] != sample {
		t.Fatalf("expected original restored, got %q", fs.files["0001_add.py"])
	}
	if m.summary.Artifact.ProblemsCompleted != 0 {
		t.Fatalf("aborted round must not count")
	}
	if strings.Contains(m.View(), "Final score") {
		t.Fatalf("score must be hidden when no blanks were played")
	}
}

func TestModel_CtrlCWhileBusyDefersClose(t *testing.T) {
	m, fs := newTestModel(t, map[string]string{"0001_add.py": sample})

	m, startCmd := update(t, m, key("enter"))
	m, cmd := update(t, m, key("ctrl+c"))
	if cmd != nil || !m.quitting {
		t.Fatalf("expected close to be deferred while busy")
	}

	m, cmd = update(t, m, mustCmd(t, startCmd))
	msg := mustCmd(t, cmd)
	if _, ok := msg.(gameClosedMsg); !ok {
		t.Fatalf("expected deferred close, got %T", msg)
	}
	m, _ = update(t, m, msg)

	if m.scr != screenGameOver {
		t.Fatalf("expected game over, got %v", m.scr)
	}
	if fs.files["0001_add.py"] != sample {
		t.Fatalf("expected original restored")
	}
}

func TestModel_StartErrorEndsGame(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{})

	m, cmd := update(t, m, key("enter"))
	m, cmd = update(t, m, mustCmd(t, cmd))
	if m.toast != "No problem files for this language" {
		t.Fatalf("unexpected toast %q", m.toast)
	}
	m, _ = update(t, m, mustCmd(t, cmd))
	if m.scr != screenGameOver {
		t.Fatalf("expected game over, got %v", m.scr)
	}
}

func TestModel_IgnoresStaleCounts(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"0001_add.py": sample})
	m = startRound(t, m)

	want := m.remaining
	m, _ = update(t, m, remainingMsg{seq: m.seq - 1, remaining: 0})
	if m.remaining != want {
		t.Fatalf("stale count applied: %d", m.remaining)
	}
}

func TestModel_GameOverQuits(t *testing.T) {
	m, _ := newTestModel(t, map[string]string{"0001_add.py": sample})
	m.scr = screenGameOver
	m.closed = true

	_, cmd := update(t, m, key("enter"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestSafeModel_RecoversAndCloses(t *testing.T) {
	m, fs := newTestModel(t, map[string]string{"0001_add.py": sample})
	m = startRound(t, m)

	s := wrapSafe(m, nil)
	// A started message without a round dereferences nil.
	next, cmd := s.Update(roundStartedMsg{})
	sm := next.(safeModel)
	if sm.m.toast != "Unexpected error (see logs)" {
		t.Fatalf("expected toast after panic, got %q", sm.m.toast)
	}
	if cmd == nil {
		t.Fatalf("expected close command after panic")
	}
	if _, ok := cmd().(gameClosedMsg); !ok {
		t.Fatalf("expected gameClosedMsg")
	}
	if fs.files["0001_add.py"] != sample {
		t.Fatalf("expected original restored after panic")
	}
}

func TestSafeModel_ViewRecovers(t *testing.T) {
	s := wrapSafe(model{}, nil)
	if got := s.View(); got != "Unexpected error (see logs)" {
		t.Fatalf("expected fallback view, got %q", got)
	}
}

func TestRenderRoundResult_ReportsDrift(t *testing.T) {
	out := renderRoundResult(DefaultTheme(), roundOutcome("abc", "abXc", domain.RoundResult{Correct: 1, Total: 2}))
	if !strings.Contains(out, "File length changed by +1") {
		t.Fatalf("expected drift note, got:\n%s", out)
	}
}

func TestRun_CancelledMidRoundRestoresFile(t *testing.T) {
	m, fs := newTestModel(t, map[string]string{"0001_add.py": sample})
	game := m.deps.Game

	if _, err := game.Next(context.Background()); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if fs.files["0001_add.py"] == sample {
		t.Fatalf("expected the file to be blanked while the round is open")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, Deps{
		Game:     game,
		Problems: fs,
		Input:    strings.NewReader(""),
		Output:   io.Discard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Closed {
		t.Fatalf("expected the game to be closed")
	}
	if fs.files["0001_add.py"] != sample {
		t.Fatalf("file not restored:\n%s", fs.files["0001_add.py"])
	}
	if game.Open() != nil {
		t.Fatalf("expected no open round after Run")
	}
}

package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/infra/textdiff"
	"github.com/aalvaropc/blanks/internal/usecase"
)

// maxMismatchLines caps the mismatch list; the rest is summarized.
const maxMismatchLines = 200

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

// printable makes whitespace in mismatch reports visible.
func printable(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	}
	return string(r)
}

func renderStats(t Theme, s domain.Session) string {
	if s.ProblemsCompleted == 0 {
		return t.Help.Render("No rounds played yet.")
	}
	return fmt.Sprintf("Rounds: %s   Blanks: %s   Accuracy: %s",
		t.Value.Render(fmt.Sprint(s.ProblemsCompleted)),
		t.Value.Render(fmt.Sprintf("%d/%d", s.FilledBlanks, s.TotalBlanks)),
		t.Value.Render(fmt.Sprintf("%.2f%%", s.Accuracy()*100)),
	)
}

func renderRound(t Theme, r *domain.Round, remaining int, elapsed string) string {
	if r == nil {
		return "Starting round…"
	}
	var b strings.Builder
	b.WriteString("Problem: ")
	b.WriteString(t.Value.Render(r.Problem.Name))
	b.WriteString("\n")
	b.WriteString(t.Help.Render(clampString(r.Problem.Path, 70)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Blanks to fill: %d\n", len(r.Blanks)))

	rem := fmt.Sprintf("%d", remaining)
	if remaining == 0 {
		rem = t.Good.Render(rem)
	} else {
		rem = t.Warn.Render(rem)
	}
	b.WriteString("Still blank:    " + rem + "\n")
	b.WriteString("Elapsed:        " + elapsed)
	return b.String()
}

func renderRoundResult(t Theme, out usecase.RoundOutcome) string {
	rec := out.Record
	res := rec.Result

	var b strings.Builder
	b.WriteString(t.Title.Render(rec.Problem))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Time taken: %.2f seconds\n", rec.Elapsed.Seconds()))

	score := fmt.Sprintf("%d/%d", res.Correct, res.Total)
	if res.Correct == res.Total {
		score = t.Good.Render(score)
	} else {
		score = t.Bad.Render(score)
	}
	b.WriteString("Correct blanks: " + score + "\n")

	if n := res.Skipped(); n > 0 {
		b.WriteString(t.Warn.Render(fmt.Sprintf("%d blank(s) fell past the end of the edited file.", n)))
		b.WriteString("\n")
	}

	if utf8.RuneCountInString(out.Original) != utf8.RuneCountInString(out.Edited) {
		d := textdiff.Compare(out.Original, out.Edited)
		if d.Shifted() {
			b.WriteString("\n")
			b.WriteString(t.Warn.Render(fmt.Sprintf(
				"File length changed by %+d characters; positions after %d may not line up (similarity %.1f%%).",
				d.LengthDelta, d.FirstShift, d.Similarity*100)))
			b.WriteString("\n")
			b.WriteString(t.Help.Render(strings.TrimRight(d.Patch, "\n")))
			b.WriteString("\n")
		}
	}

	if len(res.Mismatches) > 0 {
		b.WriteString("\n")
		b.WriteString(t.Bad.Render("Incorrect characters:"))
		b.WriteString("\n")
		for i, m := range res.Mismatches {
			if i == maxMismatchLines {
				b.WriteString(fmt.Sprintf("… and %d more\n", len(res.Mismatches)-i))
				break
			}
			b.WriteString(fmt.Sprintf("Position %d: Expected '%s', got '%s'\n", m.Position, printable(m.Expected), printable(m.Actual)))
		}
	}

	return b.String()
}

func renderSummary(t Theme, art domain.SessionArtifact, id string) string {
	var b strings.Builder
	b.WriteString(t.Title.Render("=== Game Over ==="))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Problems completed: %d\n", art.ProblemsCompleted))
	b.WriteString(fmt.Sprintf("Total time: %.2f seconds\n", art.ElapsedSeconds))
	b.WriteString(fmt.Sprintf("Blanks correctly filled: %d/%d\n", art.FilledBlanks, art.TotalBlanks))
	if art.TotalBlanks > 0 {
		b.WriteString(fmt.Sprintf("Accuracy: %.2f%%\n", art.Accuracy*100))
		b.WriteString("Final score: " + t.Value.Render(fmt.Sprintf("%.2f", art.Score)) + "\n")
	}
	if id != "" {
		b.WriteString(t.Help.Render("Session saved: " + id))
	}
	return b.String()
}

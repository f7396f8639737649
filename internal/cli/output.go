package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/infra/textdiff"
	"github.com/aalvaropc/blanks/internal/usecase"
)

func checkFormat(format string) error {
	switch format {
	case "pretty", "", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printWelcome(w io.Writer, s domain.Settings) {
	fmt.Fprintln(w, "Welcome to Blanks!")
	fmt.Fprintf(w, "Language: %s, Ratio: %g, Mode: %s\n", s.Language, s.Ratio, s.Mode)
	fmt.Fprintln(w, "Press Ctrl+C to exit and see your score.")
	fmt.Fprintln(w)
}

func printRoundStart(w io.Writer, r *domain.Round) {
	fmt.Fprintf(w, "Problem: %s\n", r.Problem.Path)
	fmt.Fprintf(w, "Blanks to fill: %d\n", len(r.Blanks))
	fmt.Fprintln(w, "Edit the file to fill in the blanks. Press Enter when done.")
}

// driftReport explains positional drift, or nil when the edit kept the length.
func driftReport(out usecase.RoundOutcome) *textdiff.Report {
	if utf8.RuneCountInString(out.Original) == utf8.RuneCountInString(out.Edited) {
		return nil
	}
	r := textdiff.Compare(out.Original, out.Edited)
	return &r
}

type roundJSON struct {
	Problem        string            `json:"problem"`
	ElapsedSeconds float64           `json:"elapsed_seconds"`
	Correct        int               `json:"correct"`
	Total          int               `json:"total"`
	Skipped        int               `json:"skipped"`
	Mismatches     []domain.Mismatch `json:"mismatches"`
	Drift          *textdiff.Report  `json:"drift,omitempty"`
}

func printRound(w io.Writer, out usecase.RoundOutcome, format string) error {
	rec := out.Record
	drift := driftReport(out)

	switch format {
	case "json":
		payload := roundJSON{
			Problem:        rec.Problem,
			ElapsedSeconds: rec.Elapsed.Seconds(),
			Correct:        rec.Result.Correct,
			Total:          rec.Result.Total,
			Skipped:        rec.Result.Skipped(),
			Mismatches:     rec.Result.Mismatches,
			Drift:          drift,
		}
		if payload.Mismatches == nil {
			payload.Mismatches = []domain.Mismatch{}
		}
		return json.NewEncoder(w).Encode(payload)

	case "pretty", "":
		fmt.Fprintf(w, "Time taken: %s\n", seconds(rec.Elapsed))
		fmt.Fprintf(w, "Correct blanks: %d/%d\n", rec.Result.Correct, rec.Result.Total)

		if len(rec.Result.Mismatches) > 0 {
			fmt.Fprintln(w, "Incorrect characters:")
			for _, m := range rec.Result.Mismatches {
				fmt.Fprintf(w, "Position %d: Expected '%c', got '%c'\n", m.Position, m.Expected, m.Actual)
			}
		}
		if n := rec.Result.Skipped(); n > 0 {
			fmt.Fprintf(w, "%d blank(s) fell past the end of the edited file.\n", n)
		}
		if drift != nil && drift.Shifted() {
			fmt.Fprintf(w, "File length changed by %+d characters; positions after %d may not line up (similarity %.1f%%).\n",
				drift.LengthDelta, drift.FirstShift, drift.Similarity*100)
			fmt.Fprintln(w, indent(strings.TrimRight(drift.Patch, "\n"), "  "))
		}
		return nil

	default:
		return checkFormat(format)
	}
}

type summaryJSON struct {
	ID                string  `json:"id,omitempty"`
	ProblemsCompleted int     `json:"problems_completed"`
	TotalSeconds      float64 `json:"total_seconds"`
	FilledBlanks      int     `json:"filled_blanks"`
	TotalBlanks       int     `json:"total_blanks"`
	Accuracy          float64 `json:"accuracy"`
	Score             float64 `json:"score"`
}

func printSummary(w io.Writer, art domain.SessionArtifact, id string, format string) error {
	switch format {
	case "json":
		return json.NewEncoder(w).Encode(summaryJSON{
			ID:                id,
			ProblemsCompleted: art.ProblemsCompleted,
			TotalSeconds:      art.ElapsedSeconds,
			FilledBlanks:      art.FilledBlanks,
			TotalBlanks:       art.TotalBlanks,
			Accuracy:          art.Accuracy,
			Score:             art.Score,
		})

	case "pretty", "":
		fmt.Fprintln(w)
		fmt.Fprintln(w, "=== Game Over ===")
		fmt.Fprintf(w, "Problems completed: %d\n", art.ProblemsCompleted)
		fmt.Fprintf(w, "Total time: %.2f seconds\n", art.ElapsedSeconds)
		fmt.Fprintf(w, "Blanks correctly filled: %d/%d\n", art.FilledBlanks, art.TotalBlanks)
		if art.TotalBlanks > 0 {
			fmt.Fprintf(w, "Accuracy: %.2f%%\n", art.Accuracy*100)
			fmt.Fprintf(w, "Final score: %.2f\n", art.Score)
		}
		if id != "" {
			fmt.Fprintf(w, "Session saved: %s\n", id)
		}
		return nil

	default:
		return checkFormat(format)
	}
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2f seconds", d.Seconds())
}

func indent(s, prefix string) string {
	if s == "" {
		return s
	}
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}

package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
	"github.com/aalvaropc/blanks/internal/usecase/blank"
)

// PlayRound opens and closes single rounds against problem files on disk.
type PlayRound struct {
	catalog ports.ProblemCatalog
	store   ports.ProblemStore

	rng blank.RandSource
	now func() time.Time
	log *slog.Logger
}

type RoundOption func(*PlayRound)

// WithRand overrides problem and blank selection randomness (useful for tests).
func WithRand(r blank.RandSource) RoundOption {
	return func(uc *PlayRound) {
		if r != nil {
			uc.rng = r
		}
	}
}

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) RoundOption {
	return func(uc *PlayRound) { uc.now = now }
}

func WithLogger(l *slog.Logger) RoundOption {
	return func(uc *PlayRound) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewPlayRound(catalog ports.ProblemCatalog, store ports.ProblemStore, opts ...RoundOption) *PlayRound {
	uc := &PlayRound{
		catalog: catalog,
		store:   store,
		rng:     blank.NewRand(),
		now:     time.Now,
		log:     slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// RoundOutcome is a verified round plus the texts needed to explain it.
type RoundOutcome struct {
	Record   domain.RoundRecord
	Original string
	Edited   string
}

// Start selects a problem, blanks it and writes the redacted text over the file.
// current is the path of the previous problem (for sequential mode).
func (uc *PlayRound) Start(ctx context.Context, s domain.Settings, current string) (*domain.Round, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := uc.catalog.ListProblems(s.Language)
	if err != nil {
		return nil, err
	}

	sel, err := SelectProblem(files, current, s.Problem, s.Mode, uc.rng)
	if err != nil {
		return nil, err
	}
	if sel.FellBack {
		uc.log.Warn("round.problem_not_found",
			"problem", *s.Problem,
			"fallback_mode", string(s.Mode),
			"selected", sel.Problem.Name,
		)
	}

	original, err := uc.store.Read(sel.Problem.Path)
	if err != nil {
		return nil, err
	}

	redacted, blanks := blank.Generate(original, s.Ratio, blank.WithRand(uc.rng))

	round := &domain.Round{
		Problem:   sel.Problem,
		Original:  original,
		Redacted:  redacted,
		Blanks:    blanks,
		StartedAt: uc.now(),
	}

	if err := uc.store.Write(sel.Problem.Path, redacted); err != nil {
		// The write may have truncated the file; put the original back.
		return nil, errors.Join(err, uc.Abort(round))
	}

	uc.log.Info("round.start",
		"problem", sel.Problem.Name,
		"path", sel.Problem.Path,
		"ratio", s.Ratio,
		"blanks", len(blanks),
	)
	return round, nil
}

// Finish reads the user's edit, verifies it and restores the original text.
// The original is restored even when reading the edit fails.
func (uc *PlayRound) Finish(ctx context.Context, round *domain.Round) (RoundOutcome, error) {
	edited, readErr := uc.store.Read(round.Problem.Path)
	elapsed := uc.now().Sub(round.StartedAt)
	restoreErr := uc.Abort(round)

	if readErr != nil {
		return RoundOutcome{}, errors.Join(readErr, restoreErr)
	}
	if err := ctx.Err(); err != nil {
		return RoundOutcome{}, errors.Join(err, restoreErr)
	}

	res := blank.Verify(edited, round.Blanks)

	uc.log.Info("round.finish",
		"problem", round.Problem.Name,
		"correct", res.Correct,
		"total", res.Total,
		"mismatches", len(res.Mismatches),
		"skipped", res.Skipped(),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	out := RoundOutcome{
		Record: domain.RoundRecord{
			Problem:   round.Problem.Name,
			Path:      round.Problem.Path,
			StartedAt: round.StartedAt,
			Elapsed:   elapsed,
			Result:    res,
		},
		Original: round.Original,
		Edited:   edited,
	}
	return out, restoreErr
}

// Abort writes the saved original back over the problem file. Safe to call
// more than once.
func (uc *PlayRound) Abort(round *domain.Round) error {
	if round == nil {
		return nil
	}
	if err := uc.store.Write(round.Problem.Path, round.Original); err != nil {
		uc.log.Error("round.restore_failed", "path", round.Problem.Path, "err", err)
		return &domain.OpError{
			Op:   "usecase.restore",
			Kind: domain.KindExecution,
			Path: round.Problem.Path,
			Err:  err,
		}
	}
	return nil
}

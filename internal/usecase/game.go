package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
)

// Game drives consecutive rounds and owns the session statistics.
// It allows at most one open round at a time.
type Game struct {
	rounds   *PlayRound
	settings ports.SettingsStore
	sessions ports.SessionStore

	Settings domain.Settings
	Session  domain.Session
	History  []domain.RoundRecord

	current   string
	open      *domain.Round
	startedAt time.Time
	now       func() time.Time
}

// ErrRoundOpen is returned when Next is called before the open round is closed.
var ErrRoundOpen = errors.New("a round is already open")

// NewGame starts a session. settings and sessions may be nil to skip persistence.
func NewGame(rounds *PlayRound, s domain.Settings, settings ports.SettingsStore, sessions ports.SessionStore) *Game {
	return &Game{
		rounds:    rounds,
		settings:  settings,
		sessions:  sessions,
		Settings:  s.Normalize(),
		startedAt: rounds.now(),
		now:       rounds.now,
	}
}

// Open returns the round in progress, if any.
func (g *Game) Open() *domain.Round { return g.open }

// Next opens a new round.
func (g *Game) Next(ctx context.Context) (*domain.Round, error) {
	if g.open != nil {
		return nil, ErrRoundOpen
	}
	r, err := g.rounds.Start(ctx, g.Settings, g.current)
	if err != nil {
		return nil, err
	}
	g.open = r
	g.current = r.Problem.Path
	return r, nil
}

// Complete verifies the open round, restores the file and folds the result
// into the session. Settings are persisted after every completed round.
func (g *Game) Complete(ctx context.Context) (RoundOutcome, error) {
	if g.open == nil {
		return RoundOutcome{}, errors.New("no round is open")
	}
	r := g.open
	g.open = nil

	out, err := g.rounds.Finish(ctx, r)
	if err != nil && out.Record.Path == "" {
		return RoundOutcome{}, err
	}

	g.Session.Record(out.Record.Result, out.Record.Elapsed)
	g.History = append(g.History, out.Record)

	if g.settings != nil {
		if serr := g.settings.SaveSettings(g.Settings); serr != nil {
			g.rounds.log.Warn("settings.save_failed", "err", serr)
		}
	}
	return out, err
}

// Close aborts any open round and persists the session when at least one
// round was completed. It returns the artifact and its id ("" when not saved).
func (g *Game) Close() (domain.SessionArtifact, string, error) {
	var abortErr error
	if g.open != nil {
		abortErr = g.rounds.Abort(g.open)
		g.open = nil
	}

	art := domain.NewSessionArtifact(g.Settings, g.Session, g.History, g.startedAt, g.now())
	if g.sessions == nil || len(g.History) == 0 {
		return art, "", abortErr
	}

	id, err := g.sessions.SaveSession(art)
	if err != nil {
		return art, "", errors.Join(abortErr, err)
	}
	art.ID = id
	return art, id, abortErr
}

package tui

import (
	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/usecase"
)

type roundStartedMsg struct {
	round *domain.Round
	err   error
}

type watchStartedMsg struct {
	seq int
	ch  <-chan struct{}
	err error
}

type fileChangedMsg struct {
	seq int
	ch  <-chan struct{}
}

type remainingMsg struct {
	seq       int
	remaining int
	err       error
}

type roundFinishedMsg struct {
	out usecase.RoundOutcome
	err error
}

type gameClosedMsg struct {
	art domain.SessionArtifact
	id  string
	err error
}

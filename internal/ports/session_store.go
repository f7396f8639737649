package ports

import "github.com/aalvaropc/blanks/internal/domain"

// SessionStore persists finished sessions for later review.
type SessionStore interface {
	SaveSession(s domain.SessionArtifact) (id string, err error)
	ListSessions() ([]domain.SessionArtifact, error)
}

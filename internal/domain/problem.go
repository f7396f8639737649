package domain

import "time"

// ProblemRef is a lightweight reference to a problem file on disk.
type ProblemRef struct {
	Name string
	Path string
}

// Round is the state of one open round: the saved original text, what was
// written to disk, and the blanks to verify against.
type Round struct {
	Problem  ProblemRef
	Original string
	Redacted string
	Blanks   BlankMap

	StartedAt time.Time
}

// RoundRecord is a finished round as persisted in a session artifact.
type RoundRecord struct {
	Problem   string        `json:"problem"`
	Path      string        `json:"path"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed_ns"`
	Result    RoundResult   `json:"result"`
}

// SessionArtifact is a persisted session for later review.
type SessionArtifact struct {
	ID string `json:"id"`

	Language string  `json:"language"`
	Ratio    float64 `json:"ratio"`
	Mode     string  `json:"mode"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	ProblemsCompleted int     `json:"problems_completed"`
	TotalBlanks       int     `json:"total_blanks"`
	FilledBlanks      int     `json:"filled_blanks"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
	Accuracy          float64 `json:"accuracy"`
	Score             float64 `json:"score"`

	Rounds []RoundRecord `json:"rounds"`
}

// NewSessionArtifact snapshots a session and its rounds.
func NewSessionArtifact(s Settings, sess Session, rounds []RoundRecord, started, finished time.Time) SessionArtifact {
	return SessionArtifact{
		Language:          s.Language,
		Ratio:             s.Ratio,
		Mode:              string(s.Mode),
		StartedAt:         started,
		FinishedAt:        finished,
		ProblemsCompleted: sess.ProblemsCompleted,
		TotalBlanks:       sess.TotalBlanks,
		FilledBlanks:      sess.FilledBlanks,
		ElapsedSeconds:    sess.Elapsed.Seconds(),
		Accuracy:          sess.Accuracy(),
		Score:             sess.Score(),
		Rounds:            rounds,
	}
}

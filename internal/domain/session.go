package domain

import "time"

// Session accumulates statistics across the rounds of one play session.
// It is an explicit value owned by the caller that drives the rounds.
type Session struct {
	ProblemsCompleted int
	TotalBlanks       int
	FilledBlanks      int
	Elapsed           time.Duration
}

// Record folds a finished round into the session totals.
func (s *Session) Record(res RoundResult, elapsed time.Duration) {
	s.ProblemsCompleted++
	s.TotalBlanks += res.Total
	s.FilledBlanks += res.Correct
	if elapsed > 0 {
		s.Elapsed += elapsed
	}
}

// Accuracy is FilledBlanks/TotalBlanks, or 0 when no blanks were played.
func (s Session) Accuracy() float64 {
	if s.TotalBlanks == 0 {
		return 0
	}
	return float64(s.FilledBlanks) / float64(s.TotalBlanks)
}

// Score rewards accuracy, speed and volume:
// accuracy * 1000 * (1/seconds) * problems. The time factor is 1 when no time elapsed.
func (s Session) Score() float64 {
	timeFactor := 1.0
	if secs := s.Elapsed.Seconds(); secs > 0 {
		timeFactor = 1.0 / secs
	}
	return s.Accuracy() * 1000.0 * timeFactor * float64(s.ProblemsCompleted)
}

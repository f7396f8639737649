package usecase

import (
	"errors"
	"sort"
	"time"

	"github.com/aalvaropc/blanks/internal/domain"
)

// --- fakes shared by the round and game tests ---

type memFS struct {
	files     map[string]string
	writes    int
	failWrite error
	failRead  error
}

func newMemFS(files map[string]string) *memFS {
	return &memFS{files: files}
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
	if m.failRead != nil {
		return "", m.failRead
	}
	s, ok := m.files[path]
	if !ok {
		return "", errors.New("no such file")
	}
	return s, nil
}

func (m *memFS) Write(path, content string) error {
	m.writes++
	if m.failWrite != nil {
		return m.failWrite
	}
	m.files[path] = content
	return nil
}

type errCatalog struct{ err error }

func (e errCatalog) ListProblems(_ string) ([]domain.ProblemRef, error) { return nil, e.err }

type firstRand struct{}

func (firstRand) IntN(int) int { return 0 }

// stepClock advances by step on every call.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

type fakeSettings struct {
	saved []domain.Settings
}

func (f *fakeSettings) LoadSettings(d domain.Settings) (domain.Settings, error) { return d, nil }
func (f *fakeSettings) SaveSettings(s domain.Settings) error {
	f.saved = append(f.saved, s)
	return nil
}

type fakeSessions struct {
	saved []domain.SessionArtifact
}

func (f *fakeSessions) SaveSession(s domain.SessionArtifact) (string, error) {
	f.saved = append(f.saved, s)
	return "session-1", nil
}

func (f *fakeSessions) ListSessions() ([]domain.SessionArtifact, error) { return f.saved, nil }

package sessionstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
	json "github.com/goccy/go-json"
)

const defaultSessionsDir = "sessions"

const indexFile = "index.jsonl"

type JSONStore struct {
	rootDir         string
	sessionsDirName string
	writeIndex      bool
	now             func() time.Time
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: sessions/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.SessionsDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultSessionsDir
	}

	s := &JSONStore{
		rootDir:         root,
		sessionsDirName: dir,
		writeIndex:      false,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SessionStore = (*JSONStore)(nil)

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.sessionsDirName)
}

func (s *JSONStore) SaveSession(art domain.SessionArtifact) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "sessionstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := art.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := art
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}

	slug := slugify(art.Language)
	if slug == "" {
		slug = "session"
	}

	base := fmt.Sprintf("%s_%s", ts.Format("20060102T150405Z"), slug)
	id := base
	for n := 2; ; n++ {
		if _, err := os.Stat(filepath.Join(dir, id+".json")); errors.Is(err, fs.ErrNotExist) {
			break
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
	filename := id + ".json"
	path := filepath.Join(dir, filename)
	toSave.ID = id

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "sessionstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "sessionstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "sessionstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		_ = s.appendIndex(dir, filename, toSave)
	}

	return id, nil
}

type indexEntry struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Language  string    `json:"language"`
	Problems  int       `json:"problems_completed"`
	Score     float64   `json:"score"`
	StartedAt time.Time `json:"started_at"`
}

func (s *JSONStore) appendIndex(dir, filename string, art domain.SessionArtifact) error {
	line, err := json.Marshal(indexEntry{
		ID:        art.ID,
		File:      filename,
		Language:  art.Language,
		Problems:  art.ProblemsCompleted,
		Score:     art.Score,
		StartedAt: art.StartedAt,
	})
	if err != nil {
		return err
	}

	indexPath := filepath.Join(dir, indexFile)
	f, err := os.OpenFile(indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _ = f.Write(append(line, '\n'))
	return nil
}

// ListSessions returns every stored session, oldest first. A missing
// sessions directory yields an empty list.
func (s *JSONStore) ListSessions() ([]domain.SessionArtifact, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &domain.OpError{Op: "sessionstore.list", Kind: domain.KindExecution, Path: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	out := make([]domain.SessionArtifact, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.OpError{Op: "sessionstore.read", Kind: domain.KindExecution, Path: path, Err: err}
		}
		var art domain.SessionArtifact
		if err := json.Unmarshal(b, &art); err != nil {
			return nil, &domain.OpError{Op: "sessionstore.decode", Kind: domain.KindInvalidConfig, Path: path, Err: err}
		}
		if art.ID == "" {
			art.ID = strings.TrimSuffix(name, ".json")
		}
		out = append(out, art)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.StartedAt.Equal(b.StartedAt) {
			return a.StartedAt.Before(b.StartedAt)
		}
		if sa, sb := collisionSeq(a.ID), collisionSeq(b.ID); sa != sb {
			return sa < sb
		}
		return a.ID < b.ID
	})
	return out, nil
}

// collisionSeq returns the -N suffix SaveSession adds for ids saved in the
// same second, or 1 for the first one.
func collisionSeq(id string) int {
	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return 1
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n < 2 {
		return 1
	}
	return n
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

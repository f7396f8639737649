// Package filewatch reports saves of a single file using fsnotify.
package filewatch

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aalvaropc/blanks/internal/domain"
	"github.com/aalvaropc/blanks/internal/ports"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

type Watcher struct {
	debounce time.Duration
	log      *slog.Logger
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

func New(opts ...Option) *Watcher {
	w := &Watcher{debounce: defaultDebounce, log: slog.New(slog.NewJSONHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.ChangeWatcher = (*Watcher)(nil)

// Watch emits on the returned channel whenever path is written or replaced.
// Bursts inside the debounce window collapse into one signal. The parent
// directory is watched so editors that save via rename are still seen.
// The channel is closed once ctx is done.
func (w *Watcher) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &domain.OpError{Op: "filewatch.watch", Kind: domain.KindExecution, Path: path, Err: err}
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &domain.OpError{Op: "filewatch.watch", Kind: domain.KindExecution, Path: abs, Err: err}
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, &domain.OpError{Op: "filewatch.watch", Kind: domain.KindExecution, Path: abs, Err: err}
	}

	out := make(chan struct{}, 1)
	go w.run(ctx, fw, abs, out)
	return out, nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher, target string, out chan<- struct{}) {
	defer close(out)
	defer fw.Close()

	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			now := time.Now()
			if now.Sub(last) < w.debounce {
				continue
			}
			last = now

			select {
			case out <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("filewatch.error", "path", target, "err", err)
		}
	}
}

package ports

import "context"

// ChangeWatcher reports writes to a single file until ctx is done.
type ChangeWatcher interface {
	Watch(ctx context.Context, path string) (<-chan struct{}, error)
}

package catalog

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hyperjump/erabu/internal/models"
	"go.uber.org/zap"
)

// reloadDebounce coalesces the burst of write events a rebuild produces.
const reloadDebounce = 500 * time.Millisecond

// Store holds the loaded catalog as a shared read-only snapshot. Queries
// read the snapshot without locking each product; the only shared-state rule
// is that a snapshot, once handed out, is never mutated - a rebuild swaps in
// a completely new slice.
type Store struct {
	path   string
	logger *zap.Logger

	mu       sync.RWMutex
	snapshot []*models.ProductDocument
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets a logger for load and reload events.
func WithStoreLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store for the aggregated index at path and performs the
// initial load.
func NewStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current catalog. Callers must treat the slice and its
// documents as immutable.
func (s *Store) Snapshot() []*models.ProductDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Len returns the number of products in the current snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot)
}

// Get returns the product with the given id, or nil.
func (s *Store) Get(id string) *models.ProductDocument {
	for _, p := range s.Snapshot() {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Reload loads the index file and atomically swaps the snapshot. In-flight
// queries keep the snapshot they started with.
func (s *Store) Reload() error {
	products, err := LoadIndexFile(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = products
	s.mu.Unlock()
	s.logger.Info("catalog snapshot loaded", zap.String("path", s.path), zap.Int("products", len(products)))
	return nil
}

// Watch reloads the snapshot whenever the index file is rewritten by an
// offline build. The catalog itself is still rebuilt in full batch passes;
// this only swaps in the finished file. Watch blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: builds typically replace the file, which drops a
	// watch registered on the file itself.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return err
	}

	var timer *time.Timer
	reload := func() {
		if err := s.Reload(); err != nil {
			s.logger.Error("catalog reload failed", zap.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("catalog watch error", zap.Error(err))
		}
	}
}

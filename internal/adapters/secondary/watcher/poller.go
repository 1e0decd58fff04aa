package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// PollingWatcher watches a single deck file by polling its size, mtime and
// content hash. Bursts of changes collapse into one event emitted once the
// file has been quiet for the debounce period.
type PollingWatcher struct {
	interval time.Duration
	debounce time.Duration
	logger   ports.Logger

	mu       sync.Mutex
	snapshot fileSnapshot
	events   chan ports.FileChangeEvent
	stopCh   chan struct{}
	stopOnce sync.Once
	closeOne sync.Once
	wg       sync.WaitGroup
	watching bool
}

// fileSnapshot is the last observed state of the watched file
type fileSnapshot struct {
	exists   bool
	size     int64
	modTime  time.Time
	checksum string
}

// pendingChange is a change waiting out the debounce period
type pendingChange struct {
	kind ports.ChangeType
	last time.Time
}

// NewPollingWatcher creates a new polling-based file watcher
func NewPollingWatcher(interval, debounce time.Duration, logger ports.Logger) *PollingWatcher {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &PollingWatcher{
		interval: interval,
		debounce: debounce,
		logger:   logger,
		events:   make(chan ports.FileChangeEvent, 10),
		stopCh:   make(chan struct{}),
	}
}

// Watch starts watching path. A watcher serves one path; the returned
// channel closes when ctx is done or Stop is called.
func (w *PollingWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileChangeEvent, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watching {
		return nil, errors.New("watcher already started")
	}

	snap, err := takeSnapshot(absPath)
	if err != nil {
		return nil, fmt.Errorf("initial scan: %w", err)
	}
	if !snap.exists {
		return nil, fmt.Errorf("initial scan: %w", fs.ErrNotExist)
	}
	w.snapshot = snap
	w.watching = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.closeEvents()
		w.pollLoop(ctx, absPath)
	}()

	return w.events, nil
}

// Stop stops the file watcher and closes the event channel
func (w *PollingWatcher) Stop() error {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.closeEvents()
	return nil
}

func (w *PollingWatcher) closeEvents() {
	w.closeOne.Do(func() { close(w.events) })
}

// pollLoop polls path until ctx is done or the watcher is stopped
func (w *PollingWatcher) pollLoop(ctx context.Context, path string) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var pending *pendingChange

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case now := <-ticker.C:
			kind, changed, err := w.checkForChanges(path)
			if err != nil {
				w.logger.Warn("watch error on %s: %v", path, err)
				continue
			}

			if changed {
				if pending == nil {
					pending = &pendingChange{kind: kind}
				} else {
					pending.kind = mergeKinds(pending.kind, kind)
				}
				pending.last = now
				continue
			}

			if pending == nil || now.Sub(pending.last) < w.debounce {
				continue
			}

			event := ports.FileChangeEvent{
				Path:      path,
				Type:      pending.kind,
				Timestamp: now,
			}
			pending = nil

			w.logger.Debug("%s %s", path, event.Type)

			select {
			case w.events <- event:
			case <-ctx.Done():
				return
			case <-w.stopCh:
				return
			}
		}
	}
}

// mergeKinds folds a new change into a pending one. A delete followed by a
// create reads as a modification (editors that save by rename do this).
func mergeKinds(prev, next ports.ChangeType) ports.ChangeType {
	switch {
	case prev == ports.Deleted && next == ports.Created:
		return ports.Modified
	case next == ports.Deleted:
		return ports.Deleted
	case prev == ports.Created:
		return ports.Created
	default:
		return next
	}
}

// checkForChanges compares path against the last snapshot
func (w *PollingWatcher) checkForChanges(path string) (ports.ChangeType, bool, error) {
	w.mu.Lock()
	old := w.snapshot
	w.mu.Unlock()

	// skip hashing when size and mtime are unchanged
	info, err := os.Stat(path)
	if err == nil && old.exists && old.size == info.Size() && old.modTime.Equal(info.ModTime()) {
		return 0, false, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, false, fmt.Errorf("stat file: %w", err)
	}

	snap, err := takeSnapshot(path)
	if err != nil {
		return 0, false, err
	}

	var kind ports.ChangeType
	switch {
	case old.exists && !snap.exists:
		kind = ports.Deleted
	case !old.exists && snap.exists:
		kind = ports.Created
	case !snap.exists:
		return 0, false, nil
	case old.checksum == snap.checksum:
		// touched but identical; remember the new mtime only
		w.mu.Lock()
		w.snapshot = snap
		w.mu.Unlock()
		return 0, false, nil
	default:
		kind = ports.Modified
	}

	w.mu.Lock()
	w.snapshot = snap
	w.mu.Unlock()

	return kind, true, nil
}

// takeSnapshot records the state of path. A missing file yields a snapshot
// with exists unset.
func takeSnapshot(path string) (fileSnapshot, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileSnapshot{}, nil
	}
	if err != nil {
		return fileSnapshot{}, fmt.Errorf("stat file: %w", err)
	}

	checksum, err := calculateChecksum(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileSnapshot{}, nil
	}
	if err != nil {
		return fileSnapshot{}, fmt.Errorf("calculate checksum: %w", err)
	}

	return fileSnapshot{
		exists:   true,
		size:     info.Size(),
		modTime:  info.ModTime(),
		checksum: checksum,
	}, nil
}

// calculateChecksum calculates SHA256 checksum of a file
func calculateChecksum(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 - path is the deck the user asked to watch
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}

// Ensure PollingWatcher implements ports.FileWatcher
var _ ports.FileWatcher = (*PollingWatcher)(nil)

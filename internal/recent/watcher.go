package recent

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/tiptapri/tiptapri/internal/model"
)

// WatchDebounce groups bursts of filesystem events into one reload
const WatchDebounce = 150 * time.Millisecond

// Reloader is implemented by stores that cache file content and can re-read it
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher follows the store file and reports the list after external changes
type Watcher struct {
	fsw    *fsnotify.Watcher
	cancel context.CancelFunc
	done   chan struct{}
}

// Watch starts following storePath. onChange receives the freshly read list
// each time the file is written or replaced. The store directory must exist.
// Stop the watcher with Close or by cancelling ctx.
func (r *Registry) Watch(ctx context.Context, storePath string, onChange func([]model.FileRecord)) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch: onChange callback is required")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Atomic saves replace the file, so follow its directory and filter by name
	target := filepath.Clean(storePath)
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		fsw:    fsw,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go r.processEvents(ctx, w, target, onChange)

	r.logger.Info("watching store file", zap.String("path", target))
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit
func (w *Watcher) Close() error {
	w.cancel()
	<-w.done
	return w.fsw.Close()
}

func (r *Registry) processEvents(ctx context.Context, w *Watcher, target string, onChange func([]model.FileRecord)) {
	defer close(w.done)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			r.logger.Debug("store file changed", zap.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(WatchDebounce)
			} else {
				timer.Reset(WatchDebounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			files, err := r.reload(ctx)
			if err != nil {
				r.logger.Warn("failed to reload recent files", zap.Error(err))
				continue
			}
			onChange(files)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			r.logger.Error("watcher error", zap.Error(err))
		}
	}
}

// reload refreshes a caching store from disk, then reads the list
func (r *Registry) reload(ctx context.Context) ([]model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rl, ok := r.store.(Reloader); ok {
		if err := rl.Reload(ctx); err != nil {
			return nil, fmt.Errorf("reload store: %w", err)
		}
	}
	return r.list(ctx)
}

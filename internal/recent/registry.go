package recent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tiptapri/tiptapri/internal/logging"
	"github.com/tiptapri/tiptapri/internal/model"
	"github.com/tiptapri/tiptapri/internal/store"
)

// KeyRecentlyOpenedFileList is the store key holding the list
const KeyRecentlyOpenedFileList = "KEY_RECENTLY_OPENED_FILE_LIST"

// Registry manages the recently opened file list in a store it does not own.
// Calls through one Registry are serialized so a watcher reload never lands
// between the Set and Save of an update.
type Registry struct {
	mu     sync.Mutex
	store  store.Store
	logger *zap.Logger
}

// NewRegistry creates a registry backed by s. A nil logger disables logging.
func NewRegistry(s store.Store, logger *zap.Logger) *Registry {
	return &Registry{
		store:  s,
		logger: logging.Named(logger, "recent"),
	}
}

// List returns the persisted list, or an empty list when none was saved yet
func (r *Registry) List(ctx context.Context) ([]model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(ctx)
}

func (r *Registry) list(ctx context.Context) ([]model.FileRecord, error) {
	raw, found, err := r.store.Get(ctx, KeyRecentlyOpenedFileList)
	if err != nil {
		return nil, fmt.Errorf("read recent files: %w", err)
	}
	if !found {
		return []model.FileRecord{}, nil
	}

	var files []model.FileRecord
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil, fmt.Errorf("decode recent files: %w", err)
	}
	if files == nil {
		files = []model.FileRecord{}
	}
	return files, nil
}

// Add appends rec unless an entry with the same full path exists.
// A duplicate leaves the list untouched and nothing is written.
func (r *Registry) Add(ctx context.Context, rec model.FileRecord) ([]model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	if contains(files, rec) {
		r.logger.Debug("file already in recent list", zap.String("path", rec.FullPath))
		return files, nil
	}

	files = append(files, rec)
	if err := r.persist(ctx, files); err != nil {
		return nil, err
	}

	r.logger.Info("added recent file", zap.String("path", rec.FullPath), zap.Int("count", len(files)))
	return files, nil
}

// Remove drops every entry whose full path equals rec's and commits the result,
// even when nothing matched.
func (r *Registry) Remove(ctx context.Context, rec model.FileRecord) ([]model.FileRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	files, err := r.list(ctx)
	if err != nil {
		return nil, err
	}

	kept := make([]model.FileRecord, 0, len(files))
	for _, f := range files {
		if !f.SameFile(rec) {
			kept = append(kept, f)
		}
	}

	if err := r.persist(ctx, kept); err != nil {
		return nil, err
	}

	r.logger.Info("removed recent file",
		zap.String("path", rec.FullPath),
		zap.Int("removed", len(files)-len(kept)),
		zap.Int("count", len(kept)))
	return kept, nil
}

// persist writes the full list and commits it
func (r *Registry) persist(ctx context.Context, files []model.FileRecord) error {
	encoded, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("encode recent files: %w", err)
	}
	if err := r.store.Set(ctx, KeyRecentlyOpenedFileList, encoded); err != nil {
		return fmt.Errorf("write recent files: %w", err)
	}
	if err := r.store.Save(ctx); err != nil {
		return fmt.Errorf("save recent files: %w", err)
	}
	return nil
}

func contains(files []model.FileRecord, rec model.FileRecord) bool {
	for _, f := range files {
		if f.SameFile(rec) {
			return true
		}
	}
	return false
}

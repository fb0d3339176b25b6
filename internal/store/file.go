package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tiptapri/tiptapri/internal/platform"
)

// FileStore keeps all entries of one JSON object file in memory.
// The file is read once on open and rewritten in full by Save.
type FileStore struct {
	mu     sync.Mutex
	path   string
	data   map[string]json.RawMessage
	closed bool
}

// OpenFile loads the store at path. A missing file is an empty store;
// content that is not a JSON object is an error.
func OpenFile(ctx context.Context, path string) (*FileStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	return &FileStore{
		path: path,
		data: data,
	}, nil
}

// Reload replaces the in-memory entries with the file's current content.
// Values set since the last Save are discarded.
func (fs *FileStore) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return ErrClosed
	}
	data, err := loadFile(fs.path)
	if err != nil {
		return err
	}
	fs.data = data
	return nil
}

func loadFile(path string) (map[string]json.RawMessage, error) {
	data := make(map[string]json.RawMessage)

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode store %s: %w", path, err)
	}
	if data == nil {
		// the file held a JSON null
		data = make(map[string]json.RawMessage)
	}
	return data, nil
}

// Path returns the file backing the store
func (fs *FileStore) Path() string {
	return fs.path
}

// Get returns the JSON document stored under key
func (fs *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return nil, false, ErrClosed
	}
	value, ok := fs.data[key]
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(value), true, nil
}

// Set stores value under key. The value must be a valid JSON document.
func (fs *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("set %q: value is not valid JSON", key)
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return ErrClosed
	}
	fs.data[key] = cloneBytes(value)
	return nil
}

// Save writes every entry to disk atomically
func (fs *FileStore) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.closed {
		return ErrClosed
	}

	encoded, err := json.MarshalIndent(fs.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	if err := platform.WriteFileAtomic(fs.path, encoded); err != nil {
		return fmt.Errorf("write store %s: %w", fs.path, err)
	}
	return nil
}

// Close releases the store. Unsaved values are discarded.
func (fs *FileStore) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.closed = true
	fs.data = nil
	return nil
}

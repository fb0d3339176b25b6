package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
)

// DefaultName is the fixed identifier of the application store
const DefaultName = ".tiptapri-store"

// Backend names accepted by Open
const (
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendPreferences = "preferences"
	BackendMemory      = "memory"
)

// sqliteExt is appended to the store name for the SQLite database file
const sqliteExt = ".db"

var (
	// ErrClosed is returned by Get, Set and Save after Close
	ErrClosed = errors.New("store: closed")

	// ErrUnknownBackend is returned by Open for an unsupported backend name
	ErrUnknownBackend = errors.New("store: unknown backend")
)

// Store is a durable key-value store.
// Get reports absence with found=false and a nil error. Set only changes
// pending state; Save commits everything set so far.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Save(ctx context.Context) error
	Close() error
}

// Options selects and configures a backend
type Options struct {
	Backend string
	// Dir holds the store file for the file and sqlite backends
	Dir string
	// Name overrides DefaultName
	Name string
	// App provides preferences for the preferences backend
	App fyne.App
}

// Backends returns the accepted backend names in display order
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendPreferences, BackendMemory}
}

// Path returns the on-disk location used by file-based backends, or "" otherwise
func (o Options) Path() string {
	name := o.name()
	switch o.backend() {
	case BackendFile:
		return filepath.Join(o.Dir, name)
	case BackendSQLite:
		return filepath.Join(o.Dir, name+sqliteExt)
	default:
		return ""
	}
}

func (o Options) name() string {
	if o.Name == "" {
		return DefaultName
	}
	return o.Name
}

func (o Options) backend() string {
	if o.Backend == "" {
		return BackendFile
	}
	return o.Backend
}

// Open creates the store selected by opts. The caller owns the store and must Close it.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.backend() {
	case BackendFile:
		if opts.Dir == "" {
			return nil, errors.New("store: directory is required for the file backend")
		}
		return OpenFile(ctx, opts.Path())
	case BackendSQLite:
		if opts.Dir == "" {
			return nil, errors.New("store: directory is required for the sqlite backend")
		}
		return OpenSQLite(ctx, opts.Path())
	case BackendPreferences:
		if opts.App == nil {
			return nil, errors.New("store: app is required for the preferences backend")
		}
		return NewPreferencesStore(opts.App.Preferences(), opts.name()), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// WithStore opens a store, passes it to fn and closes it on every exit path.
// A close failure is joined with the error returned by fn.
func WithStore(ctx context.Context, opts Options, fn func(Store) error) (err error) {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
		}
	}()

	return fn(s)
}

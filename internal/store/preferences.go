package store

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
)

// PreferencesStore maps keys onto Fyne preferences under a name prefix.
// Fyne persists preferences on change, so Save has nothing to flush.
type PreferencesStore struct {
	mu     sync.Mutex
	prefs  fyne.Preferences
	prefix string
	closed bool
}

// NewPreferencesStore wraps prefs; keys are stored as "<name>/<key>"
func NewPreferencesStore(prefs fyne.Preferences, name string) *PreferencesStore {
	return &PreferencesStore{
		prefs:  prefs,
		prefix: name + "/",
	}
}

// Get returns the value for key; an empty preference counts as absent
func (p *PreferencesStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, false, ErrClosed
	}
	value := p.prefs.String(p.prefix + key)
	if value == "" {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set writes value to the preferences
func (p *PreferencesStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	p.prefs.SetString(p.prefix+key, string(value))
	return nil
}

// Save is a no-op beyond the closed check
func (p *PreferencesStore) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	return nil
}

// Close detaches the store from the preferences
func (p *PreferencesStore) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

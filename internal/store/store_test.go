package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Path(t *testing.T) {
	dir := t.TempDir()

	assert.Equal(t, filepath.Join(dir, DefaultName), Options{Dir: dir}.Path())
	assert.Equal(t, filepath.Join(dir, DefaultName+".db"), Options{Backend: BackendSQLite, Dir: dir}.Path())
	assert.Equal(t, filepath.Join(dir, "custom"), Options{Backend: BackendFile, Dir: dir, Name: "custom"}.Path())
	assert.Empty(t, Options{Backend: BackendMemory}.Path())
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		opts     Options
		expected any
	}{
		{"default is file", Options{Dir: t.TempDir()}, &FileStore{}},
		{"file", Options{Backend: BackendFile, Dir: t.TempDir()}, &FileStore{}},
		{"sqlite", Options{Backend: BackendSQLite, Dir: t.TempDir()}, &SQLiteStore{}},
		{"preferences", Options{Backend: BackendPreferences, App: test.NewTempApp(t)}, &PreferencesStore{}},
		{"memory", Options{Backend: BackendMemory}, &MemoryStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.expected, s)
		})
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, Options{Backend: "redis"})
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = Open(ctx, Options{Backend: BackendFile})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: BackendSQLite})
	assert.Error(t, err)

	_, err = Open(ctx, Options{Backend: BackendPreferences})
	assert.Error(t, err)
}

func TestWithStore_ClosesOnError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	var held Store
	err := WithStore(ctx, Options{Backend: BackendMemory}, func(s Store) error {
		held = s
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	_, _, getErr := held.Get(ctx, "k")
	assert.ErrorIs(t, getErr, ErrClosed, "store should be closed after WithStore returns")
}

func TestWithStore_Success(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	err := WithStore(ctx, Options{Dir: dir}, func(s Store) error {
		if err := s.Set(ctx, "k", []byte(`"v"`)); err != nil {
			return err
		}
		return s.Save(ctx)
	})
	require.NoError(t, err)

	err = WithStore(ctx, Options{Dir: dir}, func(s Store) error {
		value, found, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `"v"`, string(value))
		return nil
	})
	require.NoError(t, err)
}

func TestBackends(t *testing.T) {
	assert.Equal(t, []string{BackendFile, BackendSQLite, BackendPreferences, BackendMemory}, Backends())
}

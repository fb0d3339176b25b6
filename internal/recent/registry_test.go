package recent

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tiptapri/tiptapri/internal/model"
	"github.com/tiptapri/tiptapri/internal/store"
)

var (
	fileA = model.FileRecord{FullPath: "/a/1.txt", DirName: "/a", BaseName: "1.txt"}
	fileB = model.FileRecord{FullPath: "/b/2.txt", DirName: "/b", BaseName: "2.txt"}
)

func newTestRegistry(t *testing.T) (*Registry, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return NewRegistry(s, nil), s
}

func TestList_EmptyStore(t *testing.T) {
	reg, _ := newTestRegistry(t)

	files, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestList_StoredNull(t *testing.T) {
	reg, s := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyRecentlyOpenedFileList, []byte(`null`)))

	files, err := reg.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestAdd_TwoFiles(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Add(ctx, fileA)
	require.NoError(t, err)
	returned, err := reg.Add(ctx, fileB)
	require.NoError(t, err)
	assert.Equal(t, []model.FileRecord{fileA, fileB}, returned)

	listed, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.FileRecord{fileA, fileB}, listed)
}

func TestAdd_PreservesCallOrder(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	var expected []model.FileRecord
	for i := 0; i < 20; i++ {
		rec := model.NewFileRecord(fmt.Sprintf("/docs/%02d/note.md", 19-i))
		expected = append(expected, rec)
		_, err := reg.Add(ctx, rec)
		require.NoError(t, err)
	}

	listed, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, listed)
}

func TestAdd_DuplicateIsNoOp(t *testing.T) {
	reg, s := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Add(ctx, fileA)
	require.NoError(t, err)
	_, err = reg.Add(ctx, fileB)
	require.NoError(t, err)
	savesBefore := s.Saves()

	stale := model.FileRecord{FullPath: fileA.FullPath, DirName: "renamed", BaseName: "renamed.txt"}
	returned, err := reg.Add(ctx, stale)
	require.NoError(t, err)

	// no move to the end, no field update, no commit
	assert.Equal(t, []model.FileRecord{fileA, fileB}, returned)
	assert.Equal(t, savesBefore, s.Saves())

	listed, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.FileRecord{fileA, fileB}, listed)
}

func TestAdd_CommitsEachTime(t *testing.T) {
	reg, s := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Add(ctx, fileA)
	require.NoError(t, err)
	_, err = reg.Add(ctx, fileB)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Saves())
}

func TestRemove_ExistingEntry(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Add(ctx, fileA)
	require.NoError(t, err)
	_, err = reg.Add(ctx, fileB)
	require.NoError(t, err)

	returned, err := reg.Remove(ctx, model.FileRecord{FullPath: "/a/1.txt"})
	require.NoError(t, err)
	assert.Equal(t, []model.FileRecord{fileB}, returned)

	listed, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.FileRecord{fileB}, listed)
}

func TestRemove_KeepsRelativeOrder(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	records := []model.FileRecord{
		model.NewFileRecord("/x/1"),
		model.NewFileRecord("/x/2"),
		model.NewFileRecord("/x/3"),
		model.NewFileRecord("/x/4"),
	}
	for _, rec := range records {
		_, err := reg.Add(ctx, rec)
		require.NoError(t, err)
	}

	returned, err := reg.Remove(ctx, records[2])
	require.NoError(t, err)
	assert.Equal(t, []model.FileRecord{records[0], records[1], records[3]}, returned)
}

func TestRemove_MissingEntryStillCommits(t *testing.T) {
	reg, s := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Add(ctx, fileB)
	require.NoError(t, err)
	savesBefore := s.Saves()

	returned, err := reg.Remove(ctx, fileA)
	require.NoError(t, err)
	assert.Equal(t, []model.FileRecord{fileB}, returned)
	assert.Equal(t, savesBefore+1, s.Saves())
}

func TestRemove_EmptyStoreWritesEmptyList(t *testing.T) {
	reg, s := newTestRegistry(t)
	ctx := context.Background()

	returned, err := reg.Remove(ctx, fileA)
	require.NoError(t, err)
	assert.Empty(t, returned)

	raw, found, err := s.Get(ctx, KeyRecentlyOpenedFileList)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestRegistry_PersistedLayout(t *testing.T) {
	reg, s := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Add(ctx, fileA)
	require.NoError(t, err)

	raw, found, err := s.Get(ctx, KeyRecentlyOpenedFileList)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `[{"fullpath":"/a/1.txt","dirname":"/a","basename":"1.txt"}]`, string(raw))
}

func TestRegistry_CorruptValue(t *testing.T) {
	reg, s := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, KeyRecentlyOpenedFileList, []byte(`{"not":"a list"}`)))

	_, err := reg.List(ctx)
	assert.Error(t, err)

	_, err = reg.Add(ctx, fileA)
	assert.Error(t, err)

	_, err = reg.Remove(ctx, fileA)
	assert.Error(t, err)
}

// failingStore returns its configured error from one operation
type failingStore struct {
	store.Store
	getErr, setErr, saveErr error
}

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func (f *failingStore) Save(ctx context.Context) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.Store.Save(ctx)
}

func TestRegistry_PropagatesStoreErrors(t *testing.T) {
	ctx := context.Background()
	ioErr := errors.New("disk on fire")

	tests := []struct {
		name  string
		store *failingStore
	}{
		{"get", &failingStore{getErr: ioErr}},
		{"set", &failingStore{setErr: ioErr}},
		{"save", &failingStore{saveErr: ioErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.store.Store = store.NewMemoryStore()
			reg := NewRegistry(tt.store, nil)

			_, err := reg.Add(ctx, fileA)
			assert.ErrorIs(t, err, ioErr)

			_, err = reg.Remove(ctx, fileA)
			assert.ErrorIs(t, err, ioErr)
		})
	}
}

func TestRegistry_ClosedStore(t *testing.T) {
	s := store.NewMemoryStore()
	reg := NewRegistry(s, nil)
	require.NoError(t, s.Close())

	_, err := reg.List(context.Background())
	assert.ErrorIs(t, err, store.ErrClosed)
}

func TestRegistry_Logs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := store.NewMemoryStore()
	defer s.Close()
	reg := NewRegistry(s, zap.New(core))
	ctx := context.Background()

	_, err := reg.Add(ctx, fileA)
	require.NoError(t, err)
	_, err = reg.Add(ctx, fileA)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("added recent file").Len())
	assert.Equal(t, 1, logs.FilterMessage("file already in recent list").Len())
	for _, entry := range logs.All() {
		assert.Equal(t, "recent", entry.LoggerName)
	}
}

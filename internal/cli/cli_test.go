package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiptapri/tiptapri/internal/model"
	"github.com/tiptapri/tiptapri/internal/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRecentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")

	for _, p := range []string{a, b, a} {
		_, err := run(t, "--store-dir", dir, "recent", "add", p)
		require.NoError(t, err)
	}

	out, err := run(t, "--store-dir", dir, "recent", "list")
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, strings.Fields(out))

	_, err = run(t, "--store-dir", dir, "recent", "remove", a)
	require.NoError(t, err)

	out, err = run(t, "--store-dir", dir, "recent", "list", "--json")
	require.NoError(t, err)

	var files []model.FileRecord
	require.NoError(t, json.Unmarshal([]byte(out), &files))
	require.Len(t, files, 1)
	assert.Equal(t, model.NewFileRecord(b), files[0])

	_, err = os.Stat(filepath.Join(dir, store.DefaultName))
	assert.NoError(t, err, "file backend should write the store file")
}

func TestRecentSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")

	_, err := run(t, "--store-dir", dir, "--store-backend", store.BackendSQLite, "recent", "add", path)
	require.NoError(t, err)

	out, err := run(t, "--store-dir", dir, "--store-backend", store.BackendSQLite, "recent", "list")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestRecentListEmptyJSON(t *testing.T) {
	out, err := run(t, "--ephemeral", "recent", "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestRecentAddResolvesRelativePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "--store-dir", dir, "recent", "add", "rel.txt")
	require.NoError(t, err)

	want, err := filepath.Abs("rel.txt")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)
}

func TestUnknownBackend(t *testing.T) {
	_, err := run(t, "--store-backend", "redis", "recent", "list")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnknownBackend))
}

func TestUnknownLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "bogus", "--ephemeral", "recent", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")

	_, err = run(t, "--log-level", "DEBUG", "--ephemeral", "recent", "list")
	assert.NoError(t, err)
}

func TestEphemeralConflictsWithBackend(t *testing.T) {
	_, err := run(t, "--ephemeral", "--store-backend", store.BackendFile, "recent", "list")
	assert.Error(t, err)
}

func TestRecentAddRequiresPath(t *testing.T) {
	_, err := run(t, "--ephemeral", "recent", "add")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tiptapri test "), out)
}

func TestHeadlessStoreUsesDataDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TIPTAPRI_DATA_DIR", dir)

	opts := &rootOptions{}
	storeOpts, err := opts.headlessStore()
	require.NoError(t, err)
	assert.Equal(t, store.BackendFile, storeOpts.Backend)
	assert.Equal(t, dir, storeOpts.Dir)
}

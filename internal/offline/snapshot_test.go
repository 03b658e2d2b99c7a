package offline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babydbg/internal/structures"
	"babydbg/internal/testutil"
)

func newTestSnapshotManager(t *testing.T, version string, store *testutil.MockStore) *SnapshotManager {
	t.Helper()
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	t.Cleanup(compressor.Close)
	conf := &structures.Config{Offline: structures.OfflineConfig{Version: version}}
	return NewSnapshotManager(conf, store, compressor, &testutil.MockLogger{})
}

func TestSnapshot_SaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline.dat")

	store := testutil.NewMockStore()
	require.NoError(t, store.Set(testVersion+"|/", []byte("shell")))
	require.NoError(t, store.Set(testVersion+"|/api/babies", []byte("listing")))

	require.NoError(t, newTestSnapshotManager(t, testVersion, store).SaveToFile(path))

	restored := testutil.NewMockStore()
	require.NoError(t, newTestSnapshotManager(t, testVersion, restored).LoadFromFile(path))

	assert.Equal(t, 2, restored.EntryCount())
	val, ok := restored.Get(testVersion + "|/")
	require.True(t, ok)
	assert.Equal(t, []byte("shell"), val)
}

func TestSnapshot_VersionMismatchDiscardsWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline.dat")

	store := testutil.NewMockStore()
	require.NoError(t, store.Set("babydbg-v0|/", []byte("old shell")))
	require.NoError(t, newTestSnapshotManager(t, "babydbg-v0", store).SaveToFile(path))

	restored := testutil.NewMockStore()
	require.NoError(t, newTestSnapshotManager(t, testVersion, restored).LoadFromFile(path))

	assert.Equal(t, 0, restored.EntryCount())
}

func TestSnapshot_MissingFileIsNotAnError(t *testing.T) {
	store := testutil.NewMockStore()
	err := newTestSnapshotManager(t, testVersion, store).LoadFromFile(filepath.Join(t.TempDir(), "nope.dat"))
	assert.NoError(t, err)
}

func TestSnapshot_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline.dat")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	store := testutil.NewMockStore()
	err := newTestSnapshotManager(t, testVersion, store).LoadFromFile(path)
	assert.Error(t, err)
}

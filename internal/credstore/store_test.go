// File: internal/credstore/store_test.go
package credstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(t.TempDir(), zap.NewNop())
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	blob := []byte(`{"cookies":[{"name":"sessionid","value":"abc"}]}`)

	require.NoError(t, store.Save("douyin", blob))

	got, err := store.Load("douyin")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load("kuaishou")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "kuaishou")
}

func TestExists(t *testing.T) {
	store := newTestStore(t)

	assert.False(t, store.Exists("tencent"))
	require.NoError(t, store.Save("tencent", []byte("{}")))
	assert.True(t, store.Exists("tencent"))
}

func TestSaveOverwritesAtomically(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save("douyin", []byte("old")))
	require.NoError(t, store.Save("douyin", []byte("new")))

	got, err := store.Load("douyin")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)

	// No temp files may survive a completed save.
	entries, err := os.ReadDir(filepath.Dir(store.Path("douyin")))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "account.json", entries[0].Name())
}

func TestPathLayout(t *testing.T) {
	store := New("/data/cookies", zap.NewNop())
	assert.Equal(t, filepath.Join("/data/cookies", "douyin_uploader", "account.json"), store.Path("douyin"))
}

func TestSaveIntoUnwritableDirReturnsStorageError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	store := New(dir, zap.NewNop())
	err := store.Save("douyin", []byte("{}"))
	require.Error(t, err)

	var serr *StorageError
	assert.True(t, errors.As(err, &serr))
	assert.Equal(t, "save", serr.Op)
}

package prefs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, kv *FileKV) <-chan struct{} {
	t.Helper()
	changed := make(chan struct{}, 16)
	w := NewWatcher(kv, func() { changed <- struct{}{} }, quietLogger())
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	return changed
}

func expectNoChange(t *testing.T, changed <-chan struct{}) {
	t.Helper()
	select {
	case <-changed:
		t.Fatal("unexpected change notification")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_ReportsWritesByOtherProcesses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.json")
	changed := startWatcher(t, NewFileKV(path))

	require.NoError(t, NewFileKV(path).Set(KeyTheme, "light"))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change notification")
	}
	// One rewrite yields one notification even if fsnotify sends several events.
	expectNoChange(t, changed)
}

func TestWatcher_IgnoresOwnWrites(t *testing.T) {
	kv := NewFileKV(filepath.Join(t.TempDir(), "default.json"))
	changed := startWatcher(t, kv)

	require.NoError(t, kv.Set(KeyTheme, "light"))
	require.NoError(t, kv.Set(KeyTheme, "dark"))
	require.NoError(t, kv.Set(KeyFollowSystem, "true"))

	expectNoChange(t, changed)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	changed := startWatcher(t, NewFileKV(filepath.Join(dir, "default.json")))

	require.NoError(t, NewFileKV(filepath.Join(dir, "other.json")).Set(KeyTheme, "light"))

	expectNoChange(t, changed)
}

func TestWatcher_StartFailsOnMissingDirectory(t *testing.T) {
	w := NewWatcher(NewFileKV(filepath.Join(t.TempDir(), "missing", "x.json")), nil, quietLogger())

	require.Error(t, w.Start())
	assert.NoError(t, w.Stop(), "stop after a failed start")
	assert.Error(t, w.Start(), "still nothing to watch")
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(NewFileKV(filepath.Join(t.TempDir(), "x.json")), nil, nil)
	assert.NoError(t, w.Stop(), "stop before start")
	require.NoError(t, w.Start())
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

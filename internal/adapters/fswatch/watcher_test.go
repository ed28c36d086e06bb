package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string) <-chan struct{} {
	t.Helper()

	changed := make(chan struct{}, 8)
	w, err := New(root, func() { changed <- struct{}{} }, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx))
	return changed
}

func waitChange(t *testing.T, changed <-chan struct{}) {
	t.Helper()
	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcher_ReportsNewFile(t *testing.T) {
	root := t.TempDir()
	changed := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "note.md"), []byte("x"), 0644))
	waitChange(t, changed)
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	root := t.TempDir()
	changed := startWatcher(t, root)

	for _, name := range []string{"a.md", "b.md", "c.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0644))
	}
	waitChange(t, changed)

	select {
	case <-changed:
		t.Error("burst produced more than one change")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	root := t.TempDir()
	changed := startWatcher(t, root)

	sub := filepath.Join(root, "Alpha")
	require.NoError(t, os.Mkdir(sub, 0755))
	waitChange(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "one.md"), []byte("x"), 0644))
	waitChange(t, changed)
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "missing"), func() {})
	require.NoError(t, err)

	assert.Error(t, w.Start(context.Background()))
}

func TestIgnored(t *testing.T) {
	w := &Watcher{root: "/vault/Projects"}

	assert.True(t, w.ignored("/vault/Projects/.trash/x.md"))
	assert.False(t, w.ignored("/vault/Projects/Alpha/x.md"))
}

package layouts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherReportsLayoutEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "main_menu.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: g\n"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, target, name)
	case err := <-w.Errors:
		t.Fatalf("watch error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for layout edit")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events
	require.False(t, ok)
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

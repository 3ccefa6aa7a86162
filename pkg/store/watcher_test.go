package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatch_CallsBackOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commands.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	changed := make(chan struct{}, 4)
	w, err := New().Watch(context.Background(), path, 20*time.Millisecond, func() {
		changed <- struct{}{}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`[]`), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"a","script":"b","args":[]}]`), 0644))

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatch_CloseIsIdempotent(t *testing.T) {
	w, err := New().Watch(context.Background(), filepath.Join(t.TempDir(), "c.json"), 0, func() {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

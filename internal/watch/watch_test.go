package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, Options{Debounce: 20 * time.Millisecond}, func(context.Context) error {
			runs.Add(1)
			return errors.New("keep watching")
		})
	}()

	// The watcher registers asynchronously; keep writing until it notices.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(`{"root":0}`), 0o644)
		_ = os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644)
		return runs.Load() > 0
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestFileFailsForMissingDirectory(t *testing.T) {
	err := File(context.Background(), filepath.Join(t.TempDir(), "missing", "index.json"), Options{}, func(context.Context) error {
		return nil
	})
	require.Error(t, err)
}

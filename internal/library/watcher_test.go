package library

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_TriggersOnWrite(t *testing.T) {
	manager, root := newTestManager(t)

	var triggers atomic.Int32
	watcher := NewWatcher(manager, func(ctx context.Context) {
		triggers.Add(1)
	})
	watcher.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx)
	}()

	// Give the watch set time to establish
	time.Sleep(100 * time.Millisecond)

	err := os.WriteFile(filepath.Join(root, "inheritance.md"), []byte("# Inheritance"), 0644)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return triggers.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond, "watcher did not trigger on write")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	manager, root := newTestManager(t)

	var triggers atomic.Int32
	watcher := NewWatcher(manager, func(ctx context.Context) {
		triggers.Add(1)
	})
	watcher.debounce = 150 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Run(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	// A burst of writes inside one debounce window
	for i := 0; i < 5; i++ {
		err := os.WriteFile(filepath.Join(root, "lesson.md"), []byte("# Lesson"), 0644)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return triggers.Load() >= 1
	}, 2*time.Second, 20*time.Millisecond)

	// Settle, then confirm the burst collapsed into one trigger
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), triggers.Load(), "burst should debounce into a single trigger")
}

func TestWatcher_IgnoresNonMarkdown(t *testing.T) {
	manager, root := newTestManager(t)

	var triggers atomic.Int32
	watcher := NewWatcher(manager, func(ctx context.Context) {
		triggers.Add(1)
	})
	watcher.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watcher.Run(ctx)
	}()
	time.Sleep(100 * time.Millisecond)

	err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not a lesson"), 0644)
	require.NoError(t, err)

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), triggers.Load(), "non-markdown writes should not trigger")
}

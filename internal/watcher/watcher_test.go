package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(42), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestNewFileWatcher(t *testing.T) {
	watcher, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	assert.NotNil(t, watcher.watcher)
	assert.NotNil(t, watcher.debouncer)
	assert.NotNil(t, watcher.logger)
	assert.Empty(t, watcher.filters)
	assert.Empty(t, watcher.handlers)
}

func TestStopIsIdempotent(t *testing.T) {
	watcher, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)

	assert.NoError(t, watcher.Stop())
	assert.NoError(t, watcher.Stop())
}

func TestStopEndsGoroutines(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		watcher, err := NewFileWatcher(10*time.Millisecond, nil)
		require.NoError(t, err)
		require.NoError(t, watcher.AddComponent(dir))
		require.NoError(t, watcher.Start(ctx))
		require.NoError(t, watcher.Stop())
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before+2
	}, 2*time.Second, 20*time.Millisecond, "watcher goroutines outlive Stop")
}

func TestStartAfterStop(t *testing.T) {
	watcher, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, watcher.Stop())

	assert.Error(t, watcher.Start(context.Background()))
}

func TestFileWatcherAddPath(t *testing.T) {
	watcher, err := NewFileWatcher(100*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	dir := t.TempDir()
	assert.NoError(t, watcher.AddPath(dir))

	assert.Error(t, watcher.AddPath("/non/existent/path"))
	assert.Error(t, watcher.AddPath(""))

	file := filepath.Join(dir, "file.js")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.Error(t, watcher.AddPath(file), "files are not watched directly")
}

func TestAddComponent(t *testing.T) {
	t.Run("with tests folder", func(t *testing.T) {
		watcher, err := NewFileWatcher(100*time.Millisecond, nil)
		require.NoError(t, err)
		defer watcher.Stop()

		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "__tests__"), 0755))

		require.NoError(t, watcher.AddComponent(dir))
		assert.Equal(t, []string{dir, filepath.Join(dir, "__tests__")}, watcher.WatchedPaths())
	})

	t.Run("without tests folder", func(t *testing.T) {
		watcher, err := NewFileWatcher(100*time.Millisecond, nil)
		require.NoError(t, err)
		defer watcher.Stop()

		dir := t.TempDir()
		require.NoError(t, watcher.AddComponent(dir))
		assert.Equal(t, []string{dir}, watcher.WatchedPaths())
	})
}

type batchCollector struct {
	mu      sync.Mutex
	batches [][]ChangeEvent
}

func (c *batchCollector) handle(events []ChangeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, events)
	return nil
}

func (c *batchCollector) paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, b := range c.batches {
		for _, e := range b {
			out = append(out, e.Path)
		}
	}
	return out
}

func TestFileWatcherDeliversComponentChanges(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewFileWatcher(30*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	watcher.AddFilter(NoHiddenFilter)
	watcher.AddFilter(MemberFilter("card"))

	collector := &batchCollector{}
	watcher.AddHandler(collector.handle)
	require.NoError(t, watcher.AddComponent(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "card.html"), []byte("<template></template>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.js"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".card.js"), []byte("x"), 0644))

	assert.Eventually(t, func() bool {
		return len(collector.paths()) > 0
	}, 2*time.Second, 20*time.Millisecond)

	for _, p := range collector.paths() {
		assert.Equal(t, filepath.Join(dir, "card.html"), p)
	}
}

func TestFileWatcherPicksUpNewTestsFolder(t *testing.T) {
	dir := t.TempDir()

	watcher, err := NewFileWatcher(30*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	collector := &batchCollector{}
	watcher.AddHandler(collector.handle)
	require.NoError(t, watcher.AddComponent(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))

	tests := filepath.Join(dir, "__tests__")
	require.NoError(t, os.Mkdir(tests, 0755))
	assert.Eventually(t, func() bool {
		return len(watcher.WatchedPaths()) == 2
	}, 2*time.Second, 20*time.Millisecond)

	testFile := filepath.Join(tests, "card.test.js")
	require.NoError(t, os.WriteFile(testFile, []byte("x"), 0644))
	assert.Eventually(t, func() bool {
		for _, p := range collector.paths() {
			if p == testFile {
				return true
			}
		}
		return false
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHandlerErrorsDoNotStopDelivery(t *testing.T) {
	watcher, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer watcher.Stop()

	collector := &batchCollector{}
	watcher.AddHandler(func([]ChangeEvent) error { return errors.New("boom") })
	watcher.AddHandler(collector.handle)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))

	watcher.debouncer.events <- ChangeEvent{Path: "a.js", Type: EventTypeModified}

	assert.Eventually(t, func() bool {
		return len(collector.paths()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestDebouncer(t *testing.T) {
	debouncer := &Debouncer{
		delay:   50 * time.Millisecond,
		events:  make(chan ChangeEvent, 100),
		output:  make(chan []ChangeEvent, 10),
		pending: make([]ChangeEvent, 0),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go debouncer.start(ctx)

	debouncer.events <- ChangeEvent{Path: "b.js", Type: EventTypeCreated}
	debouncer.events <- ChangeEvent{Path: "b.js", Type: EventTypeModified}
	debouncer.events <- ChangeEvent{Path: "a.html", Type: EventTypeModified}

	select {
	case batch := <-debouncer.output:
		require.Len(t, batch, 2)
		assert.Equal(t, "a.html", batch[0].Path)
		assert.Equal(t, "b.js", batch[1].Path)
		assert.Equal(t, EventTypeModified, batch[1].Type, "last event per path wins")
	case <-time.After(time.Second):
		t.Fatal("no batch delivered")
	}
}

func TestDebouncerFlushEmpty(t *testing.T) {
	debouncer := &Debouncer{output: make(chan []ChangeEvent, 1)}
	debouncer.flush()
	assert.Empty(t, debouncer.output)
}

func TestMemberFilter(t *testing.T) {
	filter := MemberFilter("card")
	tests := []struct {
		path     string
		expected bool
	}{
		{"/lwc/card/card.js", true},
		{"/lwc/card/card.html", true},
		{"/lwc/card/card.js-meta.xml", true},
		{"/lwc/card/card.txt", true},
		{"/lwc/card/cardHelper.js", false},
		{"/lwc/card/utils.js", false},
		{"/lwc/card/__tests__/card.test.js", true},
		{"/lwc/card/__tests__/myCardTest.js", false},
		{"/lwc/card/__tests__/cardData.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter(tt.path))
		})
	}
}

func TestNoHiddenFilter(t *testing.T) {
	assert.True(t, NoHiddenFilter("/lwc/card/card.js"))
	assert.False(t, NoHiddenFilter("/lwc/card/.card.js"))
	assert.False(t, NoHiddenFilter("/lwc/card/card.js~"))
	assert.False(t, NoHiddenFilter("/lwc/card/card.js.swp"))
}

package app

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nep/internal/engine/buffer"
	"github.com/dshills/nep/internal/project/filestore"
	"github.com/dshills/nep/internal/project/watcher"
	"github.com/dshills/nep/internal/renderer/backend"
)

// gatedStore counts loads and, once gated, holds each Load until released.
type gatedStore struct {
	buffer.Store
	gated   atomic.Bool
	loads   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func newGatedStore(s buffer.Store) *gatedStore {
	return &gatedStore{
		Store:   s,
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (s *gatedStore) Load(path string) ([]byte, error) {
	if s.gated.Load() {
		s.loads.Add(1)
		s.entered <- struct{}{}
		<-s.release
	}
	return s.Store.Load(path)
}

func newWatchedApp(t *testing.T, store buffer.Store) *Application {
	t.Helper()
	a, err := New(Options{Backend: backend.NewNullBackend(40, 10), Path: "/f.txt", Store: store})
	require.NoError(t, err)
	return a
}

func TestFileEventReadsOutsideLock(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/f.txt", []byte("one\n"), 0o644))
	store := newGatedStore(filestore.New(fs))
	a := newWatchedApp(t, store)

	require.NoError(t, afero.WriteFile(fs, "/f.txt", []byte("two\n"), 0o644))
	store.gated.Store(true)

	handled := make(chan struct{})
	go func() {
		defer close(handled)
		a.handleFileEvent("/f.txt", watcher.Event{Path: "/f.txt", Op: watcher.OpWrite})
	}()
	<-store.entered

	// The session stays usable while the file is being read
	snap := make(chan State, 1)
	go func() { snap <- a.Snapshot() }()
	select {
	case s := <-snap:
		assert.Equal(t, []string{"one"}, s.Lines)
	case <-time.After(waitFor):
		t.Fatal("session lock held while reading the file")
	}

	close(store.release)
	<-handled
	assert.Equal(t, "f.txt changed on disk", a.Snapshot().Message)
}

func TestFileEventRemoved(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/f.txt", []byte("one\n"), 0o644))
	store := newGatedStore(filestore.New(fs))
	a := newWatchedApp(t, store)

	require.NoError(t, fs.Remove("/f.txt"))
	store.gated.Store(true)
	close(store.release)

	done := make(chan struct{})
	go func() {
		defer close(done)
		a.handleFileEvent("/f.txt", watcher.Event{Path: "/f.txt", Op: watcher.OpRemove})
	}()
	<-store.entered
	<-done

	assert.Equal(t, "f.txt was removed on disk", a.Snapshot().Message)
	assert.Equal(t, int32(1), store.loads.Load())
}

func TestFileEventUnchanged(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/f.txt", []byte("one\n"), 0o644))
	a := newWatchedApp(t, filestore.New(fs))

	a.handleFileEvent("/f.txt", watcher.Event{Path: "/f.txt", Op: watcher.OpWrite})
	assert.Empty(t, a.Snapshot().Message)
}

func TestFileEventReplacedByRename(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/f.txt", []byte("one\n"), 0o644))
	a := newWatchedApp(t, filestore.New(fs))

	// Editors that save through a rename leave a new file in place
	require.NoError(t, afero.WriteFile(fs, "/f.txt", []byte("three\n"), 0o644))
	a.handleFileEvent("/f.txt", watcher.Event{Path: "/f.txt", Op: watcher.OpRename})
	assert.Equal(t, "f.txt changed on disk", a.Snapshot().Message)
}

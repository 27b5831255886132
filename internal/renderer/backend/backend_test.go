package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/nep/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	require.NoError(t, b.Init())

	w, h := b.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	require.NoError(t, b.Init())

	cell := core.NewStyledCell('X', core.DefaultStyle().Reverse())
	b.SetCell(10, 5, cell)
	assert.Equal(t, cell, b.GetCell(10, 5))

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)
	assert.Equal(t, core.EmptyCell(), b.GetCell(-1, 0))
}

func TestNullBackendRows(t *testing.T) {
	b := NewNullBackend(5, 2)
	require.NoError(t, b.Init())

	for i, r := range "ab" {
		b.SetCell(i+1, 1, core.NewStyledCell(r, core.DefaultStyle()))
	}
	assert.Equal(t, []string{"", " ab"}, b.Rows())

	b.Clear()
	assert.Equal(t, []string{"", ""}, b.Rows())
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	require.NoError(t, b.Init())

	b.ShowCursor(3, 4)
	x, y, visible := b.CursorPosition()
	assert.Equal(t, 3, x)
	assert.Equal(t, 4, y)
	assert.True(t, visible)

	b.HideCursor()
	_, _, visible = b.CursorPosition()
	assert.False(t, visible)
}

func TestNullBackendFlushes(t *testing.T) {
	b := NewNullBackend(10, 10)
	require.NoError(t, b.Init())

	b.Show()
	b.Show()
	b.Sync()
	shows, syncs := b.Flushes()
	assert.Equal(t, 2, shows)
	assert.Equal(t, 1, syncs)
}

func TestNullBackendEvents(t *testing.T) {
	b := NewNullBackend(80, 24)
	require.NoError(t, b.Init())

	b.PostEvent(RuneEvent('q'))
	ev := b.PollEvent()
	assert.Equal(t, EventKey, ev.Type)
	assert.Equal(t, KeyRune, ev.Key)
	assert.Equal(t, 'q', ev.Rune)
}

func TestNullBackendShutdownUnblocksPoll(t *testing.T) {
	b := NewNullBackend(80, 24)
	require.NoError(t, b.Init())

	got := make(chan Event)
	go func() { got <- b.PollEvent() }()

	b.Shutdown()
	b.Shutdown()

	select {
	case ev := <-got:
		assert.Equal(t, EventClosed, ev.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("PollEvent did not return after Shutdown")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	require.NoError(t, b.Init())

	b.Resize(100, 40)
	w, h := b.Size()
	assert.Equal(t, 100, w)
	assert.Equal(t, 40, h)
	assert.Len(t, b.Rows(), 40)
}

func TestModMask(t *testing.T) {
	m := ModCtrl | ModAlt
	assert.True(t, m.Has(ModCtrl))
	assert.True(t, m.Has(ModAlt))
	assert.False(t, m.Has(ModShift))
}

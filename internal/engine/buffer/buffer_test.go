package buffer

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a map-backed Store for tests.
type memStore struct {
	files   map[string][]byte
	saveErr error
	loadErr error
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string][]byte)}
}

func (s *memStore) Load(path string) ([]byte, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	data, ok := s.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return data, nil
}

func (s *memStore) Save(path string, data []byte) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

func lines(b *Buffer) []string {
	out := make([]string, b.LineCount())
	for i := range out {
		out[i] = b.Line(i).String()
	}
	return out
}

func TestNew(t *testing.T) {
	b := New()
	assert.Equal(t, 1, b.LineCount())
	assert.Equal(t, 0, b.LineLen(0))
	assert.False(t, b.Dirty())
	assert.Equal(t, NoName, b.Name())
	assert.Equal(t, "", b.Path())
}

func TestNewFromString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{""}},
		{"single", "abc", []string{"abc"}},
		{"trailing newline", "abc\n", []string{"abc"}},
		{"blank last line", "abc\n\n", []string{"abc", ""}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"only newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.input)
			assert.Equal(t, tt.expected, lines(b))
			assert.False(t, b.Dirty())
		})
	}
}

func TestSplitLine(t *testing.T) {
	b := NewFromString("ab")
	b.SplitLine(0, 1)

	assert.Equal(t, []string{"a", "b"}, lines(b))
	assert.True(t, b.Dirty())
}

func TestSplitLineEdges(t *testing.T) {
	b := NewFromString("ab\ncd")
	b.SplitLine(0, 0)
	assert.Equal(t, []string{"", "ab", "cd"}, lines(b))

	b.SplitLine(2, 2)
	assert.Equal(t, []string{"", "ab", "cd", ""}, lines(b))
}

func TestSplitLineDoesNotAlias(t *testing.T) {
	b := NewFromString("abcd")
	b.SplitLine(0, 2)
	b.InsertChar(0, 2, 'X')

	assert.Equal(t, []string{"abX", "cd"}, lines(b))
}

func TestMergeLine(t *testing.T) {
	b := NewFromString("ab\ncd\nef")

	join := b.MergeLine(1)
	assert.Equal(t, 2, join)
	assert.Equal(t, []string{"abcd", "ef"}, lines(b))
	assert.True(t, b.Dirty())
}

func TestMergeLineFirstIsNoop(t *testing.T) {
	b := NewFromString("ab\ncd")

	join := b.MergeLine(0)
	assert.Equal(t, 0, join)
	assert.Equal(t, []string{"ab", "cd"}, lines(b))
}

func TestSplitMergeRoundTrip(t *testing.T) {
	const text = "hello, world"
	for c := 0; c <= len([]rune(text)); c++ {
		b := NewFromString("before\n" + text + "\nafter")
		b.SplitLine(1, c)
		require.Equal(t, 4, b.LineCount())

		join := b.MergeLine(2)
		assert.Equal(t, c, join)
		assert.Equal(t, []string{"before", text, "after"}, lines(b), "column %d", c)
	}
}

func TestInsertDeleteInverse(t *testing.T) {
	const original = "hello"
	s := []rune("héllo wörld")

	for c := 0; c <= len(original); c++ {
		b := NewFromString(original)
		for i, r := range s {
			b.InsertChar(0, c+i, r)
		}
		for range s {
			b.DeleteChar(0, c)
		}
		assert.Equal(t, []string{original}, lines(b), "column %d", c)
	}
}

func TestInsertCharUnicode(t *testing.T) {
	b := New()
	for i, r := range []rune("日本語") {
		b.InsertChar(0, i, r)
	}
	assert.Equal(t, 3, b.LineLen(0))
	assert.Equal(t, "日本語", b.Line(0).String())
}

func TestDeleteCharOutOfRangePanics(t *testing.T) {
	b := NewFromString("ab")
	assert.Panics(t, func() { b.DeleteChar(0, 2) })
}

func TestLineReturnsCopy(t *testing.T) {
	b := NewFromString("ab")
	l := b.Line(0)
	l[0] = 'z'
	assert.Equal(t, "ab", b.Line(0).String())
}

func TestEditLineMarksDirty(t *testing.T) {
	b := NewFromString("ab")
	b.EditLine(0, func(l *Line) { *l = append(*l, 'c') })

	assert.Equal(t, "abc", b.Line(0).String())
	assert.True(t, b.Dirty())
}

func TestLineCountNeverZero(t *testing.T) {
	b := NewFromString("a\nb\nc")
	for b.LineCount() > 1 {
		b.MergeLine(b.LineCount() - 1)
	}
	b.MergeLine(0)
	for b.LineLen(0) > 0 {
		b.DeleteChar(0, 0)
	}
	assert.Equal(t, 1, b.LineCount())
}

func TestLoad(t *testing.T) {
	store := newMemStore()
	store.files["/tmp/notes.txt"] = []byte("one\ntwo\n")

	b, err := Load(store, "/tmp/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, lines(b))
	assert.Equal(t, "notes.txt", b.Name())
	assert.False(t, b.Dirty())
}

func TestLoadMissingFile(t *testing.T) {
	b, err := Load(newMemStore(), "/tmp/new.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{""}, lines(b))
	assert.Equal(t, "/tmp/new.txt", b.Path())
}

func TestLoadError(t *testing.T) {
	store := newMemStore()
	store.loadErr = errors.New("permission denied")

	_, err := Load(store, "/tmp/x")
	require.Error(t, err)
	assert.ErrorIs(t, err, store.loadErr)
}

func TestLoadInvalidEncoding(t *testing.T) {
	store := newMemStore()
	store.files["/tmp/latin1.txt"] = []byte("caf\xe9\n")

	_, err := Load(store, "/tmp/latin1.txt")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Equal(t, []byte("caf\xe9\n"), store.files["/tmp/latin1.txt"])
}

func TestLoadNilStore(t *testing.T) {
	_, err := Load(nil, "/tmp/x")
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestPersist(t *testing.T) {
	store := newMemStore()
	store.files["/f"] = []byte("a long original line\n")

	b, err := Load(store, "/f")
	require.NoError(t, err)
	b.EditLine(0, func(l *Line) { *l = Line("ab") })
	b.SplitLine(0, 1)
	require.True(t, b.Dirty())

	require.NoError(t, b.Persist())
	assert.Equal(t, "a\nb\n", string(store.files["/f"]))
	assert.False(t, b.Dirty())

	reloaded, err := Load(store, "/f")
	require.NoError(t, err)
	assert.Equal(t, lines(b), lines(reloaded))
}

func TestPersistFailureKeepsDirty(t *testing.T) {
	store := newMemStore()
	b, err := Load(store, "/f")
	require.NoError(t, err)
	b.InsertChar(0, 0, 'x')

	store.saveErr = errors.New("disk full")
	err = b.Persist()
	assert.ErrorIs(t, err, store.saveErr)
	assert.True(t, b.Dirty())
	assert.Equal(t, []string{"x"}, lines(b))
}

func TestPersistInMemoryIsNoop(t *testing.T) {
	b := New()
	b.InsertChar(0, 0, 'x')

	require.NoError(t, b.Persist())
	assert.True(t, b.Dirty())
}

func TestPersistWithPathNoStore(t *testing.T) {
	b := New(WithPath(nil, "/f"))
	assert.ErrorIs(t, b.Persist(), ErrNoStore)
}

package buffer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// NoName is the display name of a buffer without a backing path.
const NoName = "[no name]"

// Errors returned by buffer operations.
var (
	// ErrNoStore indicates a buffer was bound to a path without a store.
	ErrNoStore = errors.New("no backing store")

	// ErrInvalidEncoding indicates the loaded content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")
)

// Store is the persistence collaborator a buffer reads from and writes to.
type Store interface {
	// Load returns the full content stored at path.
	Load(path string) ([]byte, error)

	// Save replaces the content stored at path with data, truncating it
	// to len(data).
	Save(path string, data []byte) error
}

// Line is one row of stored text.
type Line []rune

// Len returns the number of characters in the line.
func (l Line) Len() int {
	return len(l)
}

// String returns the line as a string.
func (l Line) String() string {
	return string(l)
}

// Buffer is an ordered, never empty sequence of lines.
type Buffer struct {
	lines []Line
	path  string
	store Store
	dirty bool
}

// New creates an empty, unnamed, in-memory buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		lines: []Line{{}},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewFromString creates an in-memory buffer holding s.
// The result is not dirty.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.lines = splitLines(s)
	return b
}

// Load creates a buffer bound to path, reading its content through store.
// A path that does not exist yet yields a single empty line; the first
// Persist creates it.
func Load(store Store, path string, opts ...Option) (*Buffer, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	b := New(opts...)
	b.path = path
	b.store = store

	data, err := store.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return b, nil
		}
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("loading %s: %w", path, ErrInvalidEncoding)
	}

	b.lines = splitLines(string(data))
	return b, nil
}

// splitLines splits text on line boundaries. A final newline terminates
// the last line rather than starting a new one.
func splitLines(s string) []Line {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")

	parts := strings.Split(s, "\n")
	lines := make([]Line, len(parts))
	for i, p := range parts {
		lines[i] = Line(p)
	}
	return lines
}

// Read Operations

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns a copy of line i.
func (b *Buffer) Line(i int) Line {
	out := make(Line, len(b.lines[i]))
	copy(out, b.lines[i])
	return out
}

// LineLen returns the number of characters on line i.
func (b *Buffer) LineLen(i int) int {
	return len(b.lines[i])
}

// Text returns the full content, one newline after every line.
func (b *Buffer) Text() string {
	var sb strings.Builder
	for _, l := range b.lines {
		sb.WriteString(string(l))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Name returns the display name: the base name of the backing path, or
// NoName for an in-memory buffer.
func (b *Buffer) Name() string {
	if b.path == "" {
		return NoName
	}
	return filepath.Base(b.path)
}

// Path returns the backing path, or "" for an in-memory buffer.
func (b *Buffer) Path() string {
	return b.path
}

// Dirty reports whether the buffer changed since it was loaded or last
// persisted.
func (b *Buffer) Dirty() bool {
	return b.dirty
}

// Write Operations

// SplitLine moves the characters [column, end) of line into a new line
// inserted right after it. column must be within [0, LineLen(line)].
func (b *Buffer) SplitLine(line, column int) {
	cur := b.lines[line]
	tail := make(Line, len(cur)-column)
	copy(tail, cur[column:])
	b.lines[line] = cur[:column:column]

	b.lines = append(b.lines, nil)
	copy(b.lines[line+2:], b.lines[line+1:])
	b.lines[line+1] = tail
	b.dirty = true
}

// MergeLine appends line to the line above it and removes it. It returns
// the length the line above had before the merge, which is where the two
// lines now join. Merging line 0 does nothing and returns 0.
func (b *Buffer) MergeLine(line int) int {
	if line <= 0 {
		return 0
	}

	join := len(b.lines[line-1])
	b.lines[line-1] = append(b.lines[line-1], b.lines[line]...)
	b.lines = append(b.lines[:line], b.lines[line+1:]...)
	b.dirty = true
	return join
}

// InsertChar inserts ch before position column of line.
func (b *Buffer) InsertChar(line, column int, ch rune) {
	cur := b.lines[line]
	cur = append(cur, 0)
	copy(cur[column+1:], cur[column:])
	cur[column] = ch
	b.lines[line] = cur
	b.dirty = true
}

// DeleteChar removes the character at position column of line.
// column must be a valid character index.
func (b *Buffer) DeleteChar(line, column int) {
	cur := b.lines[line]
	b.lines[line] = append(cur[:column], cur[column+1:]...)
	b.dirty = true
}

// EditLine calls fn with line i for in-place modification and marks the
// buffer dirty.
func (b *Buffer) EditLine(i int, fn func(l *Line)) {
	fn(&b.lines[i])
	b.dirty = true
}

// Persist writes the buffer to its backing store and clears the dirty
// flag. It does nothing for an in-memory buffer. On failure the content
// and the dirty flag are left untouched.
func (b *Buffer) Persist() error {
	if b.path == "" {
		return nil
	}
	if b.store == nil {
		return ErrNoStore
	}

	if err := b.store.Save(b.path, []byte(b.Text())); err != nil {
		return err
	}

	b.dirty = false
	return nil
}

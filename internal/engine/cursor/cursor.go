package cursor

import (
	"fmt"

	"github.com/dshills/nep/internal/engine/buffer"
)

// Cursor is an insertion point in a buffer.
type Cursor struct {
	buf    *buffer.Buffer
	line   int
	column int
}

// New creates a cursor at the start of buf.
func New(buf *buffer.Buffer) *Cursor {
	return &Cursor{buf: buf}
}

// NewAt creates a cursor with the given raw position.
func NewAt(buf *buffer.Buffer, line, column int) *Cursor {
	c := &Cursor{buf: buf}
	c.MoveTo(line, column)
	return c
}

// Line returns the clamped line index.
func (c *Cursor) Line() int {
	return min(c.line, c.buf.LineCount()-1)
}

// Column returns the column clamped to the length of the current line.
func (c *Cursor) Column() int {
	return min(c.column, c.buf.LineLen(c.Line()))
}

// Position returns the clamped line and column.
func (c *Cursor) Position() (line, column int) {
	return c.Line(), c.Column()
}

// MoveTo sets the raw position. Negative values are floored at 0.
func (c *Cursor) MoveTo(line, column int) {
	c.line = max(line, 0)
	c.column = max(column, 0)
}

// Left moves one character left, stopping at column 0.
func (c *Cursor) Left() {
	c.column = max(c.Column()-1, 0)
}

// Right moves one character right, stopping at the end of the line.
func (c *Cursor) Right() {
	c.column = c.Column() + 1
	c.column = c.Column()
}

// Up moves to the previous line, keeping the raw column.
func (c *Cursor) Up() {
	c.line = max(c.Line()-1, 0)
}

// Down moves to the next line, keeping the raw column.
func (c *Cursor) Down() {
	c.line = c.Line() + 1
	c.line = c.Line()
}

// JumpNext moves to the start of the next line.
func (c *Cursor) JumpNext() {
	c.Down()
	c.column = 0
}

// JumpPrev moves to the previous line at joinColumn, clamped to its length.
func (c *Cursor) JumpPrev(joinColumn int) {
	c.Up()
	c.column = max(joinColumn, 0)
	c.column = c.Column()
}

// String returns a string representation of the cursor.
func (c *Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d)", c.Line(), c.Column())
}

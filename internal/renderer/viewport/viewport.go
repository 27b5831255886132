// Package viewport provides viewport management for the renderer.
//
// The viewport is the terminal area the editor draws into: its size in
// cells, the index of the topmost visible buffer line (the scroll offset)
// and a flag asking the next frame to repaint the whole terminal. The
// bottom row is reserved for the status line, so Height-1 rows show
// buffer content.
package viewport

import "github.com/dshills/nep/internal/renderer/gutter"

// Viewport represents the visible portion of the buffer.
// It is not safe for concurrent use; the editor session guards it.
type Viewport struct {
	width  int
	height int

	// First visible line
	offset int

	// Set after a resize; the next frame repaints everything
	needsSync bool
}

// New creates a viewport of the given size scrolled to the top.
// A new viewport needs a full repaint.
func New(width, height int) *Viewport {
	return &Viewport{
		width:     max(width, 0),
		height:    max(height, 0),
		needsSync: true,
	}
}

// Size returns the viewport size in cells.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	return v.height
}

// Resize updates the size. It reports whether the size changed, in which
// case a full repaint is requested.
func (v *Viewport) Resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	if width == v.width && height == v.height {
		return false
	}
	v.width = width
	v.height = height
	v.needsSync = true
	return true
}

// Offset returns the first visible line.
func (v *Viewport) Offset() int {
	return v.offset
}

// SetOffset sets the first visible line.
func (v *Viewport) SetOffset(offset int) {
	v.offset = max(offset, 0)
}

// NeedsSync reports whether the next frame must repaint everything.
func (v *Viewport) NeedsSync() bool {
	return v.needsSync
}

// RequestSync asks the next frame to repaint everything.
func (v *Viewport) RequestSync() {
	v.needsSync = true
}

// TakeSync returns the repaint flag and clears it.
func (v *Viewport) TakeSync() bool {
	s := v.needsSync
	v.needsSync = false
	return s
}

// ContentRows returns the number of rows available to buffer text.
func (v *Viewport) ContentRows() int {
	return max(v.height-1, 0)
}

// ScrollTo adjusts the offset so line is visible and reports whether the
// offset changed. A line at or above the top becomes the top line; a line
// past the last content row becomes the last content row.
func (v *Viewport) ScrollTo(line int) bool {
	old := v.offset
	span := max(v.height-2, 0)

	if line <= v.offset {
		v.offset = line
	} else if line > v.offset+span {
		v.offset = line - span
	}
	return v.offset != old
}

// TextWidth returns the number of text cells per row for a buffer of
// lineCount lines. It is never less than 1.
func (v *Viewport) TextWidth(lineCount int) int {
	return max(v.width-gutter.Width(lineCount), 1)
}

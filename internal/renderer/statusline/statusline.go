// Package statusline provides the status line shown on the bottom row.
package statusline

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/nep/internal/renderer/backend"
	"github.com/dshills/nep/internal/renderer/core"
)

// DefaultTag is the program tag drawn at the right edge.
const DefaultTag = "nep"

const ellipsis = "…"

// StatusLine renders the bottom status row: the buffer name with a dirty
// marker, an optional message and the program tag.
type StatusLine struct {
	name     string // Buffer display name
	modified bool   // Buffer has unsaved changes
	message  string // Transient message
	tag      string // Right-aligned program tag

	width int
}

// New creates a new status line with the default tag.
func New() *StatusLine {
	return &StatusLine{tag: DefaultTag}
}

// SetName updates the displayed buffer name.
func (s *StatusLine) SetName(name string) {
	s.name = name
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetTag replaces the program tag.
func (s *StatusLine) SetTag(tag string) {
	s.tag = tag
}

// SetMessage displays a status message.
func (s *StatusLine) SetMessage(msg string) {
	s.message = msg
}

// ClearMessage clears the status message and reports whether one was shown.
func (s *StatusLine) ClearMessage() bool {
	had := s.message != ""
	s.message = ""
	return had
}

// Message returns the current status message.
func (s *StatusLine) Message() string {
	return s.message
}

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) {
	s.width = max(width, 0)
}

// Label returns the name block text, e.g. " main.go [+] ".
func (s *StatusLine) Label() string {
	label := " " + s.name
	if s.modified {
		label += " [+]"
	}
	return label + " "
}

// Render draws the status line to the backend at the given row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.width <= 0 {
		return
	}
	plain := core.DefaultStyle()
	for x := 0; x < s.width; x++ {
		b.SetCell(x, row, core.NewStyledCell(' ', plain))
	}

	// Tag sits one cell in from the right edge
	tagStart := s.width
	if s.tag != "" {
		tagStart = s.width - runewidth.StringWidth(s.tag) - 1
		if tagStart < 0 {
			tagStart = s.width
		}
	}

	col := 0
	label := runewidth.Truncate(s.Label(), tagStart, ellipsis)
	col = putString(b, col, row, label, plain.Reverse())

	if s.message != "" && col+1 < tagStart {
		col++
		msg := runewidth.Truncate(s.message, tagStart-col-1, ellipsis)
		putString(b, col, row, msg, plain)
	}

	if tagStart < s.width {
		putString(b, tagStart, row, s.tag, plain)
	}
}

// putString draws str from column x and returns the column after it.
func putString(b backend.Backend, x, y int, str string, style core.Style) int {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		b.SetCell(x, y, core.NewStyledCell(r, style))
		x += w
	}
	return x
}

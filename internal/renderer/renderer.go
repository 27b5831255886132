package renderer

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dshills/nep/internal/engine/buffer"
	"github.com/dshills/nep/internal/renderer/backend"
	"github.com/dshills/nep/internal/renderer/core"
	"github.com/dshills/nep/internal/renderer/gutter"
	"github.com/dshills/nep/internal/renderer/statusline"
	"github.com/dshills/nep/internal/renderer/viewport"
)

// BufferReader provides read access to buffer content.
type BufferReader interface {
	// LineCount returns the total number of lines in the buffer.
	LineCount() int

	// Line returns a copy of the line (0-indexed).
	Line(i int) buffer.Line

	// LineLen returns the length of the line in characters.
	LineLen(i int) int
}

// Options configures the renderer.
type Options struct {
	FillerRune  rune       // Drawn on rows past the end of the buffer
	GutterStyle core.Style // Style of line numbers
	TextStyle   core.Style // Style of buffer text
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		FillerRune:  '~',
		GutterStyle: core.DefaultStyle(),
		TextStyle:   core.DefaultStyle(),
	}
}

// Renderer draws frames and places the terminal cursor.
type Renderer struct {
	opts    Options
	backend backend.Backend
	status  *statusline.StatusLine
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) *Renderer {
	if opts.FillerRune == 0 {
		opts.FillerRune = '~'
	}
	return &Renderer{
		opts:    opts,
		backend: b,
		status:  statusline.New(),
	}
}

// StatusLine returns the status line drawn on the bottom row.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// DrawFrame paints a full frame: gutter and text from the viewport offset,
// filler rows, then the status row. The frame is flushed with Sync when the
// viewport asks for a full repaint and with Show otherwise.
func (r *Renderer) DrawFrame(buf BufferReader, vp *viewport.Viewport) {
	b := r.backend
	b.HideCursor()
	b.Clear()

	width, height := vp.Size()
	rows := vp.ContentRows()
	count := buf.LineCount()
	textWidth := vp.TextWidth(count)
	gutterWidth := gutter.Width(count)

	y := 0
	for i := vp.Offset(); i < count && y < rows; i++ {
		line := buf.Line(i)
		// A line takes len/textWidth+1 rows so a cursor at its end has a cell
		for start := 0; start <= len(line) && y < rows; start += textWidth {
			if start == 0 {
				r.putString(0, y, gutter.Format(i, count), r.opts.GutterStyle)
			} else {
				r.putString(0, y, gutter.Blank(count), r.opts.GutterStyle)
			}
			end := min(start+textWidth, len(line))
			for x, ch := range line[start:end] {
				b.SetCell(gutterWidth+x, y, core.NewStyledCell(ch, r.opts.TextStyle))
			}
			y++
		}
	}

	for ; y < rows; y++ {
		b.SetCell(0, y, core.NewStyledCell(r.opts.FillerRune, core.DefaultStyle()))
	}

	if height > 0 {
		r.status.Resize(width)
		r.status.Render(b, height-1)
	}

	if vp.TakeSync() {
		b.Sync()
	} else {
		b.Show()
	}
}

// CursorPosition returns the screen cell of buffer position (line, column)
// for the current viewport offset. Rows taken by wrapped lines between the
// offset and line push the cursor down. The row is kept inside the
// content area.
func CursorPosition(buf BufferReader, vp *viewport.Viewport, line, column int) (x, y int) {
	count := buf.LineCount()
	textWidth := vp.TextWidth(count)

	y = line - vp.Offset()
	for i := vp.Offset(); i < line && i < count; i++ {
		y += buf.LineLen(i) / textWidth
	}
	y += column / textWidth
	x = gutter.Width(count) + column%textWidth

	if rows := vp.ContentRows(); y >= rows {
		y = max(rows-1, 0)
	}
	return x, max(y, 0)
}

// PlaceCursor moves the terminal cursor to buffer position (line, column)
// and flushes.
func (r *Renderer) PlaceCursor(buf BufferReader, vp *viewport.Viewport, line, column int) {
	x, y := CursorPosition(buf, vp, line, column)
	r.backend.ShowCursor(x, y)
	r.backend.Show()
}

// DrawSplash clears the screen and paints text centred on it. It reports
// false and draws nothing when the terminal is too small for the banner.
func (r *Renderer) DrawSplash(text string, width, height int) bool {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	widest := 0
	for _, l := range lines {
		widest = max(widest, runewidth.StringWidth(l))
	}
	if width < widest+6 || height < len(lines)+8 {
		return false
	}

	b := r.backend
	b.HideCursor()
	b.Clear()
	top := (height - len(lines)) / 2
	for i, l := range lines {
		left := (width - runewidth.StringWidth(l)) / 2
		r.putString(left, top+i, l, core.DefaultStyle())
	}
	b.Sync()
	return true
}

func (r *Renderer) putString(x, y int, s string, style core.Style) {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		r.backend.SetCell(x, y, core.NewStyledCell(ch, style))
		x += w
	}
}

// Package renderer provides the display layer for the nep editor.
//
// The renderer turns buffer content into terminal cells:
//   - a right-justified line-number gutter
//   - soft wrapping of lines wider than the text area
//   - `~` filler rows below the end of the buffer
//   - the status row on the bottom line
//   - terminal cursor placement that accounts for wrapped lines
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  Viewport │ Gutter │ StatusLine         │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// The renderer holds no lock of its own. Callers serialize access to the
// buffer, the viewport and the backend.
//
// Usage:
//
//	term := backend.NewTerminal()
//	r := renderer.New(term, renderer.DefaultOptions())
//	r.DrawFrame(buf, vp)
//	r.PlaceCursor(buf, vp, line, column)
package renderer

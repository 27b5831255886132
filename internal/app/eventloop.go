package app

import (
	"unicode"

	"github.com/dshills/nep/internal/renderer/backend"
)

// inputLoop reads backend events until the exit key and then stops the
// workers. It is the only writer of buffer content.
func (app *Application) inputLoop() {
	for {
		ev := app.backend.PollEvent()
		if app.handleBackendEvent(ev) {
			break
		}
	}
	app.logger.Debug("exit requested")
	app.exit()
}

// handleBackendEvent processes a backend event and reports whether the
// session should end.
func (app *Application) handleBackendEvent(ev backend.Event) bool {
	switch ev.Type {
	case backend.EventClosed:
		return true
	case backend.EventResize:
		app.triggerResize()
		return false
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	default:
		return false
	}
}

// handleKeyEvent applies one key. Edit keys raise both signals, motion keys
// only the cursor signal.
func (app *Application) handleKeyEvent(ev backend.Event) bool {
	if ev.Key == backend.KeyEscape {
		return true
	}

	app.mu.Lock()
	if app.splashed {
		app.splashed = false
		app.vp.RequestSync()
		app.drawSig.Raise()
		app.cursorSig.Raise()
	}
	draw, move := app.applyKey(ev)
	app.mu.Unlock()

	if move {
		app.cursorSig.Raise()
	}
	if draw {
		app.drawSig.Raise()
	}
	return false
}

// applyKey changes editor state for ev and reports which signals to raise.
// The caller holds mu.
func (app *Application) applyKey(ev backend.Event) (draw, move bool) {
	switch ev.Key {
	case backend.KeyRune:
		if ev.Mod.Has(backend.ModAlt) || !unicode.IsPrint(ev.Rune) {
			return false, false
		}
		app.beginEdit()
		app.insert(ev.Rune)
		return true, true

	case backend.KeyTab:
		app.beginEdit()
		for range app.opts.TabWidth {
			app.insert(' ')
		}
		return true, true

	case backend.KeyEnter:
		app.beginEdit()
		line, column := app.cur.Position()
		app.buf.SplitLine(line, column)
		app.cur.JumpNext()
		return true, true

	case backend.KeyBackspace:
		app.beginEdit()
		app.backspace()
		return true, true

	case backend.KeyUp:
		app.cur.Up()
		return false, true
	case backend.KeyDown:
		app.cur.Down()
		return false, true
	case backend.KeyLeft:
		app.cur.Left()
		return false, true
	case backend.KeyRight:
		app.cur.Right()
		return false, true

	case backend.KeyCtrlS:
		app.save()
		return true, false

	default:
		return false, false
	}
}

// beginEdit clears a status message left from an earlier event.
func (app *Application) beginEdit() {
	app.rend.StatusLine().ClearMessage()
}

func (app *Application) insert(ch rune) {
	line, column := app.cur.Position()
	app.buf.InsertChar(line, column, ch)
	app.cur.Right()
}

// backspace deletes the character before the cursor, or joins the line
// onto the previous one at column 0.
func (app *Application) backspace() {
	line, column := app.cur.Position()
	if column == 0 {
		join := app.buf.MergeLine(line)
		app.cur.JumpPrev(join)
		return
	}

	app.buf.DeleteChar(line, column-1)
	// At the old end of line the clamp already moved the cursor back
	if column <= app.buf.LineLen(line) {
		app.cur.Left()
	}
}

// save writes the buffer. A failure is reported in the status line and
// leaves the buffer dirty.
func (app *Application) save() {
	log := app.logger.WithComponent("save")
	if app.buf.Path() == "" {
		app.statusf("no file name")
		return
	}

	if err := app.buf.Persist(); err != nil {
		oerr := NewOperationError("save", app.buf.Path(), err)
		log.Error("%v", oerr)
		app.statusf("save failed: %v", err)
		return
	}
	log.Info("saved %s (%d lines)", app.buf.Path(), app.buf.LineCount())
	app.statusf("saved %s", app.buf.Name())
}

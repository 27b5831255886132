package app

import (
	"fmt"
	"runtime/debug"
	"time"
)

// goWorker runs fn on its own goroutine. A panic is recovered, recorded as
// the session error and ends the session.
func (app *Application) goWorker(name string, fn func()) {
	app.workers.Add(1)
	go func() {
		defer app.workers.Done()
		defer app.recoverWorker(name)

		log := app.logger.WithComponent(name)
		log.Debug("worker started")
		fn()
		log.Debug("worker stopped")
	}()
}

func (app *Application) recoverWorker(name string) {
	r := recover()
	if r == nil {
		return
	}
	perr := NewRecoveredPanicError(r, string(debug.Stack()))
	app.logger.WithComponent(name).Error("worker panic: %v", r)
	app.setWorkerError(NewComponentError(name, "run", perr))
	app.requestExit()
}

// resizeLoop samples the terminal size every ResizeInterval, or at once
// when the input loop sees a resize event.
func (app *Application) resizeLoop() {
	ticker := time.NewTicker(app.opts.ResizeInterval)
	defer ticker.Stop()

	for {
		if app.stop.Load() {
			return
		}
		select {
		case <-app.resizeDone:
			return
		case <-ticker.C:
		case <-app.resizeNow:
		}
		if app.stop.Load() {
			return
		}
		app.sampleSize()
	}
}

// sampleSize updates the viewport from the backend size. A change forces
// a full repaint.
func (app *Application) sampleSize() {
	w, h := app.backend.Size()

	app.mu.Lock()
	changed := app.vp.Resize(w, h)
	if changed && app.splashed {
		app.splashed = false
	}
	app.mu.Unlock()

	if changed {
		app.logger.WithComponent("resize").Debug("terminal resized to %dx%d", w, h)
		app.cursorSig.Raise()
		app.drawSig.Raise()
	}
}

// triggerResize asks the resize worker for an immediate sample.
func (app *Application) triggerResize() {
	select {
	case app.resizeNow <- struct{}{}:
	default:
	}
}

// drawLoop repaints the frame each time the draw signal is raised.
func (app *Application) drawLoop() {
	for {
		if app.stop.Load() {
			return
		}
		if !app.drawSig.Wait() {
			return
		}
		if app.stop.Load() {
			return
		}
		app.drawFrame()
	}
}

func (app *Application) drawFrame() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.splashed {
		return
	}
	status := app.rend.StatusLine()
	status.SetName(app.buf.Name())
	status.SetModified(app.buf.Dirty())

	app.rend.DrawFrame(app.buf, app.vp)

	line, column := app.cur.Position()
	app.rend.PlaceCursor(app.buf, app.vp, line, column)
}

// cursorLoop keeps the cursor line visible and moves the terminal cursor
// each time the cursor signal is raised.
func (app *Application) cursorLoop() {
	for {
		if app.stop.Load() {
			return
		}
		if !app.cursorSig.Wait() {
			return
		}
		if app.stop.Load() {
			return
		}
		app.trackCursor()
	}
}

func (app *Application) trackCursor() {
	app.mu.Lock()
	defer app.mu.Unlock()

	line, column := app.cur.Position()
	if app.vp.ScrollTo(line) {
		app.drawSig.Raise()
	}
	if app.splashed {
		return
	}
	app.rend.PlaceCursor(app.buf, app.vp, line, column)
}

// statusf sets the status message. The caller holds mu.
func (app *Application) statusf(format string, args ...any) {
	app.rend.StatusLine().SetMessage(fmt.Sprintf(format, args...))
}

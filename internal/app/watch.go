package app

import (
	"bytes"
	"errors"
	"io/fs"

	"github.com/dshills/nep/internal/project/watcher"
)

// startWatcher begins reporting external changes to the backing file.
// Failure to watch is logged and otherwise ignored.
func (app *Application) startWatcher() {
	path := app.buf.Path()
	if !app.opts.WatchFile || path == "" {
		return
	}
	log := app.logger.WithComponent("watcher")

	w, err := watcher.New(path)
	if err != nil {
		log.Warn("cannot watch %s: %v", path, err)
		return
	}
	app.watcher = w
	app.watchDone = make(chan struct{})

	go func() {
		defer close(app.watchDone)
		for {
			select {
			case ev, ok := <-w.Events():
				if !ok {
					return
				}
				app.handleFileEvent(path, ev)
			case err, ok := <-w.Errors():
				if !ok {
					return
				}
				log.Warn("watch error: %v", err)
			}
		}
	}()
}

// stopWatcher closes the watcher and waits for its goroutine.
func (app *Application) stopWatcher() error {
	if app.watcher == nil {
		return nil
	}
	err := app.watcher.Close()
	<-app.watchDone
	return err
}

// handleFileEvent shows a status message when the file on disk no longer
// matches the buffer. Writes made by our own save match and are ignored.
// The file is read before taking mu.
func (app *Application) handleFileEvent(path string, ev watcher.Event) {
	log := app.logger.WithComponent("watcher")
	data, err := app.opts.Store.Load(path)

	app.mu.Lock()
	defer app.mu.Unlock()

	if err != nil {
		removed := ev.Op.Has(watcher.OpRemove) || ev.Op.Has(watcher.OpRename) ||
			errors.Is(err, fs.ErrNotExist)
		if !removed {
			log.Warn("cannot read %s: %v", path, err)
			return
		}
		log.Info("%s removed on disk", ev.Path)
		app.statusf("%s was removed on disk", app.buf.Name())
		app.drawSig.Raise()
		return
	}

	if bytes.Equal(data, []byte(app.buf.Text())) {
		return
	}
	log.Info("%s changed on disk (%s)", ev.Path, ev.Op)
	app.statusf("%s changed on disk", app.buf.Name())
	app.drawSig.Raise()
}

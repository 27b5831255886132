package app

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/nep/internal/config"
	"github.com/dshills/nep/internal/engine/buffer"
	"github.com/dshills/nep/internal/engine/cursor"
	"github.com/dshills/nep/internal/project/filestore"
	"github.com/dshills/nep/internal/project/watcher"
	"github.com/dshills/nep/internal/renderer"
	"github.com/dshills/nep/internal/renderer/backend"
	"github.com/dshills/nep/internal/renderer/dirty"
	"github.com/dshills/nep/internal/renderer/viewport"
)

// Options configures the application.
type Options struct {
	// Path is the file to edit. Empty starts an unnamed buffer.
	Path string

	// Store reads and writes Path. Defaults to the OS filesystem.
	Store buffer.Store

	// Backend is the terminal. Required.
	Backend backend.Backend

	// TabWidth is the number of spaces Tab inserts.
	TabWidth int

	// ResizeInterval is how often the terminal size is sampled.
	ResizeInterval time.Duration

	// ShowSplash paints the banner when Path is empty.
	ShowSplash bool

	// ProgramTag is drawn at the right of the status row.
	ProgramTag string

	// WatchFile reports external changes to Path.
	WatchFile bool

	// Logger receives application logs. Defaults to NullLogger.
	Logger *Logger
}

// OptionsFromConfig returns options carrying the settings of cfg.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		TabWidth:       cfg.TabWidth,
		ResizeInterval: cfg.ResizeInterval,
		ShowSplash:     cfg.ShowSplash,
		ProgramTag:     cfg.ProgramTag,
		WatchFile:      true,
	}
}

// Application is one editing session.
//
// mu guards the buffer, the cursor, the viewport and everything written
// through the renderer. Workers take it for a whole pass.
type Application struct {
	mu sync.Mutex

	opts    Options
	id      string
	logger  *Logger
	backend backend.Backend

	buf      *buffer.Buffer
	cur      *cursor.Cursor
	vp       *viewport.Viewport
	rend     *renderer.Renderer
	splashed bool // splash banner on screen

	drawSig    *dirty.Signal
	cursorSig  *dirty.Signal
	resizeNow  chan struct{}
	resizeDone chan struct{}
	stopOnce   sync.Once

	stop    atomic.Bool
	running atomic.Bool
	workers sync.WaitGroup

	errMu     sync.Mutex
	workerErr error

	watcher   *watcher.FileWatcher
	watchDone chan struct{}
}

// New creates an application and loads the buffer. A missing file yields
// an empty buffer that will be created on save.
func New(opts Options) (*Application, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}
	def := config.Default()
	if opts.TabWidth <= 0 {
		opts.TabWidth = def.TabWidth
	}
	if opts.ResizeInterval <= 0 {
		opts.ResizeInterval = def.ResizeInterval
	}
	if opts.ProgramTag == "" {
		opts.ProgramTag = def.ProgramTag
	}
	if opts.Store == nil {
		opts.Store = filestore.NewOS()
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	logger = logger.WithField("session", id)

	var buf *buffer.Buffer
	if opts.Path != "" {
		var err error
		buf, err = buffer.Load(opts.Store, opts.Path)
		if err != nil {
			return nil, NewOperationError("open", opts.Path, errors.Unwrap(err))
		}
		logger.Info("opened %s (%d lines)", opts.Path, buf.LineCount())
	} else {
		buf = buffer.New()
	}

	app := &Application{
		opts:       opts,
		id:         id,
		logger:     logger,
		backend:    opts.Backend,
		buf:        buf,
		cur:        cursor.New(buf),
		rend:       renderer.New(opts.Backend, renderer.DefaultOptions()),
		splashed:   opts.ShowSplash && opts.Path == "",
		drawSig:    dirty.NewSignal(true),
		cursorSig:  dirty.NewSignal(true),
		resizeNow:  make(chan struct{}, 1),
		resizeDone: make(chan struct{}),
	}
	app.rend.StatusLine().SetTag(opts.ProgramTag)

	return app, nil
}

// SessionID returns the unique id of this session.
func (app *Application) SessionID() string {
	return app.id
}

// Run initializes the backend, starts the workers and dispatches input
// until the exit key. It returns the first worker failure, if any.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	w, h := app.backend.Size()
	app.mu.Lock()
	app.vp = viewport.New(w, h)
	if app.splashed {
		app.splashed = app.rend.DrawSplash(splashText, w, h)
	}
	app.mu.Unlock()
	app.logger.WithFields(map[string]any{"width": w, "height": h}).Info("session started")

	app.startWatcher()

	app.goWorker("resize", app.resizeLoop)
	app.goWorker("draw", app.drawLoop)
	app.goWorker("cursor", app.cursorLoop)

	app.inputLoop()

	errs := NewErrorList()
	errs.Add(app.stopWatcher())
	errs.Add(app.workerError())
	app.logger.Info("session ended")
	return errs.AsError()
}

// exit stops the workers and waits for them. The order matters: the stop
// flag first, then every wake source, then the join.
func (app *Application) exit() {
	app.stopOnce.Do(func() {
		app.stop.Store(true)
		close(app.resizeDone)
		app.cursorSig.Close()
		app.drawSig.Close()
	})
	app.workers.Wait()
}

// requestExit asks the input loop to exit as if the user pressed Escape.
func (app *Application) requestExit() {
	app.backend.PostEvent(backend.KeyEvent(backend.KeyEscape))
}

func (app *Application) setWorkerError(err error) {
	app.errMu.Lock()
	defer app.errMu.Unlock()
	if app.workerErr == nil {
		app.workerErr = err
	}
}

func (app *Application) workerError() error {
	app.errMu.Lock()
	defer app.errMu.Unlock()
	return app.workerErr
}

// Buffer returns the buffer. Callers must not use it while Run is active.
func (app *Application) Buffer() *buffer.Buffer {
	return app.buf
}

// State is a consistent copy of the session state.
type State struct {
	Lines   []string
	Line    int
	Column  int
	Offset  int
	Width   int
	Height  int
	Dirty   bool
	Message string
	Splash  bool
}

// Snapshot returns the current state under the session lock.
func (app *Application) Snapshot() State {
	app.mu.Lock()
	defer app.mu.Unlock()

	s := State{
		Lines:   make([]string, app.buf.LineCount()),
		Dirty:   app.buf.Dirty(),
		Message: app.rend.StatusLine().Message(),
		Splash:  app.splashed,
	}
	for i := range s.Lines {
		s.Lines[i] = app.buf.Line(i).String()
	}
	s.Line, s.Column = app.cur.Position()
	if app.vp != nil {
		s.Offset = app.vp.Offset()
		s.Width, s.Height = app.vp.Size()
	}
	return s
}

// internal/app/app.go
package app

import (
	"fmt"
	"io"

	"github.com/bethropolis/softkeys/internal/callout"
	"github.com/bethropolis/softkeys/internal/config"
	"github.com/bethropolis/softkeys/internal/dispatch"
	"github.com/bethropolis/softkeys/internal/document"
	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/feedback"
	"github.com/bethropolis/softkeys/internal/frequency"
	"github.com/bethropolis/softkeys/internal/input"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/statusbar"
	"github.com/bethropolis/softkeys/internal/theme"
	"github.com/bethropolis/softkeys/internal/touch"
	"github.com/bethropolis/softkeys/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Options are the process level inputs of an App besides its config.
type Options struct {
	// Flags and ConfigPath are reapplied when the config is reloaded.
	Flags      *config.Flags
	ConfigPath string
	// LogOutput receives the logger after a reload changes its filters.
	LogOutput io.Writer

	// Screen, Clock and Clipboard default to the terminal, system time
	// posted onto the event loop, and the system clipboard.
	Screen    tcell.Screen
	Clock     touch.Clock
	Clipboard dispatch.Clipboard
}

// App owns every component of the keyboard and runs the event loop. All of
// them are used from the event loop goroutine only; timers reach it through
// tcell interrupt events.
type App struct {
	opts Options
	cfg  *config.Config

	tuiManager     *tui.TUI
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	inputProcessor *input.InputProcessor
	activeTheme    *theme.Theme

	doc        *document.Document
	recent     *frequency.Store
	feedback   *feedback.Trigger
	dispatcher *dispatch.Dispatcher
	callout    *callout.Context
	router     *touch.Router
	clock      touch.Clock
	clipboard  dispatch.Clipboard

	layouts   keyboard.Layouts
	dragKey   *keyboard.ID // key that armed cursor dragging
	mouseDown bool

	// deferred runs after the current event, outside the gesture that
	// queued it.
	deferred []func()
	dirty    bool
	quit     bool
}

// New creates the application from cfg.
func New(cfg *config.Config, opts Options) (*App, error) {
	a := &App{
		opts:           opts,
		cfg:            cfg,
		statusBar:      statusbar.New(statusbar.DefaultConfig()),
		eventManager:   event.NewManager(),
		inputProcessor: input.NewInputProcessor(),
		activeTheme:    theme.Load(cfg.UI.ThemeFile),
		clipboard:      opts.Clipboard,
	}
	if a.clipboard == nil {
		a.clipboard = dispatch.SystemClipboard{}
	}

	var err error
	if opts.Screen != nil {
		a.tuiManager, err = tui.NewWithScreen(opts.Screen, a.activeTheme)
	} else {
		a.tuiManager, err = tui.New(a.activeTheme)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a.clock = opts.Clock
	if a.clock == nil {
		a.clock = touch.LoopClock(touch.SystemClock(), a.tuiManager.PostFunc)
	}

	a.doc = document.New(a.eventManager)
	a.recent, err = frequency.New(cfg.Keyboard.RecentSymbols, a.eventManager)
	if err != nil {
		a.tuiManager.Close()
		return nil, err
	}
	a.feedback = feedback.New(a.tuiManager, cfg.Feedback.Sound, cfg.Feedback.Haptic)
	a.layouts = a.loadLayouts(cfg)

	primary := a.layoutFor(keyboard.Alphabetic)
	a.callout = callout.New(primary, a.eventManager)
	a.dispatcher = dispatch.New(dispatch.Config{
		Sink:        commandSink{a},
		Feedback:    a.feedback,
		Context:     a.doc,
		Replacement: a.replacement(cfg),
		Clipboard:   a.clipboard,
		Callout:     a.callout,
		Frequency:   a.recent,
		Events:      a.eventManager,
		Behavior:    behavior(cfg),
	})
	a.callout.SetCommitter(a.dispatcher)

	a.router = touch.NewRouter(touch.RouterConfig{
		Layout:           primary,
		Thresholds:       cfg.Thresholds(),
		Clock:            a.clock,
		Handler:          a.dispatcher,
		Callout:          a.callout,
		SpaceCursorDrag:  cfg.SpaceCursorDrag(),
		OnPressedChanged: a.publishPressed,
	})

	a.subscribe()
	a.statusBar.SetKeyboard(a.dispatcher.KeyboardType(), a.dispatcher.Case())
	a.arrange()
	return a, nil
}

// Run draws the keyboard and processes terminal events until quit.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.message("%s %s - drag keys with the mouse | Ctrl+R Reload | Ctrl+L Clear | ESC Quit", config.AppName, config.Version)
	a.draw()

	for !a.quit {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			break
		}
		a.handleEvent(ev)
	}

	a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	logger.Infof("Exiting application.")
	return nil
}

// handleEvent processes one terminal event, then runs deferred work and
// redraws if anything changed.
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.arrange()
		a.dirty = true
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		a.handleKey(ev)
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	}

	for len(a.deferred) > 0 {
		fn := a.deferred[0]
		a.deferred = a.deferred[1:]
		fn()
	}
	if a.dirty && !a.quit {
		a.draw()
	}
}

// later queues fn to run once the current event is handled.
func (a *App) later(fn func()) {
	a.deferred = append(a.deferred, fn)
}

func (a *App) requestRedraw() {
	a.dirty = true
}

// message shows a temporary status message and redraws when it expires.
func (a *App) message(format string, args ...any) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.dirty = true
	a.clock.AfterFunc(config.MessageTimeout+config.MessageTimeout/10, a.requestRedraw)
}

// internal/tui/tui.go
package tui

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// postRetry is how long PostFunc waits before retrying a full event queue.
const postRetry = 5 * time.Millisecond

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen    tcell.Screen
	closed    chan struct{}
	closeOnce sync.Once
}

// New creates and initializes a terminal screen with mouse reporting on.
func New(activeTheme *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, activeTheme)
}

// NewWithScreen initializes s. Tests pass a tcell.SimulationScreen.
func NewWithScreen(s tcell.Screen, activeTheme *theme.Theme) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	// Drag events report motion while a button is held, which is what a
	// finger on glass looks like.
	s.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	s.SetStyle(activeTheme.GetStyle(theme.StyleDefault))
	return &TUI{screen: s, closed: make(chan struct{})}, nil
}

// Close finalizes the tcell screen. Callbacks posted afterwards are dropped.
func (t *TUI) Close() {
	t.closeOnce.Do(func() {
		close(t.closed)
		t.screen.DisableMouse()
		t.screen.Fini()
	})
}

// SetTheme changes the background style.
func (t *TUI) SetTheme(activeTheme *theme.Theme) {
	t.screen.SetStyle(activeTheme.GetStyle(theme.StyleDefault))
}

// PollEvent retrieves the next event.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostFunc queues fn to run on the goroutine reading PollEvent, as the data
// of a tcell.EventInterrupt. It retries while the event queue is full, so it
// must not be called from that goroutine. Once the screen is closed fn is
// dropped.
func (t *TUI) PostFunc(fn func()) {
	ev := tcell.NewEventInterrupt(fn)
	for {
		select {
		case <-t.closed:
			logger.DebugTagf("tui", "screen closed, dropping posted callback")
			return
		default:
		}
		if err := t.screen.PostEvent(ev); err == nil {
			return
		}
		select {
		case <-t.closed:
		case <-time.After(postRetry):
		}
	}
}

// Beep rings the terminal bell.
func (t *TUI) Beep() error {
	return t.screen.Beep()
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync repaints everything, after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the terminal screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen provides direct access (use with caution).
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}

package app

import (
	"github.com/bethropolis/softkeys/internal/config"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/tui"
)

const statusBarHeight = 1

// keyboardTop is the first row of the keyboard: it sits right above the
// status bar and the document takes whatever is left.
func (a *App) keyboardTop() int {
	_, height := a.tuiManager.Size()
	return height - statusBarHeight - tui.KeyboardHeight(a.router.Layout())
}

// arrange lays the current layout out for the screen size. The controllers
// read the new bounds on their next hit test or release.
func (a *App) arrange() {
	width, _ := a.tuiManager.Size()
	tui.Arrange(a.router.Layout(), 0, a.keyboardTop(), width)
	logger.DebugTagf("draw", "arranged %v keyboard at row %d, width %d", a.router.Layout().Type, a.keyboardTop(), width)
}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.dirty = false
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	top := a.keyboardTop()

	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, a.doc, 0, width, top, a.activeTheme)
	tui.DrawKeyboard(a.tuiManager, a.router.Layout(), tui.KeyState{
		Case:    a.dispatcher.Case(),
		Pressed: a.router.IsPressed,
		Callout: a.callout,
	}, a.activeTheme)
	tui.DrawCallout(a.tuiManager, a.callout, a.dispatcher.Case(), a.activeTheme)
	a.statusBar.Draw(screen, width, height, a.activeTheme)
	a.tuiManager.Show()
}

// loadLayouts reads the configured layout file, falling back to the built in
// layouts when it can't be used.
func (a *App) loadLayouts(cfg *config.Config) keyboard.Layouts {
	layouts, err := keyboard.LoadLayouts(cfg.Keyboard.Layout)
	if err != nil {
		logger.Errorf("App: %v; using built in layouts", err)
		a.message("layout error, using built in layouts: %v", err)
		return keyboard.DefaultLayouts()
	}
	return layouts
}

// layoutFor returns the layout of t, or the alphabetic one when the layout
// file has none for t.
func (a *App) layoutFor(t keyboard.Type) *keyboard.Layout {
	if l, ok := a.layouts[t]; ok {
		return l
	}
	logger.Warnf("App: no %v layout, showing alphabetic", t)
	return a.layouts[keyboard.Alphabetic]
}

// switchLayout shows the keyboard of type t. Touches in flight are
// cancelled; it runs deferred so it never swaps the layout under the
// gesture that asked for it.
func (a *App) switchLayout(t keyboard.Type) {
	l := a.layoutFor(t)
	if l == a.router.Layout() {
		return
	}
	a.callout.Close()
	a.router.SetLayout(l)
	a.callout.SetBounds(l)
	a.arrange()
	a.requestRedraw()
}

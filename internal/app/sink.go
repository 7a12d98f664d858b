package app

import (
	"github.com/bethropolis/softkeys/internal/config"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/rivo/uniseg"
)

// commandSink applies dispatcher effects to the demo document and keyboard.
type commandSink struct {
	a *App
}

func (s commandSink) InsertText(text string)   { s.a.doc.InsertText(text) }
func (s commandSink) DeleteBackward(count int) { s.a.doc.DeleteBackward(count) }
func (s commandSink) AdjustCursor(offset int)  { s.a.doc.AdjustCursor(offset) }

// SetKeyboardCase only needs a redraw; key labels follow the dispatcher's
// case.
func (s commandSink) SetKeyboardCase(c keyboard.Case) {
	logger.DebugTagf("app", "keyboard case %v", c)
	s.a.requestRedraw()
}

func (s commandSink) SetKeyboardType(t keyboard.Type) {
	s.a.later(func() { s.a.switchLayout(t) })
}

func (s commandSink) OpenMenu(m keyboard.MenuKind) {
	s.a.openMenu(m)
}

// maxPreview caps the clipboard preview, in grapheme clusters.
const maxPreview = 24

// openMenu shows the menu as a status message; the terminal has no room for
// real menus.
func (a *App) openMenu(m keyboard.MenuKind) {
	switch m {
	case keyboard.MenuSettings:
		path := a.cfg.Path
		if path == "" {
			path = "defaults (no config file)"
		}
		a.message("settings: %s - edit and press Ctrl+R", path)
	case keyboard.MenuInputSwitcher:
		a.message("%s is the only input method", config.AppName)
	case keyboard.MenuClipboard:
		text, err := a.clipboard.ReadAll()
		if err != nil {
			logger.Warnf("App: clipboard: %v", err)
			a.message("clipboard unavailable")
			return
		}
		a.message("clipboard: %q", preview(text, maxPreview))
	}
}

// preview cuts s to at most n grapheme clusters.
func preview(s string, n int) string {
	gr := uniseg.NewGraphemes(s)
	end, count := 0, 0
	for gr.Next() {
		if count == n {
			return s[:end] + "…"
		}
		_, end = gr.Positions()
		count++
	}
	return s
}

package app

import (
	"github.com/bethropolis/softkeys/internal/input"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/touch"
	"github.com/bethropolis/softkeys/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// mousePointer is the pointer the primary button drives. A terminal reports
// one position for all buttons, so there is only ever one pointer.
const mousePointer touch.PointerID = 0

// handleMouse turns primary button presses, drags and releases into pointer
// events at the centre of the cell under the mouse.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	p := tui.CellToPoint(x, y)
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !a.mouseDown:
		a.mouseDown = true
		a.router.OnPointerEvent(mousePointer, touch.PhaseBegin, p)
	case down:
		a.router.OnPointerEvent(mousePointer, touch.PhaseMove, p)
	case a.mouseDown:
		a.mouseDown = false
		a.router.OnPointerEvent(mousePointer, touch.PhaseEnd, p)
	default:
		return
	}
	a.requestRedraw()
}

// handleKey runs host commands from the physical keyboard. Typing edits the
// document directly, without the on-screen keyboard's case or replacement.
func (a *App) handleKey(ev *tcell.EventKey) {
	actionEvent := a.inputProcessor.ProcessEvent(ev)
	switch actionEvent.Action {
	case input.ActionQuit:
		logger.Infof("App: quit requested")
		a.router.CancelAll()
		a.quit = true
	case input.ActionReloadConfig:
		a.reloadConfig()
	case input.ActionClearDocument:
		a.doc.SetText("")
		a.message("cleared")
	case input.ActionMoveLeft:
		a.doc.AdjustCursor(-1)
	case input.ActionMoveRight:
		a.doc.AdjustCursor(1)
	case input.ActionMoveHome:
		a.doc.AdjustCursor(-a.doc.Cursor())
	case input.ActionMoveEnd:
		a.doc.AdjustCursor(a.doc.Len() - a.doc.Cursor())
	case input.ActionDeleteBackward:
		a.doc.DeleteBackward(1)
	case input.ActionInsertRune:
		a.doc.InsertText(string(actionEvent.Rune))
	case input.ActionInsertNewLine:
		a.doc.InsertText("\n")
	default:
		return
	}
	a.requestRedraw()
}

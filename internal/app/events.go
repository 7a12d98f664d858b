package app

import (
	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
)

// subscribe wires the status bar and redraws to the event bus.
func (a *App) subscribe() {
	m := a.eventManager
	m.Subscribe(event.TypePressedChanged, a.handlePressedChanged)
	m.Subscribe(event.TypeCursorDragArmed, a.handleCursorDragArmed)
	m.Subscribe(event.TypeCalloutChanged, a.handleRedraw)
	m.Subscribe(event.TypeCaseChanged, a.handleKeyboardStateForStatus)
	m.Subscribe(event.TypeKeyboardTypeChanged, a.handleKeyboardStateForStatus)
	m.Subscribe(event.TypeRecentChanged, a.handleRecentChangedForStatus)
	m.Subscribe(event.TypeTextChanged, a.handleTextChangedForStatus)
	m.Subscribe(event.TypeTextContextResync, a.handleTextContextResync)
	m.Subscribe(event.TypeGesture, a.handleGesture)
}

// publishPressed is the router's pressed state callback.
func (a *App) publishPressed(k *keyboard.Key, pressed bool) {
	a.eventManager.Dispatch(event.TypePressedChanged, event.PressedChangedData{Key: k.ID, Pressed: pressed})
}

func (a *App) handleRedraw(e event.Event) bool {
	a.requestRedraw()
	return false
}

func (a *App) handlePressedChanged(e event.Event) bool {
	data, ok := e.Data.(event.PressedChangedData)
	if !ok {
		return false
	}
	if !data.Pressed && a.dragKey != nil && *a.dragKey == data.Key {
		a.dragKey = nil
		a.statusBar.SetCursorDrag(false)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleCursorDragArmed(e event.Event) bool {
	if data, ok := e.Data.(event.CursorDragArmedData); ok {
		key := data.Key
		a.dragKey = &key
		a.statusBar.SetCursorDrag(true)
		a.requestRedraw()
	}
	return false
}

func (a *App) handleKeyboardStateForStatus(e event.Event) bool {
	a.statusBar.SetKeyboard(a.dispatcher.KeyboardType(), a.dispatcher.Case())
	a.requestRedraw()
	return false
}

func (a *App) handleRecentChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.RecentChangedData); ok {
		a.statusBar.SetRecent(data.Recent)
		a.requestRedraw()
	}
	return false
}

func (a *App) handleTextChangedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.TextChangedData); ok {
		a.statusBar.SetTextInfo(data.Cursor, a.doc.Len())
		a.requestRedraw()
	}
	return false
}

// handleTextContextResync has nothing to re-read: the document is the text
// context. A host editing a foreign text field would refresh it here.
func (a *App) handleTextContextResync(e event.Event) bool {
	logger.DebugTagf("app", "text context resync at cursor %d", a.doc.Cursor())
	return false
}

func (a *App) handleGesture(e event.Event) bool {
	if data, ok := e.Data.(event.GestureData); ok {
		logger.DebugTagf("app", "%v %v on %v", data.Gesture.Type, data.Action, data.Key)
	}
	return false
}

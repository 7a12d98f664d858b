// internal/event/events.go
package event

import (
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Engine events
	TypeGesture         // A gesture reached the dispatcher and had an effect
	TypePressedChanged  // A key's pressed state flipped
	TypeCursorDragArmed // A long press on space armed cursor dragging
	TypeCalloutChanged  // The callout pop-up opened, moved its selection or closed

	// Keyboard state
	TypeCaseChanged
	TypeKeyboardTypeChanged
	TypeMenuOpened
	TypeRecentChanged // The recently used symbol list changed

	// Text context
	TypeTextChanged       // The command sink edited the document
	TypeTextContextResync // The input connection should re-read the text around the cursor

	// Application lifecycle
	TypeConfigReloaded
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeGesture:             "gesture",
	TypePressedChanged:      "pressedChanged",
	TypeCursorDragArmed:     "cursorDragArmed",
	TypeCalloutChanged:      "calloutChanged",
	TypeCaseChanged:         "caseChanged",
	TypeKeyboardTypeChanged: "keyboardTypeChanged",
	TypeMenuOpened:          "menuOpened",
	TypeRecentChanged:       "recentChanged",
	TypeTextChanged:         "textChanged",
	TypeTextContextResync:   "textContextResync",
	TypeConfigReloaded:      "configReloaded",
	TypeAppReady:            "appReady",
	TypeAppQuit:             "appQuit",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data any
}

// GestureData describes a gesture that produced an effect.
type GestureData struct {
	Key     keyboard.ID
	Action  keyboard.Action
	Gesture gesture.Event
}

// PressedChangedData carries a key's new pressed state.
type PressedChangedData struct {
	Key     keyboard.ID
	Pressed bool
}

// CursorDragArmedData names the key that armed cursor dragging.
type CursorDragArmedData struct {
	Key keyboard.ID
}

// CalloutChangedData is the callout state after a change. Selected is -1 when
// the pointer is over no option.
type CalloutChangedData struct {
	Key      keyboard.ID
	Options  []string
	Selected int
	Visible  bool
}

type CaseChangedData struct {
	Case keyboard.Case
}

type KeyboardTypeChangedData struct {
	Type keyboard.Type
}

type MenuOpenedData struct {
	Menu keyboard.MenuKind
}

// RecentChangedData lists recent symbols, most recent first.
type RecentChangedData struct {
	Recent []string
}

// TextChangedData carries the document after an edit.
type TextChangedData struct {
	Text   string
	Cursor int // grapheme index
}

// TextContextResyncData is sent after a release effect completes.
type TextContextResyncData struct{}

// ConfigReloadedData names the file a reload read, empty when defaults were used.
type ConfigReloadedData struct {
	Path string
}

type AppReadyData struct{}

type AppQuitData struct{}

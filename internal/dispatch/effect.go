package dispatch

import (
	"fmt"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
)

// EffectKind names what an effect does to the command sink.
type EffectKind uint8

const (
	EffectNone EffectKind = iota
	EffectInsertText
	EffectDeleteBackward
	EffectAdjustCursor
	EffectDragCursor // adjusts the cursor by the steps carried in the drag event
	EffectToggleShift
	EffectCapsLock
	EffectSetKeyboardType
	EffectOpenMenu
	EffectPaste
	EffectShowCallout
	EffectArmCursorDrag
)

var effectNames = [...]string{
	EffectNone:            "none",
	EffectInsertText:      "insertText",
	EffectDeleteBackward:  "deleteBackward",
	EffectAdjustCursor:    "adjustCursor",
	EffectDragCursor:      "dragCursor",
	EffectToggleShift:     "toggleShift",
	EffectCapsLock:        "capsLock",
	EffectSetKeyboardType: "setKeyboardType",
	EffectOpenMenu:        "openMenu",
	EffectPaste:           "paste",
	EffectShowCallout:     "showCallout",
	EffectArmCursorDrag:   "armCursorDrag",
}

func (k EffectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return fmt.Sprintf("effect(%d)", uint8(k))
}

// Effect is the data description of what a gesture does. It is decided
// without touching the sink, so it can be inspected before it runs.
type Effect struct {
	Kind     EffectKind
	Text     string
	Count    int
	Keyboard keyboard.Type
	Menu     keyboard.MenuKind
}

func (e Effect) String() string {
	switch e.Kind {
	case EffectInsertText:
		return fmt.Sprintf("insertText(%q)", e.Text)
	case EffectDeleteBackward, EffectAdjustCursor:
		return fmt.Sprintf("%v(%d)", e.Kind, e.Count)
	case EffectSetKeyboardType:
		return fmt.Sprintf("setKeyboardType(%v)", e.Keyboard)
	case EffectOpenMenu:
		return fmt.Sprintf("openMenu(%v)", e.Menu)
	}
	return e.Kind.String()
}

// Exists reports whether the effect does anything.
func (e Effect) Exists() bool { return e.Kind != EffectNone }

// SwipeEffectFor is the one-shot effect a swipe bound to a runs: its release
// effect, or its press effect for actions that act on press.
func SwipeEffectFor(a keyboard.Action, b Behavior) Effect {
	if eff := EffectFor(gesture.Release, a, b); eff.Exists() {
		return eff
	}
	return EffectFor(gesture.Press, a, b)
}

// EffectFor is the default effect of gesture g on an action. Drag effects
// carry no count; the step count comes from the drag event.
func EffectFor(g gesture.Type, a keyboard.Action, b Behavior) Effect {
	switch a.Kind {
	case keyboard.KindCharacter, keyboard.KindSymbol, keyboard.KindEmoji:
		if g == gesture.Release {
			return Effect{Kind: EffectInsertText, Text: a.Text}
		}
	case keyboard.KindBackspace:
		if g == gesture.Press || g == gesture.RepeatTick {
			return Effect{Kind: EffectDeleteBackward, Count: 1}
		}
	case keyboard.KindShift:
		switch g {
		case gesture.Release:
			return Effect{Kind: EffectToggleShift}
		case gesture.DoubleTap:
			return Effect{Kind: EffectCapsLock}
		}
	case keyboard.KindSpace:
		switch g {
		case gesture.Release:
			return Effect{Kind: EffectInsertText, Text: " "}
		case gesture.LongPress:
			if b.SpaceCursorDrag {
				return Effect{Kind: EffectArmCursorDrag}
			}
		case gesture.Drag:
			if b.SpaceCursorDrag {
				return Effect{Kind: EffectDragCursor}
			}
		}
	case keyboard.KindEnter:
		if g == gesture.Release {
			return Effect{Kind: EffectInsertText, Text: "\n"}
		}
	case keyboard.KindKeyboardType:
		if g == gesture.Release {
			return Effect{Kind: EffectSetKeyboardType, Keyboard: a.Keyboard}
		}
	case keyboard.KindMenu:
		if g == gesture.Release || g == gesture.LongPress {
			return Effect{Kind: EffectOpenMenu, Menu: a.Menu}
		}
	case keyboard.KindCursor:
		if g == gesture.Press || g == gesture.RepeatTick {
			return Effect{Kind: EffectAdjustCursor, Count: a.Offset}
		}
	case keyboard.KindPaste:
		if g == gesture.Release {
			return Effect{Kind: EffectPaste}
		}
	}
	return Effect{}
}

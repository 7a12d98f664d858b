// Package gesture defines the semantic touch outcomes produced for a virtual
// key, the direction classifier used to recognize swipes and the numeric
// policy that drives recognition.
package gesture

import (
	"fmt"

	"github.com/bethropolis/softkeys/internal/types"
)

// Type identifies a recognized gesture.
type Type uint8

const (
	Press Type = iota
	Release
	DoubleTap
	LongPress
	RepeatTick
	Drag
	SwipeUp
	SwipeDown
	SwipeLeft
	SwipeRight
)

// IsSwipe reports whether t is one of the directional swipe gestures.
func (t Type) IsSwipe() bool {
	return t >= SwipeUp && t <= SwipeRight
}

// Direction returns the swipe direction of t, or None for non swipe types.
func (t Type) Direction() Direction {
	switch t {
	case SwipeUp:
		return Up
	case SwipeDown:
		return Down
	case SwipeLeft:
		return Left
	case SwipeRight:
		return Right
	default:
		return None
	}
}

func (t Type) String() string {
	switch t {
	case Press:
		return "press"
	case Release:
		return "release"
	case DoubleTap:
		return "doubleTap"
	case LongPress:
		return "longPress"
	case RepeatTick:
		return "repeatTick"
	case Drag:
		return "drag"
	case SwipeUp:
		return "swipeUp"
	case SwipeDown:
		return "swipeDown"
	case SwipeLeft:
		return "swipeLeft"
	case SwipeRight:
		return "swipeRight"
	default:
		return fmt.Sprintf("gesture(%d)", uint8(t))
	}
}

// Event is a gesture as delivered to a handler. From and To are only set for
// Drag, where Steps carries the whole cursor steps the drag produced.
type Event struct {
	Type     Type
	Position types.Point
	From, To types.Point
	Steps    int
}

// E is shorthand for an Event carrying only a type.
func E(t Type) Event {
	return Event{Type: t}
}

func (e Event) String() string {
	if e.Type == Drag {
		return fmt.Sprintf("drag%v->%v steps=%d", e.From, e.To, e.Steps)
	}
	return e.Type.String()
}

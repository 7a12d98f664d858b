package touch

import (
	"time"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/types"
)

// Phase is a raw pointer event phase as delivered by the view layer.
type Phase uint8

const (
	PhaseBegin Phase = iota
	PhaseMove
	PhaseEnd
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	}
	return "unknown"
}

// SwipeEffect is a swipe decided during a drag. It is run at release by
// delivering Gesture to the handler, which executes the key's binding.
type SwipeEffect struct {
	Gesture   gesture.Type
	Direction gesture.Direction
	Action    keyboard.Action
}

// Session is the state of one in-flight touch on one key. It exists from
// press until release or cancel.
type Session struct {
	pressedAt time.Time
	anchor    types.Point
	lastDrag  types.Point
	dragged   bool

	// token is the arm token the session's timers were armed with.
	token uint64

	swipe *SwipeEffect

	// applyRelease is cleared by a resolved swipe, a consumed double tap, a
	// handled long press and an armed cursor drag.
	applyRelease bool

	longPressed bool
	cursorDrag  bool
	dragCarry   float32

	longPressTimer Timer
	repeatTimer    Timer
}

func newSession(now time.Time, at types.Point, token uint64) *Session {
	return &Session{
		pressedAt:    now,
		anchor:       at,
		token:        token,
		applyRelease: true,
	}
}

// lastPoint is where the previous move ended, or the anchor before any move.
func (s *Session) lastPoint() types.Point {
	if s.dragged {
		return s.lastDrag
	}
	return s.anchor
}

// ResolvedSwipe returns the swipe decided so far, if any.
func (s *Session) ResolvedSwipe() (SwipeEffect, bool) {
	if s.swipe == nil {
		return SwipeEffect{}, false
	}
	return *s.swipe, true
}

// AppliesRelease reports whether a release inside the key would still emit
// the release gesture.
func (s *Session) AppliesRelease() bool { return s.applyRelease }

// CursorDragArmed reports whether moves drive the cursor.
func (s *Session) CursorDragArmed() bool { return s.cursorDrag }

// DragCarry is the drag distance not yet converted into cursor steps.
func (s *Session) DragCarry() float32 { return s.dragCarry }

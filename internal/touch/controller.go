// Package touch turns raw pointer events on virtual keys into gestures. A
// Controller owns the touch on one key, a Router hit tests pointers and
// hands their events to the controllers.
package touch

import (
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/types"
)

// Handler receives the gestures of a key. The dispatcher implements it.
type Handler interface {
	// CanHandleKey reports whether a gesture of type g on k has an effect.
	// It must not have side effects.
	CanHandleKey(g gesture.Type, k *keyboard.Key) bool
	DispatchKey(ev gesture.Event, k *keyboard.Key)
}

// Overlay is a component drawn over the keyboard that can take a touch
// over, such as the callout pop-up.
type Overlay interface {
	HasClaimedGesture() bool
	NotifyGestureEnded()
}

// LayoutModel supplies swipe bindings and the current bounds of a key.
type LayoutModel interface {
	Binding(d gesture.Direction, k *keyboard.Key) (keyboard.Action, bool)
	Bounds(k *keyboard.Key) types.Rect
}

// Config wires a Controller.
type Config struct {
	Key        *keyboard.Key
	Layout     LayoutModel
	Thresholds gesture.Thresholds
	Clock      Clock
	Handler    Handler
	// Overlay is optional.
	Overlay Overlay
	// SpaceCursorDrag makes a long press on a space key arm cursor dragging.
	SpaceCursorDrag bool
	// OnPressedChanged is optional.
	OnPressedChanged func(k *keyboard.Key, pressed bool)
}

// Controller is the touch state machine of one key. All methods and timer
// callbacks must be called from one goroutine; see LoopClock.
type Controller struct {
	cfg     Config
	key     *keyboard.Key
	session *Session

	// armToken counts presses and session ends. Timers compare it with the
	// value they were armed with.
	armToken uint64
}

// NewController creates an idle controller.
func NewController(cfg Config) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	return &Controller{cfg: cfg, key: cfg.Key}
}

// Key returns the controlled key.
func (c *Controller) Key() *keyboard.Key { return c.key }

// IsPressed reports whether a touch is in flight.
func (c *Controller) IsPressed() bool { return c.session != nil }

// Session returns the in-flight session, nil when idle.
func (c *Controller) Session() *Session { return c.session }

// OnPointerEvent is the view layer entry point.
func (c *Controller) OnPointerEvent(phase Phase, p types.Point, tapCount int) {
	switch phase {
	case PhaseBegin:
		c.Press(p, tapCount)
	case PhaseMove:
		c.Move(p)
	case PhaseEnd:
		c.Release(p)
	case PhaseCancel:
		c.Cancel()
	}
}

// Press starts a touch. A press while a touch is in flight is ignored.
func (c *Controller) Press(p types.Point, tapCount int) {
	if c.session != nil {
		logger.DebugTagf("touch", "%v: press while pressed, ignored", c.key)
		return
	}
	if c.key.Action.IsSpacer() {
		return
	}
	c.armToken++
	s := newSession(c.cfg.Clock.Now(), p, c.armToken)
	c.session = s
	c.setPressed(true)

	c.emit(gesture.Event{Type: gesture.Press, Position: p})
	if !c.live(s) {
		return
	}
	if tapCount > 1 {
		if c.canHandle(gesture.DoubleTap) {
			// The double tap replaces the tap it completes.
			s.applyRelease = false
		}
		c.emit(gesture.Event{Type: gesture.DoubleTap, Position: p})
		if !c.live(s) {
			return
		}
	}
	c.armTimers(s)
}

// Move follows the pointer. Swipes resolve here; cursor drag steps are
// emitted here.
func (c *Controller) Move(p types.Point) {
	s := c.session
	if s == nil {
		return
	}
	prev := s.lastPoint()
	s.lastDrag, s.dragged = p, true

	if s.swipe == nil && !s.cursorDrag && c.cfg.Clock.Now().Sub(s.pressedAt) < c.cfg.Thresholds.LongPressDelay {
		c.resolveSwipe(s, p)
	}
	if s.swipe == nil && s.cursorDrag {
		c.dragCursor(s, prev, p)
	}
}

func (c *Controller) resolveSwipe(s *Session, p types.Point) {
	d := p.Sub(s.anchor)
	if d.Len() < c.cfg.Thresholds.DistanceThreshold {
		return
	}
	dir := gesture.Classify(d.X, d.Y, c.cfg.Thresholds.TangentThreshold)
	if dir == gesture.None {
		return
	}
	action, ok := c.cfg.Layout.Binding(dir, c.key)
	if !ok {
		return
	}
	typ, _ := dir.Swipe()
	// A binding with nothing to run leaves the tap alone.
	if !c.canHandle(typ) {
		logger.DebugTagf("touch", "%v: swipe %v bound to %v has no effect", c.key, dir, action)
		return
	}
	s.swipe = &SwipeEffect{Gesture: typ, Direction: dir, Action: action}
	s.applyRelease = false
	logger.DebugTagf("touch", "%v: swipe %v resolved to %v", c.key, dir, action)
}

// Release ends the touch at p.
func (c *Controller) Release(p types.Point) {
	s := c.session
	if s == nil {
		return
	}
	c.disarm(s)

	if s.swipe != nil {
		c.emit(gesture.Event{Type: s.swipe.Gesture, Position: p})
	} else {
		claimed := c.cfg.Overlay != nil && c.cfg.Overlay.HasClaimedGesture()
		if s.applyRelease && !claimed && c.releaseInside(p) {
			c.emit(gesture.Event{Type: gesture.Release, Position: p})
		} else {
			logger.DebugTagf("touch", "%v: release at %v suppressed (apply=%t claimed=%t)", c.key, p, s.applyRelease, claimed)
		}
	}
	c.end(s)
}

// releaseInside applies the release outside tolerance.
func (c *Controller) releaseInside(p types.Point) bool {
	b := c.cfg.Layout.Bounds(c.key)
	return b.Contains(p) || b.Expand(c.cfg.Thresholds.ReleaseOutsideTolerance).Contains(p)
}

// Cancel aborts the touch without a terminal gesture.
func (c *Controller) Cancel() {
	s := c.session
	if s == nil {
		return
	}
	c.disarm(s)
	logger.DebugTagf("touch", "%v: cancelled", c.key)
	c.end(s)
}

// end runs the cleanup shared by release and cancel. A handler may already
// have ended the session during the release gesture.
func (c *Controller) end(s *Session) {
	if c.session != s {
		return
	}
	c.session = nil
	if c.cfg.Overlay != nil {
		c.cfg.Overlay.NotifyGestureEnded()
	}
	c.setPressed(false)
}

// live reports whether s is still the current session. A handler can cancel
// the controller from inside a gesture.
func (c *Controller) live(s *Session) bool {
	return c.session == s
}

func (c *Controller) canHandle(g gesture.Type) bool {
	return c.cfg.Handler != nil && c.cfg.Handler.CanHandleKey(g, c.key)
}

func (c *Controller) emit(ev gesture.Event) {
	logger.DebugTagf("touch", "%v: %v", c.key, ev)
	if c.cfg.Handler != nil {
		c.cfg.Handler.DispatchKey(ev, c.key)
	}
}

func (c *Controller) setPressed(pressed bool) {
	if c.cfg.OnPressedChanged != nil {
		c.cfg.OnPressedChanged(c.key, pressed)
	}
}

// cursorDragEligible reports whether a long press on this key arms cursor
// dragging.
func (c *Controller) cursorDragEligible() bool {
	return c.cfg.SpaceCursorDrag && c.key.Action.IsSpaceAction()
}

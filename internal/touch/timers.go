package touch

import (
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/logger"
)

// armTimers schedules the long press and repeat timers of s. A timer is only
// armed when its gesture has an effect on the key, or for the long press on
// space, when it arms cursor dragging.
func (c *Controller) armTimers(s *Session) {
	th := c.cfg.Thresholds
	token := s.token

	if c.canHandle(gesture.LongPress) || c.cursorDragEligible() {
		s.longPressTimer = c.cfg.Clock.AfterFunc(th.LongPressDelay, func() {
			c.fireLongPress(token)
		})
	}
	if c.canHandle(gesture.RepeatTick) {
		s.repeatTimer = c.cfg.Clock.AfterFunc(th.RepeatDelay, func() {
			c.fireRepeat(token)
		})
	}
}

// current returns the session armed with token, or nil when the token is
// stale.
func (c *Controller) current(token uint64) *Session {
	if c.session == nil || c.armToken != token {
		logger.DebugTagf("touch", "%v: stale timer (token %d, now %d)", c.key, token, c.armToken)
		return nil
	}
	return c.session
}

func (c *Controller) fireLongPress(token uint64) {
	s := c.current(token)
	if s == nil {
		return
	}
	s.longPressTimer = nil
	if s.swipe != nil {
		return
	}
	s.longPressed = true
	// A handled long press replaces the tap.
	s.applyRelease = false
	if c.cursorDragEligible() {
		s.cursorDrag = true
		s.dragCarry = 0
		logger.DebugTagf("touch", "%v: cursor drag armed", c.key)
	}
	c.emit(gesture.Event{Type: gesture.LongPress, Position: s.lastPoint()})
}

func (c *Controller) fireRepeat(token uint64) {
	s := c.current(token)
	if s == nil {
		return
	}
	// Re-arm first: the handler may end the session, and disarm must see the
	// new timer.
	s.repeatTimer = c.cfg.Clock.AfterFunc(c.cfg.Thresholds.RepeatInterval, func() {
		c.fireRepeat(token)
	})
	c.emit(gesture.Event{Type: gesture.RepeatTick, Position: s.lastPoint()})
}

// disarm invalidates the arm token, then stops both timers. Bumping the token
// first turns a callback that is already queued into a no-op.
func (c *Controller) disarm(s *Session) {
	c.armToken++
	if s.longPressTimer != nil {
		s.longPressTimer.Stop()
		s.longPressTimer = nil
	}
	if s.repeatTimer != nil {
		s.repeatTimer.Stop()
		s.repeatTimer = nil
	}
	s.cursorDrag = false
}

package touch

import (
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/types"
)

// dragCursor converts horizontal travel from prev to p into whole cursor
// steps. The remainder stays in the session and counts toward the next move.
func (c *Controller) dragCursor(s *Session, prev, p types.Point) {
	s.dragCarry += p.X - prev.X
	steps, carry := extractSteps(s.dragCarry, c.cfg.Thresholds.SpaceDragSensitivity)
	s.dragCarry = carry
	if steps == 0 {
		return
	}
	c.emit(gesture.Event{Type: gesture.Drag, Position: p, From: prev, To: p, Steps: steps})
}

// extractSteps splits distance into whole steps of sensitivity points,
// truncating toward zero, and the signed remainder.
func extractSteps(distance float32, sensitivity int) (int, float32) {
	if sensitivity <= 0 {
		return 0, distance
	}
	steps := int(distance / float32(sensitivity))
	return steps, distance - float32(steps*sensitivity)
}

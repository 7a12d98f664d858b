package gesture

import "math"

// Direction is the axis a swipe travelled along.
type Direction uint8

const (
	// None means the movement was too diagonal, or zero.
	None Direction = iota
	Up
	Down
	Left
	Right
)

// Directions lists the real directions in a stable order.
var Directions = [...]Direction{Up, Down, Left, Right}

// Swipe returns the gesture type reported for a swipe in direction d.
func (d Direction) Swipe() (Type, bool) {
	switch d {
	case Up:
		return SwipeUp, true
	case Down:
		return SwipeDown, true
	case Left:
		return SwipeLeft, true
	case Right:
		return SwipeRight, true
	default:
		return 0, false
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return None, false
}

// Classify maps a displacement to a direction. dy grows downward. A movement
// counts as vertical when |dx|/|dy| is at most tangentThreshold and as
// horizontal when |dy|/|dx| is; anything in between is None.
//
// Purely horizontal movement maps to the direction dx points at (dx > 0 is
// Right), the same convention the diagonal branch uses.
func Classify(dx, dy, tangentThreshold float32) Direction {
	switch {
	case dx == 0 && dy == 0:
		return None
	case dx == 0:
		if dy < 0 {
			return Up
		}
		return Down
	case dy == 0:
		if dx > 0 {
			return Right
		}
		return Left
	}
	ax, ay := float32(math.Abs(float64(dx))), float32(math.Abs(float64(dy)))
	if ax/ay <= tangentThreshold {
		if dy < 0 {
			return Up
		}
		return Down
	}
	if ay/ax <= tangentThreshold {
		if dx > 0 {
			return Right
		}
		return Left
	}
	return None
}

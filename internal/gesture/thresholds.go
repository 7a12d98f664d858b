package gesture

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Thresholds is the numeric recognition policy. A keyboard holds one value and
// replaces it wholesale on reload.
type Thresholds struct {
	// DistanceThreshold is the travel in points before a swipe is considered.
	DistanceThreshold float32
	// TangentThreshold is the largest tan(angle) off axis a swipe may have.
	TangentThreshold float32

	LongPressDelay time.Duration
	RepeatDelay    time.Duration
	RepeatInterval time.Duration

	// ReleaseOutsideTolerance is the fraction of a key's size added on every
	// side within which a release still counts.
	ReleaseOutsideTolerance float32

	// SpaceDragSensitivity is the drag distance in points per cursor step.
	SpaceDragSensitivity int

	// DoubleTapInterval bounds the gap between two presses of one key that
	// count as a double tap.
	DoubleTapInterval time.Duration
}

// DefaultThresholds returns the stock policy: 15 degree swipe cone, half
// second long press.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DistanceThreshold:       10,
		TangentThreshold:        TangentForAngle(15),
		LongPressDelay:          500 * time.Millisecond,
		RepeatDelay:             400 * time.Millisecond,
		RepeatInterval:          100 * time.Millisecond,
		ReleaseOutsideTolerance: 0.75,
		SpaceDragSensitivity:    5,
		DoubleTapInterval:       300 * time.Millisecond,
	}
}

// TangentForAngle converts a cone half-angle in degrees to a tangent threshold.
func TangentForAngle(degrees float64) float32 {
	return float32(math.Tan(degrees * math.Pi / 180))
}

// Validate reports every field that is out of range.
func (t Thresholds) Validate() error {
	var errs []error
	if t.DistanceThreshold <= 0 {
		errs = append(errs, fmt.Errorf("distance threshold must be positive, got %v", t.DistanceThreshold))
	}
	if t.TangentThreshold <= 0 || t.TangentThreshold >= 1 {
		errs = append(errs, fmt.Errorf("tangent threshold must be in (0,1), got %v", t.TangentThreshold))
	}
	if t.LongPressDelay <= 0 {
		errs = append(errs, fmt.Errorf("long press delay must be positive, got %v", t.LongPressDelay))
	}
	if t.RepeatDelay <= 0 {
		errs = append(errs, fmt.Errorf("repeat delay must be positive, got %v", t.RepeatDelay))
	}
	if t.RepeatInterval <= 0 {
		errs = append(errs, fmt.Errorf("repeat interval must be positive, got %v", t.RepeatInterval))
	}
	if t.ReleaseOutsideTolerance < 0 {
		errs = append(errs, fmt.Errorf("release outside tolerance must not be negative, got %v", t.ReleaseOutsideTolerance))
	}
	if t.SpaceDragSensitivity <= 0 {
		errs = append(errs, fmt.Errorf("space drag sensitivity must be positive, got %d", t.SpaceDragSensitivity))
	}
	if t.DoubleTapInterval < 0 {
		errs = append(errs, fmt.Errorf("double tap interval must not be negative, got %v", t.DoubleTapInterval))
	}
	return errors.Join(errs...)
}

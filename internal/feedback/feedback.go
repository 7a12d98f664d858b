// Package feedback plays key feedback. The terminal has no speaker or motor
// of its own, so sound rings the terminal bell and haptics are logged.
package feedback

import (
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
)

// Beeper rings a bell. tcell.Screen implements it.
type Beeper interface {
	Beep() error
}

// Trigger decides which feedback channels fire.
type Trigger struct {
	beeper Beeper
	sound  bool
	haptic bool
	pulses int
}

// New creates a trigger. beeper may be nil when sound is off.
func New(beeper Beeper, sound, haptic bool) *Trigger {
	return &Trigger{beeper: beeper, sound: sound, haptic: haptic}
}

// Configure switches the channels, for config reloads.
func (t *Trigger) Configure(sound, haptic bool) {
	t.sound, t.haptic = sound, haptic
}

// Trigger plays the feedback for gesture g on a.
func (t *Trigger) Trigger(g gesture.Type, a keyboard.Action) {
	if t.sound && t.beeper != nil {
		if err := t.beeper.Beep(); err != nil {
			logger.Warnf("Feedback: beep failed: %v", err)
		}
	}
	if t.haptic {
		t.pulses++
		logger.DebugTagf("feedback", "haptic pulse %d for %v on %v", t.pulses, g, a)
	}
}

// Pulses counts haptic pulses so far.
func (t *Trigger) Pulses() int { return t.pulses }

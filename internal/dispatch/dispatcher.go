// Package dispatch executes gestures: it resolves the effect bound to a
// gesture on an action or key, decides feedback, runs the effect against a
// command sink and applies the post-effects of a completed tap.
package dispatch

import (
	"strings"

	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
)

// CommandSink receives resolved effects. Calls are fire and forget.
type CommandSink interface {
	InsertText(s string)
	DeleteBackward(count int)
	AdjustCursor(offset int)
	SetKeyboardCase(c keyboard.Case)
	SetKeyboardType(t keyboard.Type)
	OpenMenu(m keyboard.MenuKind)
}

// FeedbackTrigger plays tap sounds and haptics.
type FeedbackTrigger interface {
	Trigger(g gesture.Type, a keyboard.Action)
}

// TextContext describes the text around the cursor.
type TextContext interface {
	HasComposition() bool
	TextBeforeCursor() string
}

// ReplacementPolicy may substitute the action of a gesture.
type ReplacementPolicy interface {
	Replacement(g gesture.Type, a keyboard.Action) (keyboard.Action, bool)
}

// CalloutShower opens the secondary character pop-up of a key.
type CalloutShower interface {
	Show(k *keyboard.Key)
}

// FrequencyRegistry records use of symbols and emoji.
type FrequencyRegistry interface {
	Register(a keyboard.Action)
}

// Behavior holds the switches that change effects and post-effects.
type Behavior struct {
	AutoLowercase              bool
	ReturnToPrimaryAfterSymbol bool
	SpaceCursorDrag            bool
}

// Config wires a Dispatcher. Only Sink is required.
type Config struct {
	Sink        CommandSink
	Feedback    FeedbackTrigger
	Context     TextContext
	Replacement ReplacementPolicy
	Clipboard   Clipboard
	Callout     CalloutShower
	Frequency   FrequencyRegistry
	Events      *event.Manager
	Behavior    Behavior
}

// Dispatcher runs gestures against the command sink and tracks the keyboard
// case and type it has set.
type Dispatcher struct {
	cfg    Config
	kbCase keyboard.Case
	kbType keyboard.Type
}

// New creates a dispatcher in lower case on the alphabetic keyboard.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{cfg: cfg}
}

// Case returns the current keyboard case.
func (d *Dispatcher) Case() keyboard.Case { return d.kbCase }

// KeyboardType returns the keyboard type last set.
func (d *Dispatcher) KeyboardType() keyboard.Type { return d.kbType }

// SetBehavior replaces the behavior switches, for config reloads.
func (d *Dispatcher) SetBehavior(b Behavior) { d.cfg.Behavior = b }

// SetReplacement replaces the replacement policy, for config reloads.
func (d *Dispatcher) SetReplacement(p ReplacementPolicy) { d.cfg.Replacement = p }

// SetKeyboardType switches the keyboard type outside of any gesture, as after
// a config reload.
func (d *Dispatcher) SetKeyboardType(t keyboard.Type) { d.setType(t) }

// CanHandle reports whether g has an effect on a. It has no side effects.
func (d *Dispatcher) CanHandle(g gesture.Type, a keyboard.Action) bool {
	return EffectFor(g, a, d.cfg.Behavior).Exists()
}

// CanHandleKey is CanHandle for a key, taking its swipe bindings and callouts
// into account.
func (d *Dispatcher) CanHandleKey(g gesture.Type, k *keyboard.Key) bool {
	if g.IsSwipe() {
		_, eff := d.swipeEffect(g, k)
		return eff.Exists()
	}
	return d.keyEffect(g, k).Exists()
}

// Dispatch runs gesture ev on action a.
func (d *Dispatcher) Dispatch(ev gesture.Event, a keyboard.Action) {
	d.dispatch(ev, a, nil, true)
}

// DispatchKey runs gesture ev on key k. Swipes run the one-shot effect of the
// bound action, without feedback or post-effects.
func (d *Dispatcher) DispatchKey(ev gesture.Event, k *keyboard.Key) {
	if !ev.Type.IsSwipe() {
		d.dispatch(ev, k.Action, k, true)
		return
	}
	a, eff := d.swipeEffect(ev.Type, k)
	if !eff.Exists() {
		logger.DebugTagf("dispatch", "%v on %v: no swipe binding", ev.Type, k)
		return
	}
	logger.DebugTagf("dispatch", "%v on %v: %v", ev.Type, k, eff)
	d.execute(eff, ev, a, k)
	d.cfg.Events.Dispatch(event.TypeGesture, event.GestureData{Key: k.ID, Action: a, Gesture: ev})
}

func (d *Dispatcher) swipeEffect(g gesture.Type, k *keyboard.Key) (keyboard.Action, Effect) {
	b, ok := k.Swipe(g.Direction())
	if !ok {
		return keyboard.Action{}, Effect{}
	}
	return b.Action, SwipeEffectFor(b.Action, d.cfg.Behavior)
}

// keyEffect adds the callout long press to the action's default effects.
func (d *Dispatcher) keyEffect(g gesture.Type, k *keyboard.Key) Effect {
	if g == gesture.LongPress && len(k.Callouts) > 0 && d.cfg.Callout != nil {
		return Effect{Kind: EffectShowCallout}
	}
	return EffectFor(g, k.Action, d.cfg.Behavior)
}

func (d *Dispatcher) effect(g gesture.Type, a keyboard.Action, k *keyboard.Key) Effect {
	if k != nil && a == k.Action {
		return d.keyEffect(g, k)
	}
	return EffectFor(g, a, d.cfg.Behavior)
}

func (d *Dispatcher) dispatch(ev gesture.Event, a keyboard.Action, k *keyboard.Key, replace bool) {
	if replace && d.cfg.Replacement != nil {
		if r, ok := d.cfg.Replacement.Replacement(ev.Type, a); ok && r != a {
			logger.DebugTagf("dispatch", "%v: %v replaced by %v", ev.Type, a, r)
			d.dispatch(ev, r, nil, false)
			return
		}
	}

	eff := d.effect(ev.Type, a, k)
	if !eff.Exists() {
		return
	}
	if d.cfg.Feedback != nil && d.wantsFeedback(ev.Type, a) {
		d.cfg.Feedback.Trigger(ev.Type, a)
	}
	logger.DebugTagf("dispatch", "%v on %v: %v", ev.Type, a, eff)
	d.execute(eff, ev, a, k)

	data := event.GestureData{Action: a, Gesture: ev}
	if k != nil {
		data.Key = k.ID
	}
	d.cfg.Events.Dispatch(event.TypeGesture, data)

	if ev.Type == gesture.Release {
		d.postEffects(a)
	}
}

// wantsFeedback is called only for gestures with an effect. Swipes are
// silent, and so is a repeated delete with nothing left to delete.
func (d *Dispatcher) wantsFeedback(g gesture.Type, a keyboard.Action) bool {
	if g.IsSwipe() {
		return false
	}
	if g == gesture.RepeatTick && a.IsBackspaceAction() && d.nothingToDelete() {
		return false
	}
	return true
}

func (d *Dispatcher) nothingToDelete() bool {
	tc := d.cfg.Context
	return tc != nil && !tc.HasComposition() && tc.TextBeforeCursor() == ""
}

func (d *Dispatcher) execute(eff Effect, ev gesture.Event, a keyboard.Action, k *keyboard.Key) {
	sink := d.cfg.Sink
	switch eff.Kind {
	case EffectInsertText:
		text := eff.Text
		if a.Kind == keyboard.KindCharacter && d.kbCase != keyboard.Lower {
			text = strings.ToUpper(text)
		}
		sink.InsertText(text)
	case EffectDeleteBackward:
		sink.DeleteBackward(eff.Count)
	case EffectAdjustCursor:
		sink.AdjustCursor(eff.Count)
	case EffectDragCursor:
		if ev.Steps != 0 {
			sink.AdjustCursor(ev.Steps)
		}
	case EffectToggleShift:
		if d.kbCase == keyboard.Lower {
			d.setCase(keyboard.Upper)
		} else {
			d.setCase(keyboard.Lower)
		}
	case EffectCapsLock:
		d.setCase(keyboard.CapsLocked)
	case EffectSetKeyboardType:
		d.setType(eff.Keyboard)
	case EffectOpenMenu:
		sink.OpenMenu(eff.Menu)
		d.cfg.Events.Dispatch(event.TypeMenuOpened, event.MenuOpenedData{Menu: eff.Menu})
	case EffectPaste:
		d.paste()
	case EffectShowCallout:
		if k != nil {
			d.cfg.Callout.Show(k)
		}
	case EffectArmCursorDrag:
		var id keyboard.ID
		if k != nil {
			id = k.ID
		}
		d.cfg.Events.Dispatch(event.TypeCursorDragArmed, event.CursorDragArmedData{Key: id})
	}
}

func (d *Dispatcher) paste() {
	if d.cfg.Clipboard == nil {
		return
	}
	text, err := d.cfg.Clipboard.ReadAll()
	if err != nil {
		logger.Warnf("Dispatcher: clipboard read failed: %v", err)
		return
	}
	if text == "" {
		return
	}
	d.cfg.Sink.InsertText(text)
}

func (d *Dispatcher) setCase(c keyboard.Case) {
	if c == d.kbCase {
		return
	}
	d.kbCase = c
	d.cfg.Sink.SetKeyboardCase(c)
	d.cfg.Events.Dispatch(event.TypeCaseChanged, event.CaseChangedData{Case: c})
}

func (d *Dispatcher) setType(t keyboard.Type) {
	if t == d.kbType {
		return
	}
	d.kbType = t
	d.cfg.Sink.SetKeyboardType(t)
	d.cfg.Events.Dispatch(event.TypeKeyboardTypeChanged, event.KeyboardTypeChangedData{Type: t})
}

// postEffects runs after a release effect.
func (d *Dispatcher) postEffects(a keyboard.Action) {
	b := d.cfg.Behavior
	if a.Kind == keyboard.KindCharacter && d.kbCase == keyboard.Upper && b.AutoLowercase {
		d.setCase(keyboard.Lower)
	}
	if a.Kind == keyboard.KindSymbol && d.kbType == keyboard.Symbolic && b.ReturnToPrimaryAfterSymbol {
		d.setType(keyboard.Alphabetic)
	}
	if a.TracksFrequency() && d.cfg.Frequency != nil {
		d.cfg.Frequency.Register(a)
	}
	d.cfg.Events.Dispatch(event.TypeTextContextResync, event.TextContextResyncData{})
}

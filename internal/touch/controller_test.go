package touch_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/touch"
	"github.com/bethropolis/softkeys/internal/touch/touchtest"
	"github.com/bethropolis/softkeys/internal/types"
)

// recorder is a Handler that records every gesture. When can is non-nil only
// the listed gesture types report an effect.
type recorder struct {
	can    map[gesture.Type]bool
	events []gesture.Event
	onEv   func(ev gesture.Event)
}

func (r *recorder) CanHandleKey(g gesture.Type, k *keyboard.Key) bool {
	return r.can == nil || r.can[g]
}

func (r *recorder) DispatchKey(ev gesture.Event, k *keyboard.Key) {
	r.events = append(r.events, ev)
	if r.onEv != nil {
		r.onEv(ev)
	}
}

func (r *recorder) types() []gesture.Type {
	var ts []gesture.Type
	for _, ev := range r.events {
		ts = append(ts, ev.Type)
	}
	return ts
}

func (r *recorder) count(t gesture.Type) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func can(ts ...gesture.Type) map[gesture.Type]bool {
	m := make(map[gesture.Type]bool)
	for _, t := range ts {
		m[t] = true
	}
	return m
}

type fakeOverlay struct {
	claimed bool
	reads   int
	ended   int
}

func (o *fakeOverlay) HasClaimedGesture() bool { o.reads++; return o.claimed }
func (o *fakeOverlay) NotifyGestureEnded()     { o.ended++ }

// leakyClock models a timer callback that was already queued when Stop ran:
// Stop reports failure and the callback still fires.
type leakyClock struct {
	*touchtest.ManualClock
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

func (c leakyClock) AfterFunc(d time.Duration, f func()) touch.Timer {
	c.ManualClock.AfterFunc(d, f)
	return leakyTimer{}
}

type fixture struct {
	clock   *touchtest.ManualClock
	handler *recorder
	overlay *fakeOverlay
	key     *keyboard.Key
	ctrl    *touch.Controller
	pressed []bool
}

func newFixture(t *testing.T, action keyboard.Action, handles map[gesture.Type]bool, opts ...func(*touch.Config)) *fixture {
	t.Helper()
	f := &fixture{
		clock:   touchtest.NewManualClock(),
		handler: &recorder{can: handles},
		overlay: &fakeOverlay{},
		key:     keyboard.NewKey(keyboard.ID{}, action),
	}
	if err := f.key.AddSwipe(keyboard.SwipeBinding{Direction: gesture.Up, Action: keyboard.Symbol("1"), Visible: true}); err != nil && !action.IsSpacer() {
		t.Fatal(err)
	}
	layout := keyboard.NewLayout(keyboard.Alphabetic, [][]*keyboard.Key{{f.key}})
	layout.SetBounds(f.key.ID, types.R(0, 0, 40, 40))
	cfg := touch.Config{
		Key:        f.key,
		Layout:     layout,
		Thresholds: gesture.DefaultThresholds(),
		Clock:      f.clock,
		Handler:    f.handler,
		Overlay:    f.overlay,
		OnPressedChanged: func(_ *keyboard.Key, pressed bool) {
			f.pressed = append(f.pressed, pressed)
		},
	}
	for _, o := range opts {
		o(&cfg)
	}
	f.ctrl = touch.NewController(cfg)
	return f
}

func expectTypes(t *testing.T, r *recorder, want ...gesture.Type) {
	t.Helper()
	if got := r.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("gestures = %v, want %v", got, want)
	}
}

func TestTapEmitsPressThenRelease(t *testing.T) {
	f := newFixture(t, keyboard.Character("q"), nil)
	f.ctrl.Press(types.Pt(20, 20), 1)
	if !f.ctrl.IsPressed() {
		t.Fatalf("not pressed after press")
	}
	f.clock.Advance(50 * time.Millisecond)
	f.ctrl.Release(types.Pt(22, 21))

	expectTypes(t, f.handler, gesture.Press, gesture.Release)
	if f.ctrl.IsPressed() || f.ctrl.Session() != nil {
		t.Errorf("session survived release")
	}
	if f.overlay.ended != 1 || f.overlay.reads != 1 {
		t.Errorf("overlay reads=%d ended=%d, want 1 and 1", f.overlay.reads, f.overlay.ended)
	}
	if !reflect.DeepEqual(f.pressed, []bool{true, false}) {
		t.Errorf("pressed changes = %v", f.pressed)
	}
	if f.clock.Pending() != 0 {
		t.Errorf("%d timers still pending", f.clock.Pending())
	}
}

func TestIllegalSequencesIgnored(t *testing.T) {
	f := newFixture(t, keyboard.Character("q"), can(gesture.Press, gesture.Release))

	f.ctrl.Move(types.Pt(1, 1))
	f.ctrl.Release(types.Pt(1, 1))
	f.ctrl.Cancel()
	expectTypes(t, f.handler)

	f.ctrl.Press(types.Pt(20, 20), 1)
	f.ctrl.Press(types.Pt(30, 30), 2)
	f.ctrl.Release(types.Pt(20, 20))
	f.ctrl.Release(types.Pt(20, 20))
	expectTypes(t, f.handler, gesture.Press, gesture.Release)
}

func TestSpacerNeverPresses(t *testing.T) {
	f := newFixture(t, keyboard.Spacer(), nil)
	f.ctrl.Press(types.Pt(20, 20), 1)
	f.ctrl.Release(types.Pt(20, 20))
	expectTypes(t, f.handler)
}

func TestDoubleTap(t *testing.T) {
	t.Run("consumes tap when handled", func(t *testing.T) {
		f := newFixture(t, keyboard.Shift(), can(gesture.Release, gesture.DoubleTap))
		f.ctrl.Press(types.Pt(20, 20), 2)
		f.ctrl.Release(types.Pt(20, 20))
		expectTypes(t, f.handler, gesture.Press, gesture.DoubleTap)
	})
	t.Run("tap still applies when unhandled", func(t *testing.T) {
		f := newFixture(t, keyboard.Character("q"), can(gesture.Release))
		f.ctrl.Press(types.Pt(20, 20), 2)
		f.ctrl.Release(types.Pt(20, 20))
		expectTypes(t, f.handler, gesture.Press, gesture.DoubleTap, gesture.Release)
	})
}

func TestStaleTimerIsNoop(t *testing.T) {
	clock := leakyClock{touchtest.NewManualClock()}
	f := newFixture(t, keyboard.Backspace(), nil, func(c *touch.Config) { c.Clock = clock })
	f.clock = clock.ManualClock

	f.ctrl.Press(types.Pt(20, 20), 1)
	f.clock.Advance(100 * time.Millisecond)
	f.ctrl.Release(types.Pt(20, 20))
	n := len(f.handler.events)

	f.clock.Advance(time.Second)
	if got := f.handler.events[n:]; len(got) != 0 {
		t.Errorf("stale timers emitted %v", got)
	}
	expectTypes(t, f.handler, gesture.Press, gesture.Release)
}

func TestStaleTimerAfterRepress(t *testing.T) {
	clock := leakyClock{touchtest.NewManualClock()}
	f := newFixture(t, keyboard.Character("q"), can(gesture.LongPress, gesture.Release), func(c *touch.Config) { c.Clock = clock })
	f.clock = clock.ManualClock

	f.ctrl.Press(types.Pt(20, 20), 1)
	f.clock.Advance(100 * time.Millisecond)
	f.ctrl.Release(types.Pt(20, 20))
	f.clock.Advance(100 * time.Millisecond)
	f.ctrl.Press(types.Pt(20, 20), 1)

	// The first press's timer falls due 300ms into the second press.
	f.clock.Advance(300 * time.Millisecond)
	if n := f.handler.count(gesture.LongPress); n != 0 {
		t.Fatalf("long press from the first touch fired on the second")
	}
	f.clock.Advance(200 * time.Millisecond)
	if n := f.handler.count(gesture.LongPress); n != 1 {
		t.Errorf("long presses = %d, want 1", n)
	}
}

func TestRepeatOnlyWhileHeld(t *testing.T) {
	f := newFixture(t, keyboard.Backspace(), can(gesture.Press, gesture.RepeatTick))
	th := gesture.DefaultThresholds()

	f.ctrl.Press(types.Pt(20, 20), 1)
	f.clock.Advance(th.RepeatDelay - time.Millisecond)
	if n := f.handler.count(gesture.RepeatTick); n != 0 {
		t.Fatalf("repeat before delay: %d", n)
	}
	f.clock.Advance(time.Millisecond + 3*th.RepeatInterval)
	if n := f.handler.count(gesture.RepeatTick); n != 4 {
		t.Errorf("repeat ticks while held = %d, want 4", n)
	}
	f.ctrl.Release(types.Pt(20, 20))
	f.clock.Advance(10 * th.RepeatInterval)
	if n := f.handler.count(gesture.RepeatTick); n != 4 {
		t.Errorf("repeat ticks after release = %d, want 4", n)
	}
	if f.clock.Pending() != 0 {
		t.Errorf("%d timers pending after release", f.clock.Pending())
	}
}

func TestTimersArmedOnlyWhenHandled(t *testing.T) {
	f := newFixture(t, keyboard.Character("q"), can(gesture.Release))
	f.ctrl.Press(types.Pt(20, 20), 1)
	if f.clock.Pending() != 0 {
		t.Errorf("armed %d timers for a key without long press or repeat", f.clock.Pending())
	}
}

func TestReleaseOutsideTolerance(t *testing.T) {
	for _, tc := range []struct {
		label string
		at    types.Point
		want  bool
	}{
		{"inside", types.Pt(39, 39), true},
		{"nine points right", types.Pt(69, 20), true},
		{"edge of tolerance", types.Pt(-30, -30), true},
		{"far right", types.Pt(100, 20), false},
		{"far below", types.Pt(20, 71), false},
	} {
		t.Run(tc.label, func(t *testing.T) {
			f := newFixture(t, keyboard.Character("q"), can(gesture.Release))
			f.ctrl.Press(types.Pt(20, 20), 1)
			f.ctrl.Release(tc.at)
			if got := f.handler.count(gesture.Release) == 1; got != tc.want {
				t.Errorf("release at %v fired=%t, want %t", tc.at, got, tc.want)
			}
			if f.ctrl.IsPressed() {
				t.Errorf("still pressed")
			}
		})
	}
}

func TestSwipeSuppressesTap(t *testing.T) {
	f := newFixture(t, keyboard.Character("q"), can(gesture.Release, gesture.SwipeUp))
	f.ctrl.Press(types.Pt(20, 30), 1)
	f.clock.Advance(50 * time.Millisecond)
	f.ctrl.Move(types.Pt(21, 24))
	if _, ok := f.ctrl.Session().ResolvedSwipe(); ok {
		t.Fatalf("swipe resolved below the distance threshold")
	}
	f.ctrl.Move(types.Pt(21, 12))

	sw, ok := f.ctrl.Session().ResolvedSwipe()
	want := touch.SwipeEffect{Gesture: gesture.SwipeUp, Direction: gesture.Up, Action: keyboard.Symbol("1")}
	if !ok || sw != want {
		t.Fatalf("resolved swipe = %+v, %v; want %+v", sw, ok, want)
	}
	if f.ctrl.Session().AppliesRelease() {
		t.Errorf("resolved swipe left the release action enabled")
	}
	// Sticky: a later move in another direction does not re-resolve.
	f.ctrl.Move(types.Pt(80, 12))
	if sw, _ := f.ctrl.Session().ResolvedSwipe(); sw != want {
		t.Errorf("swipe re-resolved to %+v", sw)
	}
	expectTypes(t, f.handler, gesture.Press)

	// Swipes run at release, wherever the finger lifts.
	f.ctrl.Release(types.Pt(500, 500))
	expectTypes(t, f.handler, gesture.Press, gesture.SwipeUp)
}

func TestSwipeNeedsBindingAndAngle(t *testing.T) {
	for _, tc := range []struct {
		label string
		to    types.Point
	}{
		{"unbound direction", types.Pt(20, 50)},
		{"too diagonal", types.Pt(40, 0)},
	} {
		t.Run(tc.label, func(t *testing.T) {
			f := newFixture(t, keyboard.Character("q"), can(gesture.Release))
			f.ctrl.Press(types.Pt(20, 20), 1)
			f.ctrl.Move(tc.to)
			if _, ok := f.ctrl.Session().ResolvedSwipe(); ok {
				t.Fatalf("swipe resolved")
			}
			f.ctrl.Release(types.Pt(20, 20))
			expectTypes(t, f.handler, gesture.Press, gesture.Release)
		})
	}
}

func TestSwipeWithoutEffectKeepsTap(t *testing.T) {
	// The up binding exists but the handler has nothing to run for it.
	f := newFixture(t, keyboard.Character("q"), can(gesture.Release))
	f.ctrl.Press(types.Pt(20, 30), 1)
	f.ctrl.Move(types.Pt(20, 5))
	if _, ok := f.ctrl.Session().ResolvedSwipe(); ok {
		t.Fatalf("swipe without an effect resolved")
	}
	if !f.ctrl.Session().AppliesRelease() {
		t.Errorf("swipe without an effect suppressed the release")
	}
	f.ctrl.Release(types.Pt(20, 5))
	expectTypes(t, f.handler, gesture.Press, gesture.Release)
}

func TestSwipeIsTimeGated(t *testing.T) {
	f := newFixture(t, keyboard.Character("q"), can(gesture.Release))
	f.ctrl.Press(types.Pt(20, 30), 1)
	f.clock.Advance(gesture.DefaultThresholds().LongPressDelay)
	f.ctrl.Move(types.Pt(20, 0))
	if _, ok := f.ctrl.Session().ResolvedSwipe(); ok {
		t.Errorf("swipe resolved after the long press delay")
	}
}

func TestLongPress(t *testing.T) {
	t.Run("handled long press replaces tap", func(t *testing.T) {
		f := newFixture(t, keyboard.OpenMenu(keyboard.MenuInputSwitcher), can(gesture.Release, gesture.LongPress))
		f.ctrl.Press(types.Pt(20, 20), 1)
		f.clock.Advance(gesture.DefaultThresholds().LongPressDelay)
		f.ctrl.Release(types.Pt(20, 20))
		expectTypes(t, f.handler, gesture.Press, gesture.LongPress)
	})
	t.Run("resolved swipe blocks long press", func(t *testing.T) {
		f := newFixture(t, keyboard.Character("q"), can(gesture.Release, gesture.LongPress, gesture.SwipeUp))
		f.ctrl.Press(types.Pt(20, 30), 1)
		f.ctrl.Move(types.Pt(20, 5))
		f.clock.Advance(time.Second)
		f.ctrl.Release(types.Pt(20, 5))
		expectTypes(t, f.handler, gesture.Press, gesture.SwipeUp)
	})
}

func TestOverlaySuppressionWins(t *testing.T) {
	f := newFixture(t, keyboard.Character("q"), can(gesture.Release))
	f.ctrl.Press(types.Pt(20, 20), 1)
	f.overlay.claimed = true
	f.ctrl.Release(types.Pt(20, 20))

	expectTypes(t, f.handler, gesture.Press)
	if f.overlay.reads != 1 {
		t.Errorf("overlay flag read %d times, want exactly once", f.overlay.reads)
	}
	if f.overlay.ended != 1 {
		t.Errorf("NotifyGestureEnded called %d times", f.overlay.ended)
	}
}

func TestCancel(t *testing.T) {
	f := newFixture(t, keyboard.Backspace(), nil)
	f.ctrl.OnPointerEvent(touch.PhaseBegin, types.Pt(20, 20), 1)
	f.ctrl.OnPointerEvent(touch.PhaseCancel, types.Point{}, 0)

	if f.ctrl.IsPressed() {
		t.Fatalf("pressed after cancel")
	}
	if f.clock.Pending() != 0 {
		t.Errorf("%d timers pending after cancel", f.clock.Pending())
	}
	f.clock.Advance(5 * time.Second)
	f.ctrl.OnPointerEvent(touch.PhaseEnd, types.Pt(20, 20), 0)
	expectTypes(t, f.handler, gesture.Press)
	if f.overlay.ended != 1 {
		t.Errorf("cleanup ran %d times", f.overlay.ended)
	}
}

func TestHandlerCancelsDuringPress(t *testing.T) {
	f := newFixture(t, keyboard.Backspace(), nil)
	f.handler.onEv = func(ev gesture.Event) {
		if ev.Type == gesture.Press {
			f.ctrl.Cancel()
		}
	}
	f.ctrl.Press(types.Pt(20, 20), 1)
	if f.ctrl.IsPressed() || f.clock.Pending() != 0 {
		t.Errorf("pressed=%t pending=%d after cancel from handler", f.ctrl.IsPressed(), f.clock.Pending())
	}
}

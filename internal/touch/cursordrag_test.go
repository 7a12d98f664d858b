package touch_test

import (
	"testing"
	"time"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/touch"
	"github.com/bethropolis/softkeys/internal/types"
)

func spaceFixture(t *testing.T, cursorDrag bool) *fixture {
	f := newFixture(t, keyboard.Space(), can(gesture.Release, gesture.Drag), func(c *touch.Config) {
		c.SpaceCursorDrag = cursorDrag
	})
	return f
}

func TestCursorDragCarryOver(t *testing.T) {
	f := spaceFixture(t, true)
	f.ctrl.Press(types.Pt(20, 20), 1)
	f.clock.Advance(gesture.DefaultThresholds().LongPressDelay)
	if !f.ctrl.Session().CursorDragArmed() {
		t.Fatalf("cursor drag not armed by long press")
	}

	for i, tc := range []struct {
		x         float32
		wantSteps int
		wantCarry float32
	}{
		{23, 0, 3},
		{26, 1, 1},
		{29, 1, 4},
	} {
		f.ctrl.Move(types.Pt(tc.x, 20))
		steps := 0
		for _, ev := range f.handler.events {
			if ev.Type == gesture.Drag {
				steps += ev.Steps
			}
		}
		if steps != tc.wantSteps || f.ctrl.Session().DragCarry() != tc.wantCarry {
			t.Errorf("after move %d: steps=%d carry=%v, want %d and %v", i+1, steps, f.ctrl.Session().DragCarry(), tc.wantSteps, tc.wantCarry)
		}
	}
	if n := f.handler.count(gesture.Drag); n != 1 {
		t.Errorf("drag events = %d, want 1", n)
	}

	f.ctrl.Release(types.Pt(29, 20))
	if f.handler.count(gesture.Release) != 0 {
		t.Errorf("space inserted after a cursor drag")
	}
}

func TestCursorDragBothWays(t *testing.T) {
	f := spaceFixture(t, true)
	f.ctrl.Press(types.Pt(20, 20), 1)
	f.clock.Advance(time.Second)
	f.ctrl.Move(types.Pt(8, 25))  // -12: two steps left, carry -2
	f.ctrl.Move(types.Pt(20, 25)) // +12 -> carry 10: two steps right

	var got []int
	for _, ev := range f.handler.events {
		if ev.Type == gesture.Drag {
			got = append(got, ev.Steps)
		}
	}
	if len(got) != 2 || got[0] != -2 || got[1] != 2 {
		t.Errorf("drag steps = %v, want [-2 2]", got)
	}
	if c := f.ctrl.Session().DragCarry(); c != 0 {
		t.Errorf("carry = %v, want 0", c)
	}
}

func TestCursorDragNeedsConfigAndLongPress(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		f := spaceFixture(t, false)
		f.ctrl.Press(types.Pt(20, 20), 1)
		f.clock.Advance(time.Second)
		f.ctrl.Move(types.Pt(39, 20))
		f.ctrl.Release(types.Pt(39, 20))
		expectTypes(t, f.handler, gesture.Press, gesture.Release)
	})
	t.Run("before long press", func(t *testing.T) {
		f := spaceFixture(t, true)
		f.ctrl.Press(types.Pt(5, 20), 1)
		f.ctrl.Move(types.Pt(35, 20))
		if f.handler.count(gesture.Drag) != 0 {
			t.Errorf("drag before long press")
		}
	})
	t.Run("disarmed at release", func(t *testing.T) {
		f := spaceFixture(t, true)
		f.ctrl.Press(types.Pt(20, 20), 1)
		f.clock.Advance(time.Second)
		f.ctrl.Release(types.Pt(20, 20))
		f.ctrl.Press(types.Pt(20, 20), 1)
		f.ctrl.Move(types.Pt(35, 20))
		if f.ctrl.Session().CursorDragArmed() || f.handler.count(gesture.Drag) != 0 {
			t.Errorf("cursor drag survived release")
		}
	})
}

package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/theme"
	"github.com/bethropolis/softkeys/internal/types"
	"github.com/gdamore/tcell/v2"
)

func newTestTUI(t *testing.T, w, h int) *TUI {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	tm, err := NewWithScreen(s, &theme.KeysDark)
	if err != nil {
		t.Fatalf("NewWithScreen: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(tm.Close)
	return tm
}

func row(s tcell.Screen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func testLayout() *keyboard.Layout {
	a := keyboard.NewKey(keyboard.ID{Row: 0, Column: 0}, keyboard.Character("a"))
	_ = a.AddSwipe(keyboard.SwipeBinding{Direction: gesture.Up, Action: keyboard.Symbol("1"), Visible: true})
	spacer := keyboard.NewKey(keyboard.ID{Row: 0, Column: 1}, keyboard.Spacer())
	spacer.Width = 0.5
	shift := keyboard.NewKey(keyboard.ID{Row: 0, Column: 2}, keyboard.Shift())
	shift.Width = 1.5
	return keyboard.NewLayout(keyboard.Alphabetic, [][]*keyboard.Key{{a, spacer, shift}})
}

func TestCellPointRoundTrip(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {3, 7}, {79, 23}} {
		x, y := PointToCell(CellToPoint(c[0], c[1]))
		if x != c[0] || y != c[1] {
			t.Errorf("PointToCell(CellToPoint(%v)) = (%d,%d)", c, x, y)
		}
	}
	if x, y := PointToCell(types.Pt(-1, -1)); x != -1 || y != -1 {
		t.Errorf("negative point maps to (%d,%d), want (-1,-1)", x, y)
	}
}

func TestArrangeSharesWidth(t *testing.T) {
	l := testLayout()
	Arrange(l, 0, 2, 30)

	tests := []struct {
		col    int
		x0, x1 int
	}{
		{0, 0, 10},
		{1, 10, 15},
		{2, 15, 30},
	}
	for _, tt := range tests {
		k, _ := l.Key(keyboard.ID{Row: 0, Column: tt.col})
		x0, y0, x1, y1 := CellRect(l.Bounds(k))
		if x0 != tt.x0 || x1 != tt.x1 || y0 != 2 || y1 != 2+KeyRows {
			t.Errorf("key %d at (%d,%d)-(%d,%d), want x %d-%d rows 2-%d", tt.col, x0, y0, x1, y1, tt.x0, tt.x1, 2+KeyRows)
		}
	}

	// A click in the middle of the a key hits it; one on the spacer misses.
	if k, ok := l.HitTest(CellToPoint(4, 3)); !ok || k.Action != keyboard.Character("a") {
		t.Errorf("hit test on a = %v, %v", k, ok)
	}
	if _, ok := l.HitTest(CellToPoint(12, 3)); ok {
		t.Errorf("spacer was hit")
	}
	if KeyboardHeight(l) != KeyRows {
		t.Errorf("KeyboardHeight = %d", KeyboardHeight(l))
	}
}

func TestDrawKeyboardLabels(t *testing.T) {
	tm := newTestTUI(t, 30, 6)
	l := testLayout()
	Arrange(l, 0, 3, 30)

	DrawKeyboard(tm, l, KeyState{Case: keyboard.Upper}, &theme.KeysDark)
	s := tm.GetScreen()
	if top := row(s, 3); !strings.Contains(top, "1") {
		t.Errorf("swipe hint missing on top row: %q", top)
	}
	if mid := row(s, 4); !strings.Contains(mid, "A") || !strings.Contains(mid, "⇧") {
		t.Errorf("labels missing on middle row: %q", mid)
	}
	if above := row(s, 1); strings.TrimSpace(above) != "" {
		t.Errorf("nothing pressed but %q drawn above the keys", above)
	}

	pressed := func(id keyboard.ID) bool { return id.Column == 0 }
	DrawKeyboard(tm, l, KeyState{Case: keyboard.Lower, Pressed: pressed}, &theme.KeysDark)
	if bubble := row(s, 1); !strings.Contains(bubble, "a") {
		t.Errorf("press preview missing: %q", bubble)
	}
}

func TestWrapDocument(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		cursor     int
		width      int
		wantLines  []string
		cursorLine int
	}{
		{"empty", "", 0, 5, []string{" "}, 0},
		{"wraps", "abcdefg", 7, 4, []string{"abcd", "efg "}, 1},
		{"newline", "ab\ncd", 1, 10, []string{"ab", "cd"}, 0},
		{"cursor on newline", "ab\ncd", 2, 10, []string{"ab ", "cd"}, 0},
		{"wide cluster", "a日b", 3, 3, []string{"a日", "b "}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, cursorLine := wrapDocument(tt.text, tt.cursor, tt.width)
			var got []string
			for _, line := range lines {
				var b strings.Builder
				for _, c := range line {
					b.WriteString(c.text)
				}
				got = append(got, b.String())
			}
			if strings.Join(got, "|") != strings.Join(tt.wantLines, "|") {
				t.Errorf("lines = %q, want %q", got, tt.wantLines)
			}
			if cursorLine != tt.cursorLine {
				t.Errorf("cursor line = %d, want %d", cursorLine, tt.cursorLine)
			}
		})
	}
}

func TestPostFuncDelivers(t *testing.T) {
	tm := newTestTUI(t, 10, 5)
	ran := false
	tm.PostFunc(func() { ran = true })
	for {
		if ev, ok := tm.PollEvent().(*tcell.EventInterrupt); ok {
			ev.Data().(func())()
			break
		}
	}
	if !ran {
		t.Errorf("posted func did not arrive")
	}
}

func TestPostFuncAfterCloseReturns(t *testing.T) {
	tm := newTestTUI(t, 10, 5)
	tm.Close()
	done := make(chan struct{})
	go func() {
		// More posts than any event queue holds.
		for i := 0; i < 1000; i++ {
			tm.PostFunc(func() {})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("PostFunc blocked after Close")
	}
}

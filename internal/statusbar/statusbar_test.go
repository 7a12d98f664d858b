package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/theme"
	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func lastLine(s tcell.Screen) string {
	w, h := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, h-1)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawModeAndInfo(t *testing.T) {
	s := newScreen(t, 60, 3)
	sb := New(DefaultConfig())
	sb.SetKeyboard(keyboard.Alphabetic, keyboard.Upper)
	sb.SetRecent([]string{"!", "?"})
	sb.SetTextInfo(2, 5)

	sb.Draw(s, 60, 3, &theme.KeysDark)
	line := lastLine(s)

	for _, want := range []string{"ALPHABETIC upper", "recent: ! ?", "2/5"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q missing %q", line, want)
		}
	}

	sb.SetKeyboard(keyboard.Symbolic, keyboard.Upper)
	sb.SetCursorDrag(true)
	sb.Draw(s, 60, 3, &theme.KeysDark)
	line = lastLine(s)
	if !strings.Contains(line, "SYMBOLIC -- MOVE CURSOR") || strings.Contains(line, "upper") {
		t.Errorf("status line %q", line)
	}
}

func TestTemporaryMessageExpires(t *testing.T) {
	s := newScreen(t, 40, 2)
	now := time.Unix(0, 0)
	sb := New(Config{MessageTimeout: time.Second, MaxRecent: 4})
	sb.now = func() time.Time { return now }

	sb.SetTemporaryMessage("reloaded %s", "config")
	sb.Draw(s, 40, 2, &theme.KeysDark)
	if line := lastLine(s); !strings.Contains(line, "reloaded config") {
		t.Fatalf("message not shown: %q", line)
	}

	now = now.Add(2 * time.Second)
	sb.Draw(s, 40, 2, &theme.KeysDark)
	if line := lastLine(s); strings.Contains(line, "reloaded") || !strings.Contains(line, "ALPHABETIC") {
		t.Errorf("message not cleared: %q", line)
	}
}

func TestInfoDroppedWhenNarrow(t *testing.T) {
	s := newScreen(t, 18, 1)
	sb := New(DefaultConfig())
	sb.SetRecent([]string{"@", "#", "$"})
	sb.Draw(s, 18, 1, &theme.KeysDark)
	line := lastLine(s)
	if strings.Contains(line, "recent") {
		t.Errorf("info should not overlap the mode: %q", line)
	}
}

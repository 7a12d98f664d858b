package frequency

import (
	"reflect"
	"testing"

	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/keyboard"
)

func TestRecentOrderAndEviction(t *testing.T) {
	events := event.NewManager()
	var published []string
	events.Subscribe(event.TypeRecentChanged, func(e event.Event) bool {
		published = e.Data.(event.RecentChangedData).Recent
		return true
	})
	s, err := New(3, events)
	if err != nil {
		t.Fatal(err)
	}

	for _, a := range []keyboard.Action{
		keyboard.Symbol("@"),
		keyboard.Emoji("🎉"),
		keyboard.Character("a"), // not tracked
		keyboard.Symbol("#"),
		keyboard.Symbol("@"),
		keyboard.Symbol("%"),
	} {
		s.Register(a)
	}

	want := []string{"%", "@", "#"}
	if got := s.Recent(); !reflect.DeepEqual(got, want) {
		t.Errorf("Recent() = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(published, want) {
		t.Errorf("published %q, want %q", published, want)
	}
	if s.Count("@") != 2 || s.Count("🎉") != 0 {
		t.Errorf("counts @=%d 🎉=%d", s.Count("@"), s.Count("🎉"))
	}

	s.Resize(1)
	if got := s.Recent(); !reflect.DeepEqual(got, []string{"%"}) {
		t.Errorf("after resize: %q", got)
	}
}

func TestNewRejectsBadSize(t *testing.T) {
	if _, err := New(0, nil); err == nil {
		t.Errorf("size 0 accepted")
	}
}

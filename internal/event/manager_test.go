package event

import (
	"testing"

	"github.com/bethropolis/softkeys/internal/keyboard"
)

func TestDispatchOrderAndFiltering(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeCaseChanged, func(e Event) bool {
		got = append(got, "first:"+e.Data.(CaseChangedData).Case.String())
		return false
	})
	m.Subscribe(TypeCaseChanged, func(e Event) bool {
		got = append(got, "second")
		return true
	})
	m.Subscribe(TypeMenuOpened, func(e Event) bool {
		got = append(got, "menu")
		return true
	})

	m.Dispatch(TypeCaseChanged, CaseChangedData{Case: keyboard.CapsLocked})
	if len(got) != 2 || got[0] != "first:caps" || got[1] != "second" {
		t.Errorf("got %q", got)
	}
	m.Dispatch(TypeAppQuit, AppQuitData{})
	if len(got) != 2 {
		t.Errorf("unsubscribed type delivered: %q", got)
	}
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	calls := 0
	m.Subscribe(TypeTextContextResync, func(e Event) bool {
		calls++
		m.Subscribe(TypeTextContextResync, func(Event) bool { calls += 10; return true })
		return true
	})
	m.Dispatch(TypeTextContextResync, TextContextResyncData{})
	if calls != 1 {
		t.Errorf("calls after first dispatch = %d, want 1", calls)
	}
	m.Dispatch(TypeTextContextResync, TextContextResyncData{})
	if calls != 12 {
		t.Errorf("calls after second dispatch = %d, want 12", calls)
	}
}

func TestNilManagerDrops(t *testing.T) {
	var m *Manager
	m.Dispatch(TypeAppReady, AppReadyData{})
}

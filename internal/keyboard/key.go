package keyboard

import (
	"fmt"

	"github.com/bethropolis/softkeys/internal/gesture"
)

// ID locates a key in its layout.
type ID struct {
	Row, Column int
}

func (id ID) String() string {
	return fmt.Sprintf("r%dc%d", id.Row, id.Column)
}

// SwipeBinding attaches a secondary action to a swipe direction. Visible
// bindings get a hint drawn on the key.
type SwipeBinding struct {
	Direction gesture.Direction
	Action    Action
	Visible   bool
}

// Key is a virtual key. Keys are owned by a Layout and replaced wholesale when
// the layout is reloaded.
type Key struct {
	ID     ID
	Action Action
	Label  string
	// Width is relative to the other keys of the row.
	Width float32
	// Callouts are secondary characters offered by a long press.
	Callouts []string

	swipes []SwipeBinding
}

// NewKey creates a key with unit width.
func NewKey(id ID, action Action) *Key {
	return &Key{ID: id, Action: action, Label: action.Label(), Width: 1}
}

// AddSwipe binds b. A direction can be bound only once and spacers take no
// bindings.
func (k *Key) AddSwipe(b SwipeBinding) error {
	if k.Action.IsSpacer() {
		return fmt.Errorf("key %v: spacer keys take no swipe bindings", k.ID)
	}
	if b.Direction == gesture.None {
		return fmt.Errorf("key %v: swipe binding without direction", k.ID)
	}
	if _, dup := k.Swipe(b.Direction); dup {
		return fmt.Errorf("key %v: %v swipe bound twice", k.ID, b.Direction)
	}
	k.swipes = append(k.swipes, b)
	return nil
}

// Swipe returns the binding for d.
func (k *Key) Swipe(d gesture.Direction) (SwipeBinding, bool) {
	for _, b := range k.swipes {
		if b.Direction == d {
			return b, true
		}
	}
	return SwipeBinding{}, false
}

// Swipes returns the bindings in insertion order.
func (k *Key) Swipes() []SwipeBinding {
	return append([]SwipeBinding(nil), k.swipes...)
}

func (k *Key) String() string {
	return fmt.Sprintf("%v[%v]", k.ID, k.Action)
}

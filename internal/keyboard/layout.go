package keyboard

import (
	"sync"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/types"
)

// Layout is the key layout model for one keyboard type. Keys are fixed once
// built; bounds are written by the view layer on every layout pass and read
// fresh on every hit test.
type Layout struct {
	Type Type
	Rows [][]*Key

	mu     sync.RWMutex
	bounds map[ID]types.Rect
}

// NewLayout creates a layout from rows of keys.
func NewLayout(t Type, rows [][]*Key) *Layout {
	return &Layout{Type: t, Rows: rows, bounds: make(map[ID]types.Rect)}
}

// Keys returns every key, row by row.
func (l *Layout) Keys() []*Key {
	var keys []*Key
	for _, row := range l.Rows {
		keys = append(keys, row...)
	}
	return keys
}

// Key looks a key up by its ID.
func (l *Layout) Key(id ID) (*Key, bool) {
	if id.Row < 0 || id.Row >= len(l.Rows) {
		return nil, false
	}
	row := l.Rows[id.Row]
	if id.Column < 0 || id.Column >= len(row) {
		return nil, false
	}
	return row[id.Column], true
}

// Binding returns the action bound to a swipe in direction d on k.
func (l *Layout) Binding(d gesture.Direction, k *Key) (Action, bool) {
	b, ok := k.Swipe(d)
	if !ok {
		return Action{}, false
	}
	return b.Action, true
}

// SetBounds records where k was laid out.
func (l *Layout) SetBounds(id ID, r types.Rect) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.bounds[id] = r
}

// Bounds returns the current rect of k, empty if it was never laid out.
func (l *Layout) Bounds(k *Key) types.Rect {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.bounds[k.ID]
}

// HitTest returns the non spacer key under p.
func (l *Layout) HitTest(p types.Point) (*Key, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, row := range l.Rows {
		for _, k := range row {
			if k.Action.IsSpacer() {
				continue
			}
			if l.bounds[k.ID].Contains(p) {
				return k, true
			}
		}
	}
	return nil, false
}

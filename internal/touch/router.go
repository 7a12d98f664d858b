package touch

import (
	"time"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/types"
)

// PointerID tells concurrent pointers apart, one per finger or mouse button.
type PointerID int

// Callout is a pop-up that belongs to one key at a time. The router feeds it
// the pointer of that key and adapts it to each controller's Overlay.
type Callout interface {
	ClaimedBy(id keyboard.ID) bool
	Hover(id keyboard.ID, p types.Point)
	Commit(id keyboard.ID, p types.Point)
	EndGesture(id keyboard.ID)
}

type keyOverlay struct {
	callout Callout
	id      keyboard.ID
}

func (o keyOverlay) HasClaimedGesture() bool { return o.callout.ClaimedBy(o.id) }
func (o keyOverlay) NotifyGestureEnded()     { o.callout.EndGesture(o.id) }

// RouterConfig wires a Router. Clock and Handler are shared by every
// controller the router creates.
type RouterConfig struct {
	Layout          *keyboard.Layout
	Thresholds      gesture.Thresholds
	Clock           Clock
	Handler         Handler
	Callout         Callout
	SpaceCursorDrag bool
	// OnPressedChanged is optional.
	OnPressedChanged func(k *keyboard.Key, pressed bool)
}

type tapRecord struct {
	key   keyboard.ID
	at    time.Time
	count int
	valid bool
}

// Router hit tests pointer events against the layout and routes each pointer
// to the controller of the key it went down on. Keys are independent: two
// pointers on two keys never interact.
type Router struct {
	cfg         RouterConfig
	controllers map[keyboard.ID]*Controller
	pointers    map[PointerID]*Controller
	lastTap     tapRecord
}

// NewRouter creates a router for cfg.Layout.
func NewRouter(cfg RouterConfig) *Router {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	return &Router{
		cfg:         cfg,
		controllers: make(map[keyboard.ID]*Controller),
		pointers:    make(map[PointerID]*Controller),
	}
}

// Layout returns the layout being routed.
func (r *Router) Layout() *keyboard.Layout { return r.cfg.Layout }

// Thresholds returns the policy the controllers use.
func (r *Router) Thresholds() gesture.Thresholds { return r.cfg.Thresholds }

// OnPointerEvent routes one raw pointer event.
func (r *Router) OnPointerEvent(id PointerID, phase Phase, p types.Point) {
	if phase == PhaseBegin {
		r.begin(id, p)
		return
	}
	c, ok := r.pointers[id]
	if !ok {
		return
	}
	switch phase {
	case PhaseMove:
		if r.cfg.Callout != nil {
			r.cfg.Callout.Hover(c.key.ID, p)
		}
		c.Move(p)
	case PhaseEnd:
		delete(r.pointers, id)
		if r.cfg.Callout != nil {
			r.cfg.Callout.Commit(c.key.ID, p)
		}
		c.Release(p)
	case PhaseCancel:
		delete(r.pointers, id)
		c.Cancel()
	}
}

func (r *Router) begin(id PointerID, p types.Point) {
	if _, busy := r.pointers[id]; busy {
		logger.DebugTagf("touch", "pointer %d began twice, ignored", id)
		return
	}
	if r.cfg.Layout == nil {
		return
	}
	k, ok := r.cfg.Layout.HitTest(p)
	if !ok {
		return
	}
	c := r.controller(k)
	if c.IsPressed() {
		// Another pointer holds this key.
		return
	}
	r.pointers[id] = c
	c.Press(p, r.tapCount(k.ID))
}

// tapCount numbers successive presses of one key that follow each other
// within the double tap interval.
func (r *Router) tapCount(id keyboard.ID) int {
	now := r.cfg.Clock.Now()
	count := 1
	if r.lastTap.valid && r.lastTap.key == id && now.Sub(r.lastTap.at) <= r.cfg.Thresholds.DoubleTapInterval {
		count = r.lastTap.count + 1
	}
	r.lastTap = tapRecord{key: id, at: now, count: count, valid: true}
	return count
}

func (r *Router) controller(k *keyboard.Key) *Controller {
	if c, ok := r.controllers[k.ID]; ok {
		return c
	}
	cfg := Config{
		Key:              k,
		Layout:           r.cfg.Layout,
		Thresholds:       r.cfg.Thresholds,
		Clock:            r.cfg.Clock,
		Handler:          r.cfg.Handler,
		SpaceCursorDrag:  r.cfg.SpaceCursorDrag,
		OnPressedChanged: r.cfg.OnPressedChanged,
	}
	if r.cfg.Callout != nil {
		cfg.Overlay = keyOverlay{callout: r.cfg.Callout, id: k.ID}
	}
	c := NewController(cfg)
	r.controllers[k.ID] = c
	return c
}

// IsPressed reports whether the key with id has a touch in flight.
func (r *Router) IsPressed(id keyboard.ID) bool {
	c, ok := r.controllers[id]
	return ok && c.IsPressed()
}

// Active returns the number of pointers currently down on keys.
func (r *Router) Active() int { return len(r.pointers) }

// CancelAll cancels every touch in flight.
func (r *Router) CancelAll() {
	for id, c := range r.pointers {
		delete(r.pointers, id)
		c.Cancel()
	}
}

// SetLayout cancels every touch and switches to l.
func (r *Router) SetLayout(l *keyboard.Layout) {
	r.CancelAll()
	r.cfg.Layout = l
	r.controllers = make(map[keyboard.ID]*Controller)
	r.lastTap = tapRecord{}
}

// Reload replaces the policy and layout wholesale. Touches in flight are
// cancelled; they never see a mix of old and new thresholds.
func (r *Router) Reload(th gesture.Thresholds, l *keyboard.Layout, spaceCursorDrag bool) {
	r.cfg.Thresholds = th
	r.cfg.SpaceCursorDrag = spaceCursorDrag
	r.SetLayout(l)
	logger.DebugTagf("touch", "router reloaded: %+v", th)
}

// Package callout implements the secondary character pop-up shown by a long
// press. While open it follows the pointer of its key, commits the option
// under the finger when it lifts, and claims that gesture so the key's own
// release does nothing.
package callout

import (
	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/types"
)

// BoundsProvider supplies the current rect of a key.
type BoundsProvider interface {
	Bounds(k *keyboard.Key) types.Rect
}

// Committer runs the chosen option. The dispatcher implements it.
type Committer interface {
	Dispatch(ev gesture.Event, a keyboard.Action)
}

// Context is the callout of a keyboard. At most one key owns it at a time.
type Context struct {
	bounds    BoundsProvider
	committer Committer
	events    *event.Manager

	key      *keyboard.Key
	options  []string
	origin   types.Rect // rect of option 0
	selected int
	claimed  bool
}

// New creates a closed callout. The committer may be set later with
// SetCommitter, since the dispatcher usually needs the callout first.
func New(bounds BoundsProvider, events *event.Manager) *Context {
	return &Context{bounds: bounds, events: events, selected: -1}
}

func (c *Context) SetCommitter(cm Committer) { c.committer = cm }

// SetBounds switches the bounds source after a layout change.
func (c *Context) SetBounds(b BoundsProvider) { c.bounds = b }

// Show opens the callout over k with the first option selected. Options sit
// in a row directly above the key, each as large as the key.
func (c *Context) Show(k *keyboard.Key) {
	if len(k.Callouts) == 0 {
		return
	}
	kb := c.bounds.Bounds(k)
	c.key = k
	c.options = append([]string(nil), k.Callouts...)
	c.origin = types.R(kb.Min.X, kb.Min.Y-kb.Dy(), kb.Dx(), kb.Dy())
	c.selected = 0
	c.claimed = false
	logger.DebugTagf("callout", "Showing %d options over %v", len(c.options), k)
	c.publish()
}

// Visible reports whether the callout is open.
func (c *Context) Visible() bool { return c.key != nil }

// Key returns the owning key, nil when closed.
func (c *Context) Key() *keyboard.Key { return c.key }

// Options returns the options in display order.
func (c *Context) Options() []string { return c.options }

// Selected returns the index of the highlighted option, -1 for none.
func (c *Context) Selected() int { return c.selected }

// OptionRect returns where option i is drawn.
func (c *Context) OptionRect(i int) types.Rect {
	w := c.origin.Dx()
	return types.R(c.origin.Min.X+float32(i)*w, c.origin.Min.Y, w, c.origin.Dy())
}

func (c *Context) owns(id keyboard.ID) bool {
	return c.key != nil && c.key.ID == id
}

// Hover moves the selection to the option under p. Moving below the key
// clears the selection; sideways moves past either end stick to that end.
func (c *Context) Hover(id keyboard.ID, p types.Point) {
	if !c.owns(id) {
		return
	}
	sel := c.optionAt(p)
	if sel == c.selected {
		return
	}
	c.selected = sel
	c.publish()
}

func (c *Context) optionAt(p types.Point) int {
	if p.Y >= c.origin.Max.Y+c.origin.Dy() {
		return -1
	}
	i := int((p.X - c.origin.Min.X) / c.origin.Dx())
	if p.X < c.origin.Min.X {
		i = 0
	}
	if i >= len(c.options) {
		i = len(c.options) - 1
	}
	return i
}

// Commit ends the callout interaction at p. The selected option, if any, is
// dispatched as a release, and the gesture is claimed either way.
func (c *Context) Commit(id keyboard.ID, p types.Point) {
	if !c.owns(id) {
		return
	}
	c.Hover(id, p)
	c.claimed = true
	if c.selected < 0 || c.committer == nil {
		logger.DebugTagf("callout", "Dismissed without a choice")
		return
	}
	a := c.optionAction(c.options[c.selected])
	logger.DebugTagf("callout", "Committing %v", a)
	c.committer.Dispatch(gesture.Event{Type: gesture.Release, Position: p}, a)
}

// optionAction keeps letters letters, so they follow the keyboard case.
func (c *Context) optionAction(opt string) keyboard.Action {
	switch c.key.Action.Kind {
	case keyboard.KindCharacter:
		return keyboard.Character(opt)
	case keyboard.KindEmoji:
		return keyboard.Emoji(opt)
	}
	return keyboard.Symbol(opt)
}

// ClaimedBy reports whether the callout took over the gesture of key id.
func (c *Context) ClaimedBy(id keyboard.ID) bool {
	return c.claimed && c.owns(id)
}

// EndGesture closes the callout when its key's gesture ends.
func (c *Context) EndGesture(id keyboard.ID) {
	if !c.owns(id) {
		return
	}
	c.Close()
}

// Close hides the callout and resets its hover state.
func (c *Context) Close() {
	if c.key == nil {
		return
	}
	id := c.key.ID
	c.key, c.options, c.selected, c.claimed = nil, nil, -1, false
	c.events.Dispatch(event.TypeCalloutChanged, event.CalloutChangedData{Key: id, Selected: -1})
}

func (c *Context) publish() {
	c.events.Dispatch(event.TypeCalloutChanged, event.CalloutChangedData{
		Key:      c.key.ID,
		Options:  c.options,
		Selected: c.selected,
		Visible:  true,
	})
}

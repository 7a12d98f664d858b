// Package document is the text the demo keyboard types into. The cursor
// moves over grapheme clusters, so a flag emoji or a letter with a combining
// accent is one step and one delete.
package document

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/logger"
)

// Document is a single text buffer with a cursor.
type Document struct {
	clusters []string
	cursor   int // index into clusters
	events   *event.Manager
}

// New creates an empty document.
func New(events *event.Manager) *Document {
	return &Document{events: events}
}

func split(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Text returns the whole document.
func (d *Document) Text() string {
	return strings.Join(d.clusters, "")
}

// Cursor returns the cursor position in grapheme clusters.
func (d *Document) Cursor() int { return d.cursor }

// Len returns the document length in grapheme clusters.
func (d *Document) Len() int { return len(d.clusters) }

// TextBeforeCursor returns the text left of the cursor.
func (d *Document) TextBeforeCursor() string {
	return strings.Join(d.clusters[:d.cursor], "")
}

// TextAfterCursor returns the text right of the cursor.
func (d *Document) TextAfterCursor() string {
	return strings.Join(d.clusters[d.cursor:], "")
}

// HasComposition is always false: the demo has no input method composing
// text.
func (d *Document) HasComposition() bool { return false }

// InsertText inserts s at the cursor and moves the cursor past it. The text
// is segmented again, so a combining mark joins the cluster before it.
func (d *Document) InsertText(s string) {
	if s == "" {
		return
	}
	before := d.TextBeforeCursor() + s
	d.clusters = split(before + d.TextAfterCursor())
	d.cursor = uniseg.GraphemeClusterCount(before)
	if d.cursor > len(d.clusters) {
		d.cursor = len(d.clusters)
	}
	d.changed()
}

// DeleteBackward removes up to count clusters before the cursor.
func (d *Document) DeleteBackward(count int) {
	if count <= 0 || d.cursor == 0 {
		return
	}
	if count > d.cursor {
		count = d.cursor
	}
	d.clusters = append(d.clusters[:d.cursor-count], d.clusters[d.cursor:]...)
	d.cursor -= count
	d.changed()
}

// AdjustCursor moves the cursor by offset clusters, clamped to the text.
func (d *Document) AdjustCursor(offset int) {
	c := d.cursor + offset
	if c < 0 {
		c = 0
	}
	if c > len(d.clusters) {
		c = len(d.clusters)
	}
	if c == d.cursor {
		return
	}
	d.cursor = c
	d.changed()
}

// SetText replaces the document and puts the cursor at the end.
func (d *Document) SetText(s string) {
	d.clusters = split(s)
	d.cursor = len(d.clusters)
	d.changed()
}

func (d *Document) changed() {
	logger.DebugTagf("document", "cursor %d of %d", d.cursor, len(d.clusters))
	d.events.Dispatch(event.TypeTextChanged, event.TextChangedData{Text: d.Text(), Cursor: d.cursor})
}

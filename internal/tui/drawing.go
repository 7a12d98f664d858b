// internal/tui/drawing.go
package tui

import (
	"strings"

	"github.com/bethropolis/softkeys/internal/callout"
	"github.com/bethropolis/softkeys/internal/document"
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// KeyState is what the keyboard drawing needs to know besides the layout.
type KeyState struct {
	Case    keyboard.Case
	Pressed func(id keyboard.ID) bool
	// The key the callout is open on gets no press preview.
	Callout *callout.Context
}

// drawText draws text from (x, y) by grapheme cluster, stopping before maxX.
// It returns the column after the last cluster drawn.
func drawText(screen tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > maxX {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}

// drawCentered draws text centred in [x0, x1) on row y.
func drawCentered(screen tcell.Screen, x0, x1, y int, text string, style tcell.Style) {
	w := uniseg.StringWidth(text)
	x := x0 + (x1-x0-w)/2
	if x < x0 {
		x = x0
	}
	drawText(screen, x, y, x1, text, style)
}

func fill(screen tcell.Screen, x0, y0, x1, y1 int, style tcell.Style) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

// keyLabel is the caption of k in case c.
func keyLabel(k *keyboard.Key, c keyboard.Case) string {
	if k.Action.Kind == keyboard.KindCharacter && c != keyboard.Lower {
		return strings.ToUpper(k.Label)
	}
	if k.Action.Kind == keyboard.KindShift && c == keyboard.CapsLocked {
		return "⇪"
	}
	return k.Label
}

// DrawKeyboard draws every key of l at its arranged bounds. Keys are boxed by
// a one cell gap on their right edge so neighbours stay apart.
func DrawKeyboard(tuiManager *TUI, l *keyboard.Layout, state KeyState, activeTheme *theme.Theme) {
	screen := tuiManager.GetScreen()
	keyStyle := activeTheme.GetStyle(theme.StyleKey)
	pressedStyle := activeTheme.GetStyle(theme.StyleKeyPressed)
	specialStyle := activeTheme.GetStyle(theme.StyleKeySpecial)
	spacerStyle := activeTheme.GetStyle(theme.StyleKeySpacer)
	hintStyle := activeTheme.GetStyle(theme.StyleSwipeHint)

	var bubble *keyboard.Key
	for _, k := range l.Keys() {
		x0, y0, x1, y1 := CellRect(l.Bounds(k))
		if x1-x0 <= 1 || y1 <= y0 {
			continue
		}
		if k.Action.IsSpacer() {
			fill(screen, x0, y0, x1, y1, spacerStyle)
			continue
		}

		pressed := state.Pressed != nil && state.Pressed(k.ID)
		style := keyStyle
		hint := hintStyle
		switch {
		case pressed:
			style, hint = pressedStyle, pressedStyle
		case !k.Action.InsertsText():
			style, hint = specialStyle, specialStyle.Foreground(hintFg(hintStyle))
		}

		fill(screen, x0, y0, x1-1, y1, style)
		mid := y0 + (y1-y0)/2
		drawCentered(screen, x0, x1-1, mid, keyLabel(k, state.Case), style)
		drawHints(screen, k, x0, y0, x1-1, y1, hint)

		if pressed && k.Action.WantsKeyBubble() {
			bubble = k
		}
	}

	if bubble != nil && (state.Callout == nil || state.Callout.Key() != bubble) {
		drawBubble(screen, l, bubble, state.Case, activeTheme)
	}
}

func hintFg(s tcell.Style) tcell.Color {
	fg, _, _ := s.Decompose()
	return fg
}

// drawHints draws the labels of the visible swipe bindings on the edges of
// the key: up on the top row, down on the bottom row, left and right at the
// ends of the middle row.
func drawHints(screen tcell.Screen, k *keyboard.Key, x0, y0, x1, y1 int, style tcell.Style) {
	mid := y0 + (y1-y0)/2
	for _, b := range k.Swipes() {
		if !b.Visible {
			continue
		}
		label := b.Action.Label()
		w := uniseg.StringWidth(label)
		switch b.Direction {
		case gesture.Up:
			if y0 != mid {
				drawCentered(screen, x0, x1, y0, label, style)
			}
		case gesture.Down:
			if y1-1 != mid {
				drawCentered(screen, x0, x1, y1-1, label, style)
			}
		case gesture.Left:
			drawText(screen, x0, mid, x1, label, style)
		case gesture.Right:
			if x1-w > x0 {
				drawText(screen, x1-w, mid, x1, label, style)
			}
		}
	}
}

// drawBubble previews the label of a pressed text key one key height above
// it.
func drawBubble(screen tcell.Screen, l *keyboard.Layout, k *keyboard.Key, c keyboard.Case, activeTheme *theme.Theme) {
	x0, y0, x1, y1 := CellRect(l.Bounds(k))
	h := y1 - y0
	if y0-h < 0 {
		return
	}
	style := activeTheme.GetStyle(theme.StyleCallout)
	fill(screen, x0, y0-h, x1-1, y0, style)
	drawCentered(screen, x0, x1-1, y0-h+h/2, keyLabel(k, c), style)
}

// DrawCallout draws the open callout, if any, over whatever is below it.
func DrawCallout(tuiManager *TUI, c *callout.Context, kbCase keyboard.Case, activeTheme *theme.Theme) {
	if c == nil || !c.Visible() {
		return
	}
	screen := tuiManager.GetScreen()
	style := activeTheme.GetStyle(theme.StyleCallout)
	selected := activeTheme.GetStyle(theme.StyleCalloutSelected)
	upper := kbCase != keyboard.Lower && c.Key().Action.Kind == keyboard.KindCharacter

	for i, opt := range c.Options() {
		x0, y0, x1, y1 := CellRect(c.OptionRect(i))
		if y0 < 0 {
			y0 = 0
		}
		s := style
		if i == c.Selected() {
			s = selected
		}
		if upper {
			opt = strings.ToUpper(opt)
		}
		fill(screen, x0, y0, x1, y1, s)
		drawCentered(screen, x0, x1, y0+(y1-y0)/2, opt, s)
	}
}

type docCell struct {
	text   string
	width  int
	cursor bool
}

// wrapDocument splits text into screen lines of at most width columns.
// Cursor is a grapheme cluster index; a cursor at the end gets its own blank
// cell. It returns the lines and the line holding the cursor.
func wrapDocument(text string, cursor, width int) ([][]docCell, int) {
	lines := [][]docCell{nil}
	cursorLine := 0
	col := 0
	index := 0

	put := func(c docCell) {
		if col+c.width > width && col > 0 {
			lines = append(lines, nil)
			col = 0
		}
		last := len(lines) - 1
		lines[last] = append(lines[last], c)
		col += c.width
		if c.cursor {
			cursorLine = last
		}
	}

	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		cluster := gr.Str()
		atCursor := index == cursor
		index++
		if cluster == "\n" || cluster == "\r\n" {
			if atCursor {
				put(docCell{text: " ", width: 1, cursor: true})
			}
			lines = append(lines, nil)
			col = 0
			continue
		}
		w := gr.Width()
		if w == 0 {
			w = 1
		}
		put(docCell{text: cluster, width: w, cursor: atCursor})
	}
	if cursor >= index {
		put(docCell{text: " ", width: 1, cursor: true})
	}
	return lines, cursorLine
}

// DrawDocument draws the text of doc in the rows [y, y+height), wrapping at
// width and scrolling so the cursor line is visible.
func DrawDocument(tuiManager *TUI, doc *document.Document, y, width, height int, activeTheme *theme.Theme) {
	if width <= 0 || height <= 0 {
		return
	}
	screen := tuiManager.GetScreen()
	textStyle := activeTheme.GetStyle(theme.StyleDocument)
	cursorStyle := activeTheme.GetStyle(theme.StyleCursor)
	fill(screen, 0, y, width, y+height, textStyle)

	lines, cursorLine := wrapDocument(doc.Text(), doc.Cursor(), width)
	first := 0
	if cursorLine >= height {
		first = cursorLine - height + 1
	}
	for row := 0; row < height && first+row < len(lines); row++ {
		x := 0
		for _, c := range lines[first+row] {
			style := textStyle
			if c.cursor {
				style = cursorStyle
			}
			x = drawText(screen, x, y+row, width, c.text, style)
		}
	}
}

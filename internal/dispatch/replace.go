package dispatch

import (
	"unicode"
	"unicode/utf8"

	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/keyboard"
)

// AfterDigit replaces typed text when the text before the cursor ends in a
// digit, such as an ideographic full stop becoming "." inside a number.
type AfterDigit struct {
	Context TextContext
	Map     map[string]string
}

// Replacement implements ReplacementPolicy for releases of text actions.
func (p AfterDigit) Replacement(g gesture.Type, a keyboard.Action) (keyboard.Action, bool) {
	if g != gesture.Release || !a.InsertsText() || p.Context == nil || len(p.Map) == 0 {
		return a, false
	}
	to, ok := p.Map[a.Text]
	if !ok || to == "" {
		return a, false
	}
	before := p.Context.TextBeforeCursor()
	last, _ := utf8.DecodeLastRuneInString(before)
	if before == "" || !unicode.IsDigit(last) {
		return a, false
	}
	r := a
	r.Text = to
	return r, true
}

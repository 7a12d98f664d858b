// internal/keyboard/action.go
package keyboard

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the variant held by an Action.
type Kind uint8

const (
	KindNone Kind = iota
	KindCharacter
	KindSymbol
	KindEmoji
	KindBackspace
	KindShift
	KindSpace
	KindEnter
	KindSpacer
	KindKeyboardType
	KindMenu
	KindCursor
	KindPaste
)

// Action is what a key means. It is a closed tagged union: only the fields
// belonging to Kind are meaningful. Actions are comparable values.
type Action struct {
	Kind     Kind
	Text     string   // KindCharacter, KindSymbol, KindEmoji
	Keyboard Type     // KindKeyboardType
	Menu     MenuKind // KindMenu
	Offset   int      // KindCursor
}

func Character(s string) Action { return Action{Kind: KindCharacter, Text: s} }
func Symbol(s string) Action { return Action{Kind: KindSymbol, Text: s} }
func Emoji(s string) Action { return Action{Kind: KindEmoji, Text: s} }
func Backspace() Action { return Action{Kind: KindBackspace} }
func Shift() Action { return Action{Kind: KindShift} }
func Space() Action { return Action{Kind: KindSpace} }
func Enter() Action { return Action{Kind: KindEnter} }
func Spacer() Action { return Action{Kind: KindSpacer} }
func SwitchKeyboard(t Type) Action { return Action{Kind: KindKeyboardType, Keyboard: t} }
func OpenMenu(m MenuKind) Action { return Action{Kind: KindMenu, Menu: m} }
func MoveCursor(offset int) Action { return Action{Kind: KindCursor, Offset: offset} }
func Paste() Action { return Action{Kind: KindPaste} }

// IsSpacer reports whether the key is padding that never takes part in gestures.
func (a Action) IsSpacer() bool { return a.Kind == KindSpacer }

// IsSpaceAction unlocks the cursor drag specialization.
func (a Action) IsSpaceAction() bool { return a.Kind == KindSpace }

// IsBackspaceAction unlocks auto repeat of deletion.
func (a Action) IsBackspaceAction() bool { return a.Kind == KindBackspace }

// InsertsText reports whether the action types its Text.
func (a Action) InsertsText() bool {
	switch a.Kind {
	case KindCharacter, KindSymbol, KindEmoji:
		return true
	}
	return false
}

// WantsKeyBubble reports whether a preview bubble should show while pressed.
func (a Action) WantsKeyBubble() bool {
	return a.InsertsText()
}

// TracksFrequency reports whether use of the action is recorded as recent.
func (a Action) TracksFrequency() bool {
	return a.Kind == KindSymbol || a.Kind == KindEmoji
}

// Label is the default caption drawn on a key bound to a.
func (a Action) Label() string {
	switch a.Kind {
	case KindCharacter, KindSymbol, KindEmoji:
		return a.Text
	case KindBackspace:
		return "⌫"
	case KindShift:
		return "⇧"
	case KindSpace:
		return "space"
	case KindEnter:
		return "⏎"
	case KindKeyboardType:
		return a.Keyboard.Label()
	case KindMenu:
		return a.Menu.Label()
	case KindCursor:
		if a.Offset < 0 {
			return "◀"
		}
		return "▶"
	case KindPaste:
		return "paste"
	}
	return ""
}

// String renders a in the syntax ParseAction accepts.
func (a Action) String() string {
	switch a.Kind {
	case KindCharacter:
		return "char:" + a.Text
	case KindSymbol:
		return "symbol:" + a.Text
	case KindEmoji:
		return "emoji:" + a.Text
	case KindBackspace:
		return "backspace"
	case KindShift:
		return "shift"
	case KindSpace:
		return "space"
	case KindEnter:
		return "enter"
	case KindSpacer:
		return "spacer"
	case KindKeyboardType:
		return "keyboard:" + a.Keyboard.String()
	case KindMenu:
		return "menu:" + a.Menu.String()
	case KindCursor:
		return "cursor:" + strconv.Itoa(a.Offset)
	case KindPaste:
		return "paste"
	}
	return "none"
}

// ParseAction decodes the layout file syntax: a bare keyword such as
// "backspace", or "kind:argument" such as "char:q" or "cursor:-1".
func ParseAction(s string) (Action, error) {
	switch s {
	case "backspace":
		return Backspace(), nil
	case "shift":
		return Shift(), nil
	case "space":
		return Space(), nil
	case "enter", "return":
		return Enter(), nil
	case "spacer":
		return Spacer(), nil
	case "paste":
		return Paste(), nil
	case "", "none":
		return Action{}, nil
	}

	kind, arg, ok := strings.Cut(s, ":")
	if !ok {
		return Action{}, fmt.Errorf("unknown action %q", s)
	}
	switch kind {
	case "char", "symbol", "emoji":
		if arg == "" {
			return Action{}, fmt.Errorf("action %q needs text", s)
		}
		switch kind {
		case "char":
			return Character(arg), nil
		case "symbol":
			return Symbol(arg), nil
		}
		return Emoji(arg), nil
	case "keyboard":
		t, ok := ParseType(arg)
		if !ok {
			return Action{}, fmt.Errorf("unknown keyboard type %q", arg)
		}
		return SwitchKeyboard(t), nil
	case "menu":
		m, ok := ParseMenuKind(arg)
		if !ok {
			return Action{}, fmt.Errorf("unknown menu %q", arg)
		}
		return OpenMenu(m), nil
	case "cursor":
		n, err := strconv.Atoi(arg)
		if err != nil || n == 0 {
			return Action{}, fmt.Errorf("invalid cursor offset %q", arg)
		}
		return MoveCursor(n), nil
	}
	return Action{}, fmt.Errorf("unknown action kind %q", kind)
}

package keyboard

// Case is the letter case the keyboard is in.
type Case uint8

const (
	Lower Case = iota
	Upper
	CapsLocked
)

func (c Case) String() string {
	switch c {
	case Upper:
		return "upper"
	case CapsLocked:
		return "caps"
	}
	return "lower"
}

// Type selects which key set is shown.
type Type uint8

const (
	Alphabetic Type = iota
	Numeric
	Symbolic
	EmojiBoard
)

var typeNames = map[Type]string{
	Alphabetic: "alphabetic",
	Numeric:    "numeric",
	Symbolic:   "symbolic",
	EmojiBoard: "emoji",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "alphabetic"
}

// Label is the caption of a key switching to t.
func (t Type) Label() string {
	switch t {
	case Numeric:
		return "123"
	case Symbolic:
		return "#+="
	case EmojiBoard:
		return "☺"
	}
	return "ABC"
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, bool) {
	for t, name := range typeNames {
		if name == s {
			return t, true
		}
	}
	return Alphabetic, false
}

// MenuKind identifies a menu a key can open.
type MenuKind uint8

const (
	MenuSettings MenuKind = iota
	MenuInputSwitcher
	MenuClipboard
)

var menuNames = map[MenuKind]string{
	MenuSettings:      "settings",
	MenuInputSwitcher: "switcher",
	MenuClipboard:     "clipboard",
}

func (m MenuKind) String() string {
	if s, ok := menuNames[m]; ok {
		return s
	}
	return "settings"
}

// Label is the caption of a key opening m.
func (m MenuKind) Label() string {
	switch m {
	case MenuInputSwitcher:
		return "🌐"
	case MenuClipboard:
		return "📋"
	}
	return "⚙"
}

// ParseMenuKind is the inverse of MenuKind.String.
func ParseMenuKind(s string) (MenuKind, bool) {
	for m, name := range menuNames {
		if name == s {
			return m, true
		}
	}
	return MenuSettings, false
}

// internal/input/action.go
package input

// Action is a host command bound to a physical key.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionReloadConfig
	ActionClearDocument

	// --- Document editing from the physical keyboard ---
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd
	ActionDeleteBackward
	ActionInsertRune
	ActionInsertNewLine
)

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // ActionInsertRune only
}

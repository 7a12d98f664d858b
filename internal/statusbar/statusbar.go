// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/softkeys/internal/config"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/theme"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
	// MaxRecent caps the recent symbols shown.
	MaxRecent int
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: config.MessageTimeout,
		MaxRecent:      8,
	}
}

// StatusBar is the bottom line: keyboard mode on the left, recent symbols and
// the cursor on the right, or a temporary message over everything.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	kbType     keyboard.Type
	kbCase     keyboard.Case
	cursorDrag bool
	recent     []string
	cursor     int
	length     int

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetKeyboard updates the keyboard mode shown.
func (sb *StatusBar) SetKeyboard(t keyboard.Type, c keyboard.Case) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.kbType = t
	sb.kbCase = c
}

// SetCursorDrag shows or hides the cursor drag indicator.
func (sb *StatusBar) SetCursorDrag(armed bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorDrag = armed
}

// SetRecent updates the recently used symbols, newest first.
func (sb *StatusBar) SetRecent(recent []string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.recent = append(sb.recent[:0], recent...)
}

// SetTextInfo updates the cursor position and document length, in grapheme
// clusters.
func (sb *StatusBar) SetTextInfo(cursor, length int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursor = cursor
	sb.length = length
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// modeText is the left part of the default line. Caller holds the lock.
func (sb *StatusBar) modeText() string {
	mode := strings.ToUpper(sb.kbType.String())
	if sb.kbType == keyboard.Alphabetic {
		mode = fmt.Sprintf("%s %s", mode, sb.kbCase)
	}
	if sb.cursorDrag {
		mode += " -- MOVE CURSOR"
	}
	return " " + mode + " "
}

// infoText is the right part of the default line. Caller holds the lock.
func (sb *StatusBar) infoText() string {
	var b strings.Builder
	if n := len(sb.recent); n > 0 {
		if n > sb.config.MaxRecent {
			n = sb.config.MaxRecent
		}
		b.WriteString("recent: ")
		b.WriteString(strings.Join(sb.recent[:n], " "))
		b.WriteString(" | ")
	}
	fmt.Fprintf(&b, "%d/%d ", sb.cursor, sb.length)
	return b.String()
}

// Draw renders the status bar on the last line of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	var mode, info string
	if isTempMsgActive {
		mode = " " + sb.tempMessage
	} else {
		mode = sb.modeText()
		info = sb.infoText()
	}
	sb.mu.Unlock()

	barStyle := activeTheme.GetStyle(theme.StyleStatusBar)
	modeStyle := activeTheme.GetStyle(theme.StyleStatusMode)
	if isTempMsgActive {
		modeStyle = activeTheme.GetStyle(theme.StyleStatusMessage)
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, barStyle)
	}
	used := drawText(screen, 0, y, width, mode, modeStyle)
	if info == "" {
		return
	}
	infoX := width - uniseg.StringWidth(info)
	if infoX <= used {
		return
	}
	drawText(screen, infoX, y, width, info, barStyle)
}

// drawText draws text from x by grapheme cluster, stopping at maxX, and
// returns the column after the last cluster drawn.
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

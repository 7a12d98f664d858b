// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names the host draws with. A dotted name falls back to its base, so
// a theme may define only "Key" and still style "Key.Pressed".
const (
	StyleDefault         = "Default"
	StyleKey             = "Key"
	StyleKeyPressed      = "Key.Pressed"
	StyleKeySpecial      = "Key.Special"
	StyleKeySpacer       = "Key.Spacer"
	StyleSwipeHint       = "SwipeHint"
	StyleCallout         = "Callout"
	StyleCalloutSelected = "Callout.Selected"
	StyleDocument        = "Document"
	StyleCursor          = "Cursor"
	StyleStatusBar       = "StatusBar"
	StyleStatusMessage   = "StatusBar.Message"
	StyleStatusMode      = "StatusBar.Mode"
)

type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle looks up name, then its base name, then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Keys Dark ---

var KeysDark Theme

func init() {
	kdBackground := tcell.NewHexColor(0x21252b) // board
	kdKey := tcell.NewHexColor(0x3a3f4b)
	kdSpecial := tcell.NewHexColor(0x2c313a) // shift, backspace, mode keys
	kdForeground := tcell.NewHexColor(0xc5cdd9)
	kdComment := tcell.NewHexColor(0x5c6370)
	kdYellow := tcell.NewHexColor(0xe5c07b)
	kdBlue := tcell.NewHexColor(0x61afef)
	kdStatus := tcell.NewHexColor(0x2a2f38)

	baseStyle := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(kdForeground)

	KeysDark = Theme{
		Name:   "Keys Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:    baseStyle,
			StyleKey:        tcell.StyleDefault.Background(kdKey).Foreground(kdForeground),
			StyleKeyPressed: tcell.StyleDefault.Background(kdBlue).Foreground(kdBackground).Bold(true),
			StyleKeySpecial: tcell.StyleDefault.Background(kdSpecial).Foreground(kdForeground),
			StyleKeySpacer:  baseStyle,
			StyleSwipeHint:  tcell.StyleDefault.Background(kdKey).Foreground(kdComment),

			StyleCallout:         tcell.StyleDefault.Background(kdStatus).Foreground(kdForeground),
			StyleCalloutSelected: tcell.StyleDefault.Background(kdYellow).Foreground(kdBackground).Bold(true),

			StyleDocument: baseStyle,
			StyleCursor:   baseStyle.Reverse(true),

			StyleStatusBar:     tcell.StyleDefault.Background(kdStatus).Foreground(kdForeground),
			StyleStatusMessage: tcell.StyleDefault.Background(kdStatus).Foreground(kdForeground).Bold(true),
			StyleStatusMode:    tcell.StyleDefault.Background(kdStatus).Foreground(kdYellow),
		},
	}
}

// Load returns the theme in path, or KeysDark when path is empty or the file
// can't be used.
func Load(path string) *Theme {
	if path == "" {
		return &KeysDark
	}
	t, err := LoadThemeFromFile(path)
	if err != nil {
		logger.Warnf("Theme: %v, using '%s'", err, KeysDark.Name)
		return &KeysDark
	}
	logger.Infof("Theme: using '%s'", t.Name)
	return t
}

package keyboard

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/logger"
)

//go:embed default_layout.toml
var defaultLayoutTOML string

// Layouts holds one layout per keyboard type.
type Layouts map[Type]*Layout

// keyDef is one key in a layout file.
type keyDef struct {
	Action     string   `toml:"action"`
	Label      string   `toml:"label"`
	Width      float32  `toml:"width"`
	SwipeUp    string   `toml:"swipe_up"`
	SwipeDown  string   `toml:"swipe_down"`
	SwipeLeft  string   `toml:"swipe_left"`
	SwipeRight string   `toml:"swipe_right"`
	HideSwipes bool     `toml:"hide_swipes"`
	Callouts   []string `toml:"callouts"`
}

type rowDef struct {
	Keys []keyDef `toml:"keys"`
}

type layoutDef struct {
	Rows []rowDef `toml:"rows"`
}

type layoutFile struct {
	Keyboards map[string]layoutDef `toml:"keyboards"`
}

// DefaultLayouts returns the built in layouts.
func DefaultLayouts() Layouts {
	layouts, err := ParseLayouts(defaultLayoutTOML)
	if err != nil {
		// The embedded file is part of the binary; failing to parse it is a build defect.
		panic(fmt.Sprintf("keyboard: embedded layout: %v", err))
	}
	return layouts
}

// LoadLayouts reads a layout file. An empty path yields the built in layouts.
func LoadLayouts(path string) (Layouts, error) {
	if path == "" {
		return DefaultLayouts(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout file '%s': %w", path, err)
	}
	layouts, err := ParseLayouts(string(data))
	if err != nil {
		return nil, fmt.Errorf("layout file '%s': %w", path, err)
	}
	logger.DebugTagf("keyboard", "Loaded %d layouts from %s", len(layouts), path)
	return layouts, nil
}

// ParseLayouts decodes layout TOML. Every layout needs at least one key, and
// an alphabetic layout must be present.
func ParseLayouts(data string) (Layouts, error) {
	var file layoutFile
	md, err := toml.Decode(data, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Layout: unrecognized keys: %v", undecoded)
	}

	layouts := make(Layouts, len(file.Keyboards))
	for name, def := range file.Keyboards {
		t, ok := ParseType(name)
		if !ok {
			return nil, fmt.Errorf("unknown keyboard type %q", name)
		}
		l, err := buildLayout(t, def)
		if err != nil {
			return nil, fmt.Errorf("keyboard %s: %w", name, err)
		}
		layouts[t] = l
	}
	if _, ok := layouts[Alphabetic]; !ok {
		return nil, fmt.Errorf("layout has no %s keyboard", Alphabetic)
	}
	return layouts, nil
}

func buildLayout(t Type, def layoutDef) (*Layout, error) {
	rows := make([][]*Key, 0, len(def.Rows))
	count := 0
	for r, rd := range def.Rows {
		row := make([]*Key, 0, len(rd.Keys))
		for c, kd := range rd.Keys {
			k, err := buildKey(ID{Row: r, Column: c}, kd)
			if err != nil {
				return nil, err
			}
			row = append(row, k)
			count++
		}
		rows = append(rows, row)
	}
	if count == 0 {
		return nil, fmt.Errorf("no keys")
	}
	return NewLayout(t, rows), nil
}

func buildKey(id ID, kd keyDef) (*Key, error) {
	action, err := ParseAction(kd.Action)
	if err != nil {
		return nil, fmt.Errorf("key %v: %w", id, err)
	}
	k := NewKey(id, action)
	if kd.Label != "" {
		k.Label = kd.Label
	}
	if kd.Width > 0 {
		k.Width = kd.Width
	}
	if action.IsSpacer() {
		return k, nil
	}
	k.Callouts = kd.Callouts

	for _, sw := range []struct {
		dir gesture.Direction
		def string
	}{
		{gesture.Up, kd.SwipeUp},
		{gesture.Down, kd.SwipeDown},
		{gesture.Left, kd.SwipeLeft},
		{gesture.Right, kd.SwipeRight},
	} {
		if sw.def == "" {
			continue
		}
		a, err := ParseAction(sw.def)
		if err != nil {
			return nil, fmt.Errorf("key %v swipe %v: %w", id, sw.dir, err)
		}
		if err := k.AddSwipe(SwipeBinding{Direction: sw.dir, Action: a, Visible: !kd.HideSwipes}); err != nil {
			return nil, err
		}
	}
	return k, nil
}

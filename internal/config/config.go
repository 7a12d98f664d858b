// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/softkeys/internal/gesture"
	"github.com/bethropolis/softkeys/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config  `toml:"logger"`
	Gesture  GestureConfig  `toml:"gesture"`
	Keyboard KeyboardConfig `toml:"keyboard"`
	Feedback FeedbackConfig `toml:"feedback"`
	UI       UIConfig       `toml:"ui"`

	// Path is the file the config was read from, empty if none was found.
	Path string `toml:"-"`

	problems []string
}

// Duration is a time.Duration written as a string such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// GestureConfig is the [gesture] table. It maps onto gesture.Thresholds.
type GestureConfig struct {
	DistanceThreshold float32 `toml:"distance_threshold"`
	// TangentThreshold takes precedence over AngleDegrees when both are set.
	TangentThreshold        float32  `toml:"tangent_threshold"`
	AngleDegrees            float64  `toml:"angle_threshold_degrees"`
	LongPressDelay          Duration `toml:"long_press_delay"`
	RepeatDelay             Duration `toml:"repeat_delay"`
	RepeatInterval          Duration `toml:"repeat_interval"`
	DoubleTapInterval       Duration `toml:"double_tap_interval"`
	ReleaseOutsideTolerance float32  `toml:"release_outside_tolerance"`
	SpaceDragSensitivity    int      `toml:"space_drag_sensitivity"`
}

// KeyboardConfig is the [keyboard] table.
type KeyboardConfig struct {
	// Layout is a layout file; empty uses the built in layouts.
	Layout                     string            `toml:"layout"`
	SpaceLongPress             string            `toml:"space_long_press"`
	AutoLowercase              bool              `toml:"auto_lowercase"`
	ReturnToPrimaryAfterSymbol bool              `toml:"return_to_primary_after_symbol"`
	RecentSymbols              int               `toml:"recent_symbols"`
	AfterDigit                 map[string]string `toml:"after_digit"`
}

// FeedbackConfig is the [feedback] table.
type FeedbackConfig struct {
	Sound  bool `toml:"sound"`
	Haptic bool `toml:"haptic"`
}

// UIConfig is the [ui] table of the terminal host.
type UIConfig struct {
	// ThemeFile is a TOML theme; empty uses the built in theme.
	ThemeFile string `toml:"theme_file"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config with default values.
func NewDefaultConfig() *Config {
	th := gesture.DefaultThresholds()
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: DefaultLogFileName,
		},
		Gesture: GestureConfig{
			DistanceThreshold:       th.DistanceThreshold,
			TangentThreshold:        th.TangentThreshold,
			LongPressDelay:          Duration{th.LongPressDelay},
			RepeatDelay:             Duration{th.RepeatDelay},
			RepeatInterval:          Duration{th.RepeatInterval},
			DoubleTapInterval:       Duration{th.DoubleTapInterval},
			ReleaseOutsideTolerance: th.ReleaseOutsideTolerance,
			SpaceDragSensitivity:    th.SpaceDragSensitivity,
		},
		Keyboard: KeyboardConfig{
			SpaceLongPress:             SpaceLongPressMoveCursor,
			AutoLowercase:              true,
			ReturnToPrimaryAfterSymbol: true,
			RecentSymbols:              DefaultRecentSymbols,
		},
		Feedback: FeedbackConfig{Sound: true},
	}
}

// DefaultPath returns the per user config file location, empty when the
// platform has no config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// Load reads path over the defaults, applies flag overrides and validates the
// result. A missing file is not an error. An empty path means DefaultPath.
// Load does not touch the cached config returned by Get, so it also serves
// live reloads.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	var err error
	if path != "" {
		err = cfg.loadFromFile(path)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// loadFromFile decodes path on top of the values already in c, so keys the
// file leaves out keep their defaults.
func (c *Config) loadFromFile(path string) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		c.note("config file not found: %s", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", path, err)
	}

	// The [gesture] cone can be given either way; decide which after decoding.
	c.Gesture.TangentThreshold = 0
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		c.note("config file '%s': unrecognized keys: %v", path, undecoded)
	}
	c.Path = path
	return nil
}

// validate resets invalid values to defaults and records what it changed.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if _, err := logger.ParseLevel(c.Logger.LogLevel); err != nil {
		c.note("%v, using %q", err, defaults.Logger.LogLevel)
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Logger.LogFilePath == "" {
		c.Logger.LogFilePath = defaults.Logger.LogFilePath
	}

	g, dg := &c.Gesture, defaults.Gesture
	if g.TangentThreshold == 0 && g.AngleDegrees > 0 {
		g.TangentThreshold = gesture.TangentForAngle(g.AngleDegrees)
	}
	if g.TangentThreshold <= 0 || g.TangentThreshold >= 1 {
		if g.TangentThreshold != 0 {
			c.note("tangent threshold %v out of range, using default", g.TangentThreshold)
		}
		g.TangentThreshold = dg.TangentThreshold
	}
	if g.DistanceThreshold <= 0 {
		c.note("distance threshold %v not positive, using default", g.DistanceThreshold)
		g.DistanceThreshold = dg.DistanceThreshold
	}
	for _, d := range []struct {
		name     string
		v        *Duration
		def      Duration
		zeroOkay bool
	}{
		{"long_press_delay", &g.LongPressDelay, dg.LongPressDelay, false},
		{"repeat_delay", &g.RepeatDelay, dg.RepeatDelay, false},
		{"repeat_interval", &g.RepeatInterval, dg.RepeatInterval, false},
		{"double_tap_interval", &g.DoubleTapInterval, dg.DoubleTapInterval, true},
	} {
		if d.v.Duration < 0 || (d.v.Duration == 0 && !d.zeroOkay) {
			c.note("%s %v invalid, using %v", d.name, d.v.Duration, d.def.Duration)
			*d.v = d.def
		}
	}
	if g.ReleaseOutsideTolerance < 0 {
		c.note("release outside tolerance %v negative, using default", g.ReleaseOutsideTolerance)
		g.ReleaseOutsideTolerance = dg.ReleaseOutsideTolerance
	}
	if g.SpaceDragSensitivity <= 0 {
		c.note("space drag sensitivity %d not positive, using default", g.SpaceDragSensitivity)
		g.SpaceDragSensitivity = dg.SpaceDragSensitivity
	}

	switch c.Keyboard.SpaceLongPress {
	case SpaceLongPressMoveCursor, SpaceLongPressNone:
	default:
		c.note("unknown space_long_press %q, using %q", c.Keyboard.SpaceLongPress, defaults.Keyboard.SpaceLongPress)
		c.Keyboard.SpaceLongPress = defaults.Keyboard.SpaceLongPress
	}
	if c.Keyboard.RecentSymbols <= 0 {
		c.Keyboard.RecentSymbols = defaults.Keyboard.RecentSymbols
	}
}

func (c *Config) note(format string, args ...any) {
	c.problems = append(c.problems, fmt.Sprintf(format, args...))
}

// Problems lists what loading noticed: missing files, unknown keys and
// values reset to defaults. Loading runs before the logger exists, so the
// caller logs these once logging is up.
func (c *Config) Problems() []string {
	return c.problems
}

// Thresholds converts the [gesture] table into the engine policy.
func (c *Config) Thresholds() gesture.Thresholds {
	g := c.Gesture
	return gesture.Thresholds{
		DistanceThreshold:       g.DistanceThreshold,
		TangentThreshold:        g.TangentThreshold,
		LongPressDelay:          g.LongPressDelay.Duration,
		RepeatDelay:             g.RepeatDelay.Duration,
		RepeatInterval:          g.RepeatInterval.Duration,
		ReleaseOutsideTolerance: g.ReleaseOutsideTolerance,
		SpaceDragSensitivity:    g.SpaceDragSensitivity,
		DoubleTapInterval:       g.DoubleTapInterval.Duration,
	}
}

// SpaceCursorDrag reports whether a long press on space arms cursor dragging.
func (c *Config) SpaceCursorDrag() bool {
	return c.Keyboard.SpaceLongPress == SpaceLongPressMoveCursor
}

// LoadConfig loads the process configuration once. It should be called from
// main; later calls return the first result.
func LoadConfig(path string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(path, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the configuration loaded by LoadConfig. Panics if LoadConfig
// wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// Package logger provides filtered, leveled logging for the keyboard engine.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// debugFilter traces filter decisions to stderr. It is only ever flipped on
// by hand while debugging a filter configuration.
var debugFilter = false

// Config holds all settings for the logger. It is embedded as the [logger]
// table of the application config.
type Config struct {
	// LogLevel is the minimum level: "debug", "info", "warn" or "error".
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output file. "-" means stderr.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only passes tagged messages whose tag is listed (if non-empty).
	// Untagged messages are dropped while this is set.
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages carrying these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only passes messages from these packages (if non-empty).
	// The package is the directory name of the caller, e.g. "touch".
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only passes messages from these base file names (if non-empty).
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these files.
	DisabledFiles []string `toml:"disabled_files"`

	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig returns the defaults: info level, file chosen by the caller.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// process turns the string lists into lookup sets.
func (c *Config) process() {
	c.level, _ = ParseLevel(c.LogLevel)

	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)

	if debugFilter {
		fmt.Fprintf(os.Stderr, "[LOGGER] level=%v tags=+%v-%v packages=+%v-%v\n",
			c.level, c.enabledTagsSet, c.disabledTagsSet, c.enabledPackagesSet, c.disabledPackagesSet)
	}
}

// sliceToSet lowercases items into a set, nil when empty.
func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

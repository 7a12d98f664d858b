// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"
	"time"
)

// Flags holds values parsed from command-line flags. Only flags that were
// actually set override the config file.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	Layout         *string
	SpaceLongPress *string
	LongPressDelay *time.Duration
	Sound          *bool
	Haptic         *bool
	ThemeFile      *string
}

// DefineFlags registers the flags on fs. A nil fs uses flag.CommandLine.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.Layout = fs.String("layout", "", "Path to a TOML keyboard layout file - Overrides config file")
	f.SpaceLongPress = fs.String("space-long-press", "", "Space long press behavior (move-cursor, none) - Overrides config file")
	f.LongPressDelay = fs.Duration("long-press-delay", 0, "Long press delay, e.g. 450ms - Overrides config file")
	f.Sound = fs.Bool("sound", true, "Ring the terminal bell on key feedback - Overrides config file")
	f.Haptic = fs.Bool("haptic", false, "Log haptic feedback pulses - Overrides config file")
	f.ThemeFile = fs.String("theme", "", "Path to a TOML theme file - Overrides config file")
}

// ParseFlags defines the flags on the command line set, parses os.Args and
// returns the remaining arguments.
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(flag.CommandLine)
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates cfg with the flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "layout":
			cfg.Keyboard.Layout = *f.Layout
		case "space-long-press":
			cfg.Keyboard.SpaceLongPress = *f.SpaceLongPress
		case "long-press-delay":
			if *f.LongPressDelay > 0 {
				cfg.Gesture.LongPressDelay = Duration{*f.LongPressDelay}
			}
		case "sound":
			cfg.Feedback.Sound = *f.Sound
		case "haptic":
			cfg.Feedback.Haptic = *f.Haptic
		case "theme":
			cfg.UI.ThemeFile = *f.ThemeFile
		default:
			return
		}
		cfg.note("flag -%s=%s overrides config", fl.Name, fl.Value)
	})
}

// splitCommaList splits a comma separated flag value, dropping blanks.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

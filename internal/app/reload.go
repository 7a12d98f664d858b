package app

import (
	"github.com/bethropolis/softkeys/internal/config"
	"github.com/bethropolis/softkeys/internal/dispatch"
	"github.com/bethropolis/softkeys/internal/event"
	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/logger"
	"github.com/bethropolis/softkeys/internal/theme"
)

// behavior extracts the dispatcher switches from cfg.
func behavior(cfg *config.Config) dispatch.Behavior {
	return dispatch.Behavior{
		AutoLowercase:              cfg.Keyboard.AutoLowercase,
		ReturnToPrimaryAfterSymbol: cfg.Keyboard.ReturnToPrimaryAfterSymbol,
		SpaceCursorDrag:            cfg.SpaceCursorDrag(),
	}
}

// replacement builds the after digit policy, nil when none is configured.
func (a *App) replacement(cfg *config.Config) dispatch.ReplacementPolicy {
	if len(cfg.Keyboard.AfterDigit) == 0 {
		return nil
	}
	return dispatch.AfterDigit{Context: a.doc, Map: cfg.Keyboard.AfterDigit}
}

// reloadConfig re-reads the config file with the original flags on top and
// swaps it into every component. Touches in flight are cancelled by the
// router. A file that fails to parse leaves the running config alone.
func (a *App) reloadConfig() {
	cfg, err := config.Load(a.opts.ConfigPath, a.opts.Flags)
	if err != nil {
		logger.Errorf("App: reload: %v", err)
		a.message("reload failed: %v", err)
		return
	}

	if a.opts.LogOutput != nil {
		if cfg.Logger.LogFilePath != a.cfg.Logger.LogFilePath {
			logger.Warnf("App: log_file changes need a restart, still writing to %s", a.cfg.Logger.LogFilePath)
			cfg.Logger.LogFilePath = a.cfg.Logger.LogFilePath
		}
		logger.Init(cfg.Logger, a.opts.LogOutput)
	}
	for _, p := range cfg.Problems() {
		logger.Warnf("Config: %s", p)
	}

	a.cfg = cfg
	a.layouts = a.loadLayouts(cfg)
	primary := a.layoutFor(keyboard.Alphabetic)

	a.callout.Close()
	a.router.Reload(cfg.Thresholds(), primary, cfg.SpaceCursorDrag())
	a.callout.SetBounds(primary)
	a.dispatcher.SetBehavior(behavior(cfg))
	a.dispatcher.SetReplacement(a.replacement(cfg))
	a.feedback.Configure(cfg.Feedback.Sound, cfg.Feedback.Haptic)
	a.recent.Resize(cfg.Keyboard.RecentSymbols)

	a.activeTheme = theme.Load(cfg.UI.ThemeFile)
	a.tuiManager.SetTheme(a.activeTheme)

	// The reloaded layouts start on the primary keyboard.
	a.dispatcher.SetKeyboardType(keyboard.Alphabetic)
	a.arrange()

	a.eventManager.Dispatch(event.TypeConfigReloaded, event.ConfigReloadedData{Path: cfg.Path})
	if cfg.Path != "" {
		a.message("reloaded %s", cfg.Path)
	} else {
		a.message("reloaded defaults")
	}
	logger.Infof("App: config reloaded from %q", cfg.Path)
}

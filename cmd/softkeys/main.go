// cmd/softkeys/main.go
package main

import (
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/softkeys/internal/app"
	"github.com/bethropolis/softkeys/internal/config"
	"github.com/bethropolis/softkeys/internal/logger"
)

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	flags.ParseFlags()
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		os.Exit(0)
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logOutput, closeLog, err := logger.OpenOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", cfg.Logger.LogFilePath, err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s...", config.AppName, config.Version)
	if cfg.Path != "" {
		logger.Debugf("Config file: %s", cfg.Path)
	}
	for _, p := range cfg.Problems() {
		logger.Warnf("Config: %s", p)
	}

	// --- Create and Run App ---
	softkeys, err := app.New(cfg, app.Options{
		Flags:      &flags,
		ConfigPath: *flags.ConfigFilePath,
		LogOutput:  logOutput,
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		closeLog()
		os.Exit(1)
	}

	if err := softkeys.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}

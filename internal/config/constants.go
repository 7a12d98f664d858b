package config

import "time"

// Base application details
const AppName = "softkeys"
const Version = "0.3.0"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "softkeys.log"

// Status Bar
const MessageTimeout = 4 * time.Second

// Keyboard behavior
const SpaceLongPressMoveCursor = "move-cursor"
const SpaceLongPressNone = "none"
const DefaultRecentSymbols = 16

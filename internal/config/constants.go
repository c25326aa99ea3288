package config

import "time"

// Base application details
const AppName = "mkedit"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultMasksFileName = "masks.toml"
const DefaultLogFileName = "mkedit.log"
const Version = "0.3.0"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editing
const DefaultMergeWindowMs = 200
const SystemClipboard = false

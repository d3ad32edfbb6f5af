package config

import "time"

// Base application details
const AppName = "dream"
const ConfigDirName = "dream"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "dream.log"
const DefaultProjectExt = ".dream.json"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Canvas defaults. One terminal cell covers CellWidth x CellHeight canvas units.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
	DefaultCellWidth    = 8.0
	DefaultCellHeight   = 16.0
)

// Editing defaults
const (
	DefaultMaxHistory         = 100
	DefaultHandleTolerance    = 8.0
	DefaultRotateHandleOffset = 30.0
	DefaultNudgeStep          = 1.0
	DefaultPasteOffset        = 10.0
	DefaultFill               = "#FFFFFF"
	DefaultStroke             = "#000000"
	DefaultStrokeWidth        = 2.0
	SystemClipboard           = true
)

// Storage defaults
const DefaultSnapshotKeep = 50

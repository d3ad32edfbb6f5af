// Package config loads the TOML configuration and applies flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/sinbaddoraji/Dream/internal/validation"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config             `toml:"logger"`
	Editor  EditorConfig              `toml:"editor"`
	Storage StorageConfig             `toml:"storage"`
	Plugins map[string]map[string]any `toml:"plugins"` // [plugins.<name>] tables
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	MaxHistorySize     int     `toml:"max_history_size"`
	HandleTolerance    float64 `toml:"handle_tolerance"`
	RotateHandleOffset float64 `toml:"rotate_handle_offset"`
	NudgeStep          float64 `toml:"nudge_step"`
	PasteOffset        float64 `toml:"paste_offset"`
	SystemClipboard    bool    `toml:"system_clipboard"`
	CanvasWidth        int     `toml:"canvas_width"`
	CanvasHeight       int     `toml:"canvas_height"`
	CellWidth          float64 `toml:"cell_width"`
	CellHeight         float64 `toml:"cell_height"`
	DefaultFill        string  `toml:"default_fill"`
	DefaultStroke      string  `toml:"default_stroke"`
	StrokeWidth        float64 `toml:"stroke_width"`
	StatusBarHeight    int     `toml:"status_bar_height"`
}

// StorageConfig selects the snapshot database.
type StorageConfig struct {
	DSN  string `toml:"dsn"`  // SQLite path or Postgres DSN; empty uses the user cache dir
	Keep int    `toml:"keep"` // Snapshots kept per project
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "",
		},
		Editor: EditorConfig{
			MaxHistorySize:     DefaultMaxHistory,
			HandleTolerance:    DefaultHandleTolerance,
			RotateHandleOffset: DefaultRotateHandleOffset,
			NudgeStep:          DefaultNudgeStep,
			PasteOffset:        DefaultPasteOffset,
			SystemClipboard:    SystemClipboard,
			CanvasWidth:        DefaultCanvasWidth,
			CanvasHeight:       DefaultCanvasHeight,
			CellWidth:          DefaultCellWidth,
			CellHeight:         DefaultCellHeight,
			DefaultFill:        DefaultFill,
			DefaultStroke:      DefaultStroke,
			StrokeWidth:        DefaultStrokeWidth,
			StatusBarHeight:    StatusBarHeight,
		},
		Storage: StorageConfig{
			Keep: DefaultSnapshotKeep,
		},
		Plugins: map[string]map[string]any{},
	}
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config, verbose bool) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	// Decoding into the defaults leaves keys absent from the file untouched.
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
// It returns the problems it fixed.
func (c *Config) validate() []error {
	d := NewDefaultConfig().Editor
	e := &c.Editor
	var problems []error

	resetInt := func(field string, v *int, def int) {
		if _, err := validation.ValidatePositive(field, *v); err != nil {
			problems = append(problems, err)
			*v = def
		}
	}
	resetFloat := func(field string, v *float64, def float64) {
		if _, err := validation.ValidatePositive(field, *v); err != nil {
			problems = append(problems, err)
			*v = def
		}
	}
	resetColor := func(field string, v *string, def string) {
		norm, err := validation.NormalizeColor(*v)
		if err != nil {
			problems = append(problems, &validation.Error{Field: field, Message: err.Error()})
			norm = def
		}
		*v = norm
	}

	resetInt("max_history_size", &e.MaxHistorySize, d.MaxHistorySize)
	resetFloat("handle_tolerance", &e.HandleTolerance, d.HandleTolerance)
	resetFloat("rotate_handle_offset", &e.RotateHandleOffset, d.RotateHandleOffset)
	resetFloat("nudge_step", &e.NudgeStep, d.NudgeStep)
	resetInt("canvas_width", &e.CanvasWidth, d.CanvasWidth)
	resetInt("canvas_height", &e.CanvasHeight, d.CanvasHeight)
	resetFloat("cell_width", &e.CellWidth, d.CellWidth)
	resetFloat("cell_height", &e.CellHeight, d.CellHeight)
	resetInt("status_bar_height", &e.StatusBarHeight, d.StatusBarHeight)
	resetColor("default_fill", &e.DefaultFill, d.DefaultFill)
	resetColor("default_stroke", &e.DefaultStroke, d.DefaultStroke)

	if e.PasteOffset < 0 {
		problems = append(problems, &validation.Error{Field: "paste_offset", Message: "must not be negative"})
		e.PasteOffset = d.PasteOffset
	}
	if _, err := validation.ValidateStrokeWidth(e.StrokeWidth); err != nil {
		problems = append(problems, err)
		e.StrokeWidth = validation.Clamp(e.StrokeWidth, 0.5, 100)
	}

	if c.Storage.Keep <= 0 {
		problems = append(problems, &validation.Error{Field: "keep", Message: "must be positive"})
		c.Storage.Keep = DefaultSnapshotKeep
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = "info"
	}
	if c.Plugins == nil {
		c.Plugins = map[string]map[string]any{}
	}
	return problems
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
}

// Load builds a configuration from defaults, the file at path (the default
// location when empty), and flags, then validates it. Invalid values are reset
// to defaults; the returned error reports file problems only.
func Load(path string, flags *Flags, verbose bool) (*Config, []error, error) {
	cfg := NewDefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	var fileErr error
	if path != "" {
		fileErr = loadFromFile(path, cfg, verbose)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg, verbose)
	}
	problems := cfg.validate()
	return cfg, problems, fileErr
}

// LoadConfig loads the process-wide configuration once. Call it from main
// before the logger is initialized.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		var problems []error
		loadedConfig, problems, loadErr = Load(configFilePath, flags, false)
		pendingProblems = problems
	})
	return loadedConfig, loadErr
}

// pendingProblems holds validation problems found before logging was ready.
var pendingProblems []error

// ReportProblems logs validation problems found by LoadConfig. Call it after logger.Init.
func ReportProblems() {
	for _, p := range pendingProblems {
		logger.Warnf("Config: %v (default used)", p)
	}
	pendingProblems = nil
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// PluginSettings returns the [plugins.<name>] table, or nil.
func (c *Config) PluginSettings(name string) map[string]any {
	if c == nil || c.Plugins == nil {
		return nil
	}
	return c.Plugins[name]
}

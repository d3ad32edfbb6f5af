package config

import (
	"fmt"
	"strings"

	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/spf13/pflag"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFilePath *string
	LogLevel       *string
	LogFilePath    *string
	MaxHistory     *int
	CanvasWidth    *int
	CanvasHeight   *int
	StorageDSN     *string
	// Logger filters
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	SystemClipboard *bool
}

// DefineFlags registers the flags on fs, or on the process flag set when fs is nil.
func (f *Flags) DefineFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	f.fs = fs
	f.ConfigFilePath = fs.StringP("config", "c", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.MaxHistory = fs.Int("max-history", 0, "Undo history size - Overrides config file")
	f.CanvasWidth = fs.Int("width", 0, "Canvas width in canvas units - Overrides config file")
	f.CanvasHeight = fs.Int("height", 0, "Canvas height in canvas units - Overrides config file")
	f.StorageDSN = fs.String("storage", "", "Snapshot database: SQLite path or Postgres DSN - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", SystemClipboard, "Mirror copies to the system clipboard")
}

// Parse defines the flags on fs and parses args.
// It returns the remaining non-flag arguments (e.g., the project path).
func (f *Flags) Parse(fs *pflag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ConfigPath returns the --config value, or "" when flags were not defined.
func (f *Flags) ConfigPath() string {
	if f == nil || f.ConfigFilePath == nil {
		return ""
	}
	return *f.ConfigFilePath
}

// ApplyOverrides updates cfg with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *pflag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "max-history":
			if *f.MaxHistory > 0 {
				cfg.Editor.MaxHistorySize = *f.MaxHistory
			}
		case "width":
			if *f.CanvasWidth > 0 {
				cfg.Editor.CanvasWidth = *f.CanvasWidth
			}
		case "height":
			if *f.CanvasHeight > 0 {
				cfg.Editor.CanvasHeight = *f.CanvasHeight
			}
		case "storage":
			cfg.Storage.DSN = *f.StorageDSN
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
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
		}
	})
}

// splitCommaList splits a comma-separated list, dropping blanks.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

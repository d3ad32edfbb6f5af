package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sinbaddoraji/Dream/internal/app"
	"github.com/sinbaddoraji/Dream/internal/config"
	"github.com/sinbaddoraji/Dream/internal/logger"
	"github.com/spf13/cobra"
)

const (
	version        = "0.1.0-dev"
	defaultLogFile = "dream.log"
)

var flags config.Flags

func main() {
	root := &cobra.Command{
		Use:           "dream [project]",
		Short:         "Terminal vector drawing editor",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runEditor,
	}
	flags.DefineFlags(root.PersistentFlags())

	root.AddCommand(newVersionCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newSnapshotsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and starts logging to logPath, or to the
// configured log file when that is set.
func setup(logPath string) (*config.Config, io.Closer, error) {
	cfg, err := config.LoadConfig(flags.ConfigPath(), &flags)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Logger.LogFilePath != "" {
		logPath = cfg.Logger.LogFilePath
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)
	if logPath != "" && logPath != "-" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file '%s': %w", logPath, err)
		}
		out, closer = f, f
	}
	logger.Init(cfg.Logger, out)
	config.ReportProblems()
	return cfg, closer, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	// The screen belongs to the editor, so logs go to a file.
	cfg, closer, err := setup(defaultLogFile)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}
	logger.Infof("Starting Dream %s", version)

	dream, err := app.NewApp(app.Options{Config: cfg, FilePath: path})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	if err := dream.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	logger.Infof("Dream finished.")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dream %s\n", version)
		},
	}
}

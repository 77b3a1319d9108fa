// Resonanz: a concept demo that simulates the analysis of a thought.
//
// Usage:
//
//	resonanz ui                  # Terminal page
//	resonanz serve               # MCP server (stdio transport)
//	resonanz analyze <text>      # One-shot analysis as JSON
//	resonanz history [--search]  # Journal of earlier thoughts
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/config"
	"github.com/HendryAvila/resonanz/internal/logging"
)

var (
	configPath string
	verbose    bool
	logFile    string

	cfg    *config.Config
	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resonanz",
		Short: "Simulated resonance analysis of a single thought",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			// The terminal page owns the screen; its logs go to a file.
			file := logFile
			if file == "" && cmd.Name() == "ui" {
				file = filepath.Join(os.TempDir(), "resonanz-ui.log")
			}
			logger, err = logging.New(logging.Options{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				Verbose: verbose,
				File:    file,
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
	}
	root.Version = version
	root.SetVersionTemplate("{{.Version}}\n")

	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the config file")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")

	root.AddCommand(uiCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(analyzeCmd())
	root.AddCommand(historyCmd())
	root.AddCommand(versionCmd())
	return root
}

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/tui"
)

func uiCmd() *cobra.Command {
	var glamourStyle string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the resonance page in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(glamourStyle)
		},
	}
	cmd.Flags().StringVar(&glamourStyle, "markdown-style", "dark", "Markdown style for the module tab (dark, light, notty)")
	return cmd
}

func runUI(glamourStyle string) error {
	j, err := openJournal(context.Background(), cfg.Journal.DSN)
	if err != nil {
		logger.Warn("journal disabled", zap.Error(err))
		j = nil
	}
	if j != nil {
		defer j.Close()
	}

	bridge := tui.NewBridge(128)
	defer bridge.Close()

	pc := cfg.PageConfig()
	pc.Journal = j
	pc.OnEvent = bridge.Send
	p := page.New(pc, logger)
	defer p.Close()
	p.Composer.Start()

	m := tui.New(p, bridge, tui.Options{GlamourStyle: glamourStyle, Logger: logger.Named("tui")})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal page: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/page"
	"github.com/HendryAvila/resonanz/internal/simulator"
)

func analyzeCmd() *cobra.Command {
	var noDelay bool
	cmd := &cobra.Command{
		Use:   "analyze <text>",
		Short: "Analyze one thought and print the result as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, strings.Join(args, " "), noDelay)
		},
	}
	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "Skip the simulated analysis delay")
	return cmd
}

func runAnalyze(cmd *cobra.Command, text string, noDelay bool) error {
	ctx := context.Background()

	j, err := openJournal(ctx, cfg.Journal.DSN)
	if err != nil {
		// The analysis stands on its own; it just goes unrecorded.
		logger.Warn("journal disabled", zap.Error(err))
		j = nil
	}
	if j != nil {
		defer j.Close()
	}

	pc := cfg.PageConfig()
	pc.Journal = j
	if noDelay {
		pc.Simulator = simulator.Config{}
	}
	p := page.New(pc, logger)
	defer p.Close()

	t, err := p.Input.Submit(ctx, text)
	if errors.Is(err, page.ErrBlankThought) {
		return errors.New(page.BlankNotice)
	}
	if err != nil {
		return err
	}

	out := struct {
		ID       string `json:"id"`
		Analysis any    `json:"analysis"`
	}{ID: t.ID, Analysis: p.Input.LastAnalysis()}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling analysis: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/resonanz/internal/journal"
)

func historyCmd() *cobra.Command {
	var search string
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List earlier thoughts from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, search, limit)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Full-text search query")
	cmd.Flags().IntVar(&limit, "limit", journal.DefaultLimit, "Max results")
	return cmd
}

func runHistory(cmd *cobra.Command, search string, limit int) error {
	ctx := context.Background()

	j, err := openJournal(ctx, cfg.Journal.DSN)
	if err != nil {
		return err
	}
	if j == nil {
		return errors.New("no journal configured: set journal.dsn in the config file")
	}
	defer j.Close()

	var entries []journal.Entry
	if search == "" {
		entries, err = j.Recent(ctx, limit)
	} else {
		entries, err = j.Search(ctx, search, limit)
	}
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No thoughts found.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(out, "%s  %-40s  %.1f/10  %d%%  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Content, e.ResonanceLevel, e.Gesamtresonanz, e.Security)
	}
	return nil
}

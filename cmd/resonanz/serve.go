package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HendryAvila/resonanz/internal/page"
	rserver "github.com/HendryAvila/resonanz/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	j, err := openJournal(ctx, cfg.Journal.DSN)
	if err != nil {
		// The journal is optional; the page works without it.
		logger.Warn("journal disabled", zap.Error(err))
		j = nil
	}
	if j != nil {
		defer func() {
			if err := j.Close(); err != nil {
				logger.Warn("closing journal", zap.Error(err))
			}
		}()
	}

	pc := cfg.PageConfig()
	pc.Journal = j
	p := page.New(pc, logger)
	defer p.Close()
	p.Composer.Start()

	s := rserver.New(p, j, logger.Named("mcp"))
	logger.Info("serving MCP over stdio", zap.String("version", version))
	if err := server.ServeStdio(s); err != nil {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/resonanz/internal/journal"
	"github.com/HendryAvila/resonanz/internal/journal/postgres"
	"github.com/HendryAvila/resonanz/internal/journal/sqlite"
)

// openJournal opens the journal named by dsn. An empty dsn disables the
// journal and returns nil.
func openJournal(ctx context.Context, dsn string) (journal.Journal, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		s, err := sqlite.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		c, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported journal dsn %q", dsn)
	}
}

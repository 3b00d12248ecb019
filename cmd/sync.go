package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/catalog"
	"github.com/chriserin/gherk/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Parse every feature file and index it in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(ctx context.Context, w io.Writer) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	defer p.logger.Sync()

	sqlDB, err := p.openDB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	paths, err := p.featureFiles()
	if err != nil {
		return err
	}

	results, err := catalog.Sync(ctx, sqlDB, paths, catalog.Options{
		Workers: p.cfg.Workers,
		Parse:   p.parseOptions(),
		Logger:  p.logger,
	})
	if err != nil {
		return fmt.Errorf("syncing: %w", err)
	}

	failed := 0
	for _, r := range results {
		switch r.State {
		case catalog.StateNew:
			ui.NewLine(w, r.Path, r.Scenarios)
		case catalog.StateUpdated:
			ui.UpdLine(w, r.Path, r.Scenarios)
		case catalog.StateError:
			ui.ErrLine(w, r.Path)
			ui.ParseError(w, r.Err)
			failed++
		}
	}

	ui.SummaryLine(w, len(results), failed)
	return nil
}

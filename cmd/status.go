package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/catalog"
	"github.com/chriserin/gherk/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	sqlDB, err := p.openDB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	st, err := catalog.Summarize(context.Background(), sqlDB)
	if err != nil {
		return err
	}
	ui.Stats(w, st)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/catalog"
	"github.com/chriserin/gherk/internal/parser"
	"github.com/chriserin/gherk/internal/ui"
)

var (
	tagFlag  string
	kindFlag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed scenarios",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), tagFlag, kindFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&tagFlag, "tag", "", "Only scenarios carrying this tag")
	listCmd.Flags().StringVar(&kindFlag, "kind", "", "Only this kind: background, scenario or outline")
	rootCmd.AddCommand(listCmd)
}

func RunList(w io.Writer, tag, kind string) error {
	switch parser.Kind(kind) {
	case "", parser.KindBackground, parser.KindScenario, parser.KindOutline:
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}

	p, err := loadProject()
	if err != nil {
		return err
	}
	sqlDB, err := p.openDB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	entries, err := catalog.List(context.Background(), sqlDB, catalog.Filter{Tag: tag, Kind: parser.Kind(kind)})
	if err != nil {
		return err
	}
	ui.List(w, entries)
	return nil
}

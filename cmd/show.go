package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/catalog"
	"github.com/chriserin/gherk/internal/parser"
	"github.com/chriserin/gherk/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an indexed scenario with its background",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, rawID string) error {
	rawID = strings.TrimPrefix(rawID, "#")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid scenario ID: %s", rawID)
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

	entry, err := catalog.Lookup(context.Background(), sqlDB, id)
	if err != nil {
		return err
	}

	// The file may have changed since the last sync
	f, err := parser.ParseFile(entry.Path, p.parseOptions()...)
	if err != nil {
		return err
	}
	var matched *parser.Scenario
	for _, sc := range f.Units() {
		if sc.Line.Number == entry.Line && sc.Name == entry.Name {
			matched = sc
			break
		}
	}
	if matched == nil {
		return fmt.Errorf("scenario %d not found in %s, run `gherk sync`", id, entry.Path)
	}

	fmt.Fprintf(w, "#%d  %s:%d\n", entry.ID, entry.Path, entry.Line)
	fmt.Fprintf(w, "Feature: %s\n", f.Name)
	if f.Background != nil && !matched.Background {
		fmt.Fprintln(w)
		ui.Scenario(w, f.Background, len(f.Tags))
	}
	fmt.Fprintln(w)
	ui.Scenario(w, matched, len(f.Tags))
	return nil
}

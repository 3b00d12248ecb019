package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chriserin/gherk/internal/parser"
	"github.com/chriserin/gherk/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report parse errors in feature files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunCheck(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// RunCheck parses paths, or every feature file of the project when paths is
// empty, and reports each failure.
func RunCheck(w io.Writer, paths []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}
	defer p.logger.Sync()

	if len(paths) == 0 {
		if paths, err = p.featureFiles(); err != nil {
			return err
		}
	}

	failed := 0
	for _, path := range paths {
		if _, err := parser.ParseFile(path, p.parseOptions()...); err != nil {
			p.logger.Debug("check failed", zap.String("path", path), zap.Error(err))
			ui.ParseError(w, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(paths))
	}
	fmt.Fprintf(w, "checked %d files\n", len(paths))
	return nil
}

package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherk/internal/ui"
)

var (
	verboseFlag   bool
	configDirFlag string
)

var rootCmd = &cobra.Command{
	Use:           "gherk",
	Short:         "Parse, check and catalog Gherkin feature files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log progress to stderr")
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", ".", "Directory holding gherk.yaml")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.ParseError(os.Stderr, err)
		os.Exit(1)
	}
}

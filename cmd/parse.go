package cmd

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/gherk/internal/parser"
	"github.com/chriserin/gherk/internal/ui"
)

var formatFlag string

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a feature file and print its structure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunParse(cmd.OutOrStdout(), args[0], formatFlag)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text, json or yaml")
	rootCmd.AddCommand(parseCmd)
}

func RunParse(w io.Writer, path, format string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	f, err := parser.ParseFile(path, p.parseOptions()...)
	if err != nil {
		return err
	}

	switch format {
	case "text":
		ui.Feature(w, f)
	case "json":
		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssbundle"
	"github.com/yacobolo/cssbundle/internal/bundle"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the resolved @import tree",
	Long: `Resolve the entry stylesheet without writing anything and print its import
tree. External and already-inlined imports are marked, and stylesheets under
the source directory that the entry never reaches are listed.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildConfig()

		res, orphans, err := cssbundle.Graph(config)
		if err != nil {
			return fmt.Errorf("graph failed: %w", err)
		}

		reporter := bundle.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr(), config)
		reporter.PrintGraph(res, orphans)
		return nil
	},
}

func init() {
	f := graphCmd.Flags()
	f.String("source", "src", "Source stylesheet directory")
	f.String("entry", "rosewood.css", "Entry stylesheet, relative to --source")
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssbundle"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the bundled and minified stylesheets",
	Long: `Inline every local @import reachable from the entry stylesheet and write
the result plus a minified copy to the output directory.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	addBuildFlags(buildCmd)
}

// addBuildFlags registers the build flags on cmd. The root command carries
// them too because it builds when no subcommand is given.
func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("watch", false, "Rebuild whenever a stylesheet changes")
	f.String("source", "src", "Source stylesheet directory")
	f.String("entry", "rosewood.css", "Entry stylesheet, relative to --source")
	f.String("out-dir", "dist", "Output directory for built stylesheets")
	f.String("bundle-name", "rosewood.css", "File name of the full stylesheet")
	f.String("minified-name", "rosewood.min.css", "File name of the minified stylesheet")
	f.String("output-format", "", "Output format: text|json")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	config := buildConfig()

	watch, _ := cmd.Flags().GetBool("watch")
	if watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return cssbundle.Watch(ctx, config, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	result, err := cssbundle.Build(config)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	outputFormat := getStringWithFallback("output-format", "build.format", "")
	format := cssbundle.DetermineOutputFormat(outputFormat)

	if config.Quiet {
		return nil
	}
	return cssbundle.WriteOutput(cmd.OutOrStdout(), result, format, config)
}

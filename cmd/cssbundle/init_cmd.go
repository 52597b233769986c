package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssbundle.yaml config file",
	Long:  `Create a .cssbundle.yaml configuration file in the current directory with the conventional layout.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".cssbundle.yaml"); err == nil && !force {
			return fmt.Errorf(".cssbundle.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".cssbundle.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .cssbundle.yaml")
		return nil
	},
}

const defaultConfig = `# cssbundle configuration

# Shared settings
verbose: false
quiet: false

# Build settings
build:
  source: src
  entry: rosewood.css       # relative to source
  dist: dist
  bundle: rosewood.css
  minified: rosewood.min.css
  format: text              # text | json

# Watch mode (cssbundle --watch)
watcher:
  dirs:                     # relative to source, not recursive
    - "."
    - "components"
  include:
    - "*.css"
  ignore:                   # gitignore syntax, matched against file names
    - ".#*"
    - "*~"
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}

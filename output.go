package cssbundle

import (
	"fmt"
	"io"

	"github.com/yacobolo/cssbundle/internal/bundle"
)

// DetermineOutputFormat selects the report format from the flag value
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	case "text", "":
		return OutputText
	default:
		// Invalid format, fall back to the default
		return DetermineDefaultOutputFormat()
	}
}

// DetermineDefaultOutputFormat returns the default output format
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputText
}

// WriteOutput writes a successful build result in the specified format
func WriteOutput(w io.Writer, result *BuildResult, format OutputFormat, config Config) error {
	switch format {
	case OutputJSON:
		if err := WriteJSON(w, result, config); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}
	default:
		reporter := bundle.NewReporter(w, w, config)
		reporter.BuildSucceeded(result)
	}
	return nil
}

package cssbundle

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/yacobolo/cssbundle/internal/bundle"
)

// JSONOutput represents the structured JSON export schema.
// It carries no timestamp so repeated builds produce identical reports.
type JSONOutput struct {
	Version   string         `json:"version"`
	Artifacts []JSONArtifact `json:"artifacts"`
	Sources   []string       `json:"sources"`
	Stats     bundle.Stats   `json:"stats"`
}

// JSONArtifact describes one written file
type JSONArtifact struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// WriteJSON writes the build result as JSON
func WriteJSON(w io.Writer, result *BuildResult, config Config) error {
	output := buildJSONOutput(result, config)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts BuildResult to JSONOutput
func buildJSONOutput(result *BuildResult, config Config) JSONOutput {
	// Sources relative to the source root, slash-separated
	sources := make([]string, len(result.Sources))
	root, err := filepath.Abs(config.SourceDir)
	for i, src := range result.Sources {
		sources[i] = filepath.ToSlash(src)
		if err != nil {
			continue
		}
		if rel, relErr := filepath.Rel(root, src); relErr == nil {
			sources[i] = filepath.ToSlash(rel)
		}
	}

	return JSONOutput{
		Version: "1.0",
		Artifacts: []JSONArtifact{
			{Path: filepath.ToSlash(result.Full.Path), Bytes: result.Full.Bytes},
			{Path: filepath.ToSlash(result.Minified.Path), Bytes: result.Minified.Bytes},
		},
		Sources: sources,
		Stats:   result.Stats,
	}
}

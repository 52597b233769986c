// Package cssbundle packages a tree of stylesheets into a single inlined
// stylesheet and a minified copy.
//
// # Building
//
// Resolve @import directives from an entry file and write both artifacts:
//
//	config := cssbundle.DefaultConfig()
//	config.SourceDir = "packages/css/src"
//	config.OutputDir = "packages/css/dist"
//	result, err := cssbundle.Build(config)
//
// Local imports are inlined depth-first, left to right. A file reached a
// second time (a diamond or a cycle) contributes nothing the second time.
// URL imports (http://, https://, //) are left in place and never fetched.
//
// # Minification
//
// Minify runs an ordered list of text transforms: strip comments, collapse
// whitespace, trim space around { } : ; , > ~ +, drop semicolons before },
// and trim. It is not a CSS parser; symbols inside strings or url() values
// can be rewritten.
//
// # Watch Mode
//
// Watch builds once, then rebuilds on every stylesheet change until the
// context is cancelled. A failed rebuild is reported and the loop continues.
//
// # CLI Tool
//
// cssbundle also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/cssbundle/cmd/cssbundle@latest
package cssbundle

import "github.com/yacobolo/cssbundle/internal/bundle"

// Public types shared with the internal pipeline
type (
	Config       = bundle.Config
	BuildResult  = bundle.BuildResult
	Artifact     = bundle.Artifact
	Stats        = bundle.Stats
	Resolution   = bundle.Resolution
	ImportEdge   = bundle.ImportEdge
	OutputFormat = bundle.OutputFormat
)

// Report formats
const (
	OutputText = bundle.OutputText
	OutputJSON = bundle.OutputJSON
)

// Error classes returned by Build, Resolve and Watch
var (
	ErrFileNotFound = bundle.ErrFileNotFound
	ErrIO           = bundle.ErrIO
)

// DefaultConfig returns the conventional layout: src/rosewood.css built into
// dist/rosewood.css and dist/rosewood.min.css.
func DefaultConfig() Config {
	return bundle.DefaultConfig()
}

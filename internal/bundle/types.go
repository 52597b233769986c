package bundle

// ImportKind classifies an @import directive
type ImportKind int

const (
	// ImportLocal targets a file resolved relative to the importing stylesheet
	ImportLocal ImportKind = iota
	// ImportExternal targets a URL (http://, https://, //) and is never inlined
	ImportExternal
)

func (k ImportKind) String() string {
	if k == ImportExternal {
		return "external"
	}
	return "local"
}

// ImportDirective is a single `@import '<target>';` occurrence in a stylesheet
type ImportDirective struct {
	Raw    string     // Exact directive text: "@import 'a.css';"
	Target string     // Quoted reference: "a.css"
	Kind   ImportKind // Local or external
	Start  int        // Byte offset of Raw in the containing content
	End    int        // Byte offset just past Raw
}

// StylesheetFile is a source stylesheet identified by its canonical path
type StylesheetFile struct {
	Path    string // Absolute, cleaned
	Content string
	Imports []ImportDirective
}

// ImportEdge records one directive encountered while resolving
type ImportEdge struct {
	From    string     // Canonical path of the importing file
	Target  string     // Raw target as written
	Path    string     // Canonical path of the target (empty for external)
	Kind    ImportKind // Local or external
	Inlined bool       // False when the target was already visited
	Depth   int        // Nesting depth of the importing file (entry = 0)
}

// Resolution is the flattened output of one resolve call
type Resolution struct {
	CSS   string       // Fully inlined stylesheet
	Files []string     // Canonical paths in pre-order of inlining, entry first
	Edges []ImportEdge // Every directive in encounter order
}

// Stats summarizes a bundle for operator output
type Stats struct {
	Rules    int `json:"rules"`     // Qualified rule blocks
	AtRules  int `json:"at_rules"`  // At-rules (@media, @layer, @font-face, ...)
	Imports  int `json:"imports"`   // @import rules left in the bundle (external)
	Comments int `json:"comments"`  // Comments in the full bundle
}

// Artifact is one written build output
type Artifact struct {
	Path  string // Destination path
	Bytes int    // Bytes written
}

// BuildResult contains the outcome of a successful build
type BuildResult struct {
	Full     Artifact // Concatenated stylesheet
	Minified Artifact // Minified stylesheet
	Sources  []string // Source files inlined, in pre-order
	Stats    Stats    // Counts for the full bundle
}

// Config holds build configuration
type Config struct {
	SourceDir    string   // "src"
	Entry        string   // "rosewood.css" (relative to SourceDir unless absolute)
	OutputDir    string   // "dist"
	BundleName   string   // "rosewood.css"
	MinifiedName string   // "rosewood.min.css"
	Verbose      bool     // Report sources and stats after each build
	Quiet        bool     // Suppress success output
	UseColors    bool     // Force color output
	WatchDirs    []string // [".", "components"] (relative to SourceDir unless absolute)
	WatchInclude []string // ["*.css"]
	WatchIgnore  []string // [".#*", "*~"]
}

// DefaultConfig returns the conventional layout
func DefaultConfig() Config {
	return Config{
		SourceDir:    "src",
		Entry:        "rosewood.css",
		OutputDir:    "dist",
		BundleName:   "rosewood.css",
		MinifiedName: "rosewood.min.css",
		WatchDirs:    []string{".", "components"},
		WatchInclude: []string{"*.css"},
		WatchIgnore:  []string{".#*", "*~"},
	}
}

// OutputFormat represents the build report format
type OutputFormat string

const (
	// OutputText prints human-readable sizes
	OutputText OutputFormat = "text"
	// OutputJSON exports the build result as JSON
	OutputJSON OutputFormat = "json"
)

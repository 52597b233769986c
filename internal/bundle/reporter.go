package bundle

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Reporter prints build progress for operators
type Reporter struct {
	w         io.Writer
	errW      io.Writer
	useColors bool
	quiet     bool
	verbose   bool
}

// NewReporter creates a reporter writing progress to w and failures to errW
func NewReporter(w, errW io.Writer, config Config) *Reporter {
	return &Reporter{
		w:         w,
		errW:      errW,
		useColors: shouldUseColors(config),
		quiet:     config.Quiet,
		verbose:   config.Verbose,
	}
}

// shouldUseColors determines if colors should be enabled
func shouldUseColors(config Config) bool {
	// Explicit flag wins
	if config.UseColors {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// BuildSucceeded prints the size of both artifacts
func (r *Reporter) BuildSucceeded(result *BuildResult) {
	if r.quiet {
		return
	}

	r.printArtifact(result.Full)
	r.printArtifact(result.Minified)

	if r.verbose {
		fmt.Fprintf(r.w, "  Sources inlined: %d\n", len(result.Sources))
		for _, src := range result.Sources {
			fmt.Fprintf(r.w, "    %s\n", RenderStyle(StyleGray, displayPath(src), r.useColors))
		}
		fmt.Fprintf(r.w, "  Rules: %d, at-rules: %d, external imports: %d, comments: %d\n",
			result.Stats.Rules, result.Stats.AtRules, result.Stats.Imports, result.Stats.Comments)
	}
}

func (r *Reporter) printArtifact(a Artifact) {
	fmt.Fprintf(r.w, "%s %s\n",
		RenderStyle(StyleGreen, "Built "+displayPath(a.Path), r.useColors),
		RenderStyle(StyleGray, "("+FormatKB(a.Bytes)+")", r.useColors))
}

// Watching announces the directories under watch
func (r *Reporter) Watching(dirs []string) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Watching for changes...", r.useColors))
	for _, d := range dirs {
		fmt.Fprintf(r.w, "  %s\n", displayPath(d))
	}
}

// Changed announces a rebuild triggered by file name
func (r *Reporter) Changed(name string) {
	if r.quiet {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, name+" changed, rebuilding...", r.useColors))
}

// BuildFailed prints a build error. name is the file that triggered the
// build, or empty for a one-shot build.
func (r *Reporter) BuildFailed(name string, err error) {
	msg := "Build error: " + err.Error()
	if name != "" {
		msg = fmt.Sprintf("Build error after %s changed: %v", name, err)
	}
	fmt.Fprintln(r.errW, RenderStyle(StyleRed, msg, r.useColors))
}

// Warn prints a non-fatal problem
func (r *Reporter) Warn(msg string) {
	fmt.Fprintln(r.errW, RenderStyle(StyleYellow, "Warning: ", r.useColors)+msg)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// FormatKB renders a byte count as kilobytes with one decimal
func FormatKB(bytes int) string {
	return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
}

// displayPath shortens absolute paths under the working directory
func displayPath(p string) string {
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(p)
	}
	wd, err := os.Getwd()
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(wd, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

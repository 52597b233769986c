package bundle

import (
	"regexp"
	"strings"
)

// Transform is a named, pure text rewrite step
type Transform struct {
	Name  string
	Apply func(string) string
}

// Pipeline is the ordered list of minification steps. Each step assumes the
// normalization done by the steps before it.
var Pipeline = []Transform{
	{Name: "strip-comments", Apply: StripComments},
	{Name: "collapse-whitespace", Apply: CollapseWhitespace},
	{Name: "trim-symbol-space", Apply: TrimSymbolSpace},
	{Name: "drop-trailing-semicolons", Apply: DropTrailingSemicolons},
	{Name: "trim", Apply: TrimSpace},
}

var (
	commentPattern      = regexp.MustCompile(`/\*[\s\S]*?\*/`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
	symbolSpacePattern  = regexp.MustCompile(`\s*([{}:;,>~+])\s*`)
	trailingSemiPattern = regexp.MustCompile(`;+}`)
)

// Minify runs css through Pipeline.
// It works on raw text: symbols inside string or url() literals are not protected.
func Minify(css string) string {
	for _, step := range Pipeline {
		css = step.Apply(css)
	}
	return css
}

// StripComments removes every /* ... */ block, including multi-line ones.
// Removal repeats until none are left, so "//*a*/*b*/" does not reassemble a comment.
func StripComments(css string) string {
	for {
		next := commentPattern.ReplaceAllString(css, "")
		if next == css {
			return next
		}
		css = next
	}
}

// CollapseWhitespace turns every whitespace run into one space
func CollapseWhitespace(css string) string {
	return whitespacePattern.ReplaceAllString(css, " ")
}

// TrimSymbolSpace removes whitespace on either side of { } : ; , > ~ +
func TrimSymbolSpace(css string) string {
	return symbolSpacePattern.ReplaceAllString(css, "$1")
}

// DropTrailingSemicolons removes semicolons directly before a closing brace
func DropTrailingSemicolons(css string) string {
	return trailingSemiPattern.ReplaceAllString(css, "}")
}

// TrimSpace trims leading and trailing whitespace
func TrimSpace(css string) string {
	return strings.TrimSpace(css)
}

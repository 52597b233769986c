package bundle

import (
	"regexp"
	"strings"
)

// importPattern matches `@import 'path';` and `@import "path";`.
// url(...) imports and media-qualified imports are left alone.
var importPattern = regexp.MustCompile(`@import\s+['"]([^'"]+)['"]\s*;`)

// externalPrefixes mark imports that are already valid CSS for the browser
var externalPrefixes = []string{"http://", "https://", "//"}

// ParseImports returns the import directives in content, in source order.
// Directives inside comments are matched too; the scan is textual.
func ParseImports(content string) []ImportDirective {
	locs := importPattern.FindAllStringSubmatchIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}

	directives := make([]ImportDirective, 0, len(locs))
	for _, loc := range locs {
		target := content[loc[2]:loc[3]]
		directives = append(directives, ImportDirective{
			Raw:    content[loc[0]:loc[1]],
			Target: target,
			Kind:   classifyImport(target),
			Start:  loc[0],
			End:    loc[1],
		})
	}
	return directives
}

// classifyImport reports whether target is a URL or a local file
func classifyImport(target string) ImportKind {
	for _, prefix := range externalPrefixes {
		if strings.HasPrefix(target, prefix) {
			return ImportExternal
		}
	}
	return ImportLocal
}

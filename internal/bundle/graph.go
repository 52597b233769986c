package bundle

import (
	"fmt"
	"io"
	"strings"
)

// Orphans lists stylesheets under dir matching pattern that res never inlined
func Orphans(store Store, dir, pattern string, res *Resolution) ([]string, error) {
	files, err := store.List(dir, pattern)
	if err != nil {
		return nil, err
	}

	inlined := make(map[string]bool, len(res.Files))
	for _, f := range res.Files {
		inlined[f] = true
	}

	var orphans []string
	for _, f := range files {
		canonical, err := canonicalPath(f)
		if err != nil {
			return nil, err
		}
		if !inlined[canonical] {
			orphans = append(orphans, f)
		}
	}
	return orphans, nil
}

// PrintGraph writes the import tree of res, followed by any orphans
func (r *Reporter) PrintGraph(res *Resolution, orphans []string) {
	if len(res.Files) == 0 {
		return
	}

	fmt.Fprintln(r.w, RenderStyle(StyleCyan, displayPath(res.Files[0]), r.useColors))
	for _, edge := range res.Edges {
		r.printEdge(r.w, edge)
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%d files inlined\n", len(res.Files))

	if len(orphans) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Not reachable from the entry:", r.useColors))
		for _, o := range orphans {
			fmt.Fprintf(r.w, "  %s\n", displayPath(o))
		}
	}
}

func (r *Reporter) printEdge(w io.Writer, edge ImportEdge) {
	indent := strings.Repeat("  ", edge.Depth+1)

	switch {
	case edge.Kind == ImportExternal:
		fmt.Fprintf(w, "%s%s %s\n", indent, edge.Target,
			RenderStyle(StyleGray, "(external)", r.useColors))
	case !edge.Inlined:
		fmt.Fprintf(w, "%s%s %s\n", indent, edge.Target,
			RenderStyle(StyleGray, "(already inlined)", r.useColors))
	default:
		fmt.Fprintf(w, "%s%s\n", indent, edge.Target)
	}
}

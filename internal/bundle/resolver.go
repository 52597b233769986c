package bundle

import (
	"path/filepath"
	"strings"
)

// Traversal tracks the files visited during one top-level resolve call.
// It must not be shared between calls.
type Traversal struct {
	visited map[string]bool
	files   []string
	edges   []ImportEdge
}

// NewTraversal creates an empty traversal
func NewTraversal() *Traversal {
	return &Traversal{visited: make(map[string]bool)}
}

// Visit marks path as visited. It returns false if path was already visited.
func (t *Traversal) Visit(path string) bool {
	if t.visited[path] {
		return false
	}
	t.visited[path] = true
	t.files = append(t.files, path)
	return true
}

// Visited reports whether path has been inlined in this traversal
func (t *Traversal) Visited(path string) bool {
	return t.visited[path]
}

// Resolver flattens @import graphs into a single stylesheet
type Resolver struct {
	store Store
}

// NewResolver creates a resolver reading through store
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the entry stylesheet with every local import inlined
func (r *Resolver) Resolve(entryPath string) (string, error) {
	res, err := r.ResolveGraph(entryPath)
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

// ResolveGraph resolves entryPath and also returns the traversal record
func (r *Resolver) ResolveGraph(entryPath string) (*Resolution, error) {
	entry, err := canonicalPath(entryPath)
	if err != nil {
		return nil, err
	}

	t := NewTraversal()
	t.Visit(entry)

	css, err := r.resolveFile(entry, t, 0)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		CSS:   css,
		Files: t.files,
		Edges: t.edges,
	}, nil
}

// Load reads a stylesheet and parses its import directives
func (r *Resolver) Load(path string) (*StylesheetFile, error) {
	canonical, err := canonicalPath(path)
	if err != nil {
		return nil, err
	}

	content, err := r.store.ReadText(canonical)
	if err != nil {
		return nil, err
	}

	return &StylesheetFile{
		Path:    canonical,
		Content: content,
		Imports: ParseImports(content),
	}, nil
}

// resolveFile inlines the imports of an already-visited file
func (r *Resolver) resolveFile(path string, t *Traversal, depth int) (string, error) {
	file, err := r.Load(path)
	if err != nil {
		return "", err
	}
	if len(file.Imports) == 0 {
		return file.Content, nil
	}

	dir := filepath.Dir(file.Path)

	var out strings.Builder
	out.Grow(len(file.Content))
	last := 0

	for _, imp := range file.Imports {
		out.WriteString(file.Content[last:imp.Start])
		last = imp.End

		edge := ImportEdge{
			From:   file.Path,
			Target: imp.Target,
			Kind:   imp.Kind,
			Depth:  depth,
		}

		if imp.Kind == ImportExternal {
			t.edges = append(t.edges, edge)
			out.WriteString(imp.Raw)
			continue
		}

		target := filepath.FromSlash(imp.Target)
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}
		target = filepath.Clean(target)
		edge.Path = target

		if !t.Visit(target) {
			// Diamond or cycle: already inlined earlier in this traversal
			t.edges = append(t.edges, edge)
			continue
		}

		edge.Inlined = true
		t.edges = append(t.edges, edge)

		inlined, err := r.resolveFile(target, t, depth+1)
		if err != nil {
			return "", &ImportError{From: file.Path, Target: imp.Target, Err: err}
		}
		out.WriteString(inlined)
	}

	out.WriteString(file.Content[last:])
	return out.String(), nil
}

// canonicalPath makes path absolute and clean
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ioError("resolve", path, err)
	}
	return filepath.Clean(abs), nil
}

package bundle

import (
	"fmt"
	"path/filepath"
)

// Rebuilder runs one complete build
type Rebuilder interface {
	Build() (*BuildResult, error)
}

// Builder drives resolve, minify and write for one entry stylesheet
type Builder struct {
	config   Config
	store    Store
	resolver *Resolver
}

// NewBuilder creates a builder for config using store for all file access
func NewBuilder(config Config, store Store) *Builder {
	return &Builder{
		config:   config,
		store:    store,
		resolver: NewResolver(store),
	}
}

// EntryPath returns the entry stylesheet path
func (b *Builder) EntryPath() string {
	return SourcePath(b.config.SourceDir, b.config.Entry)
}

// BundlePath returns the destination of the full stylesheet
func (b *Builder) BundlePath() string {
	return filepath.Join(b.config.OutputDir, b.config.BundleName)
}

// MinifiedPath returns the destination of the minified stylesheet
func (b *Builder) MinifiedPath() string {
	return filepath.Join(b.config.OutputDir, b.config.MinifiedName)
}

// Build resolves the entry, minifies it and writes both artifacts.
// Nothing is written unless resolving succeeds, and neither artifact is
// replaced unless both could be staged.
func (b *Builder) Build() (*BuildResult, error) {
	if err := b.store.EnsureDir(b.config.OutputDir); err != nil {
		return nil, fmt.Errorf("prepare output: %w", err)
	}

	// 1. Inline imports
	res, err := b.resolver.ResolveGraph(b.EntryPath())
	if err != nil {
		return nil, fmt.Errorf("resolve failed: %w", err)
	}

	// 2. Minify
	full := res.CSS
	minified := Minify(full)

	// 3. Write
	bundlePath := b.BundlePath()
	minifiedPath := b.MinifiedPath()
	err = b.store.WriteAll([]TextFile{
		{Path: bundlePath, Text: full},
		{Path: minifiedPath, Text: minified},
	})
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}

	return &BuildResult{
		Full:     Artifact{Path: bundlePath, Bytes: len(full)},
		Minified: Artifact{Path: minifiedPath, Bytes: len(minified)},
		Sources:  res.Files,
		Stats:    Summarize(full),
	}, nil
}

// Graph resolves the entry without writing anything
func (b *Builder) Graph() (*Resolution, error) {
	res, err := b.resolver.ResolveGraph(b.EntryPath())
	if err != nil {
		return nil, fmt.Errorf("resolve failed: %w", err)
	}
	return res, nil
}

// SourcePath joins p onto dir unless p is absolute
func SourcePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

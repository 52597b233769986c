package bundle

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// EventOp describes what happened to a file
type EventOp uint32

// File change operations
const (
	OpCreate EventOp = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether op includes o
func (op EventOp) Has(o EventOp) bool {
	return op&o == o
}

func (op EventOp) String() string {
	switch {
	case op.Has(OpCreate):
		return "create"
	case op.Has(OpWrite):
		return "write"
	case op.Has(OpRemove):
		return "remove"
	case op.Has(OpRename):
		return "rename"
	case op.Has(OpChmod):
		return "chmod"
	}
	return "unknown"
}

// Event is a single file change notification
type Event struct {
	Name string // Path of the changed file
	Op   EventOp
}

// Filter selects the change events that should trigger a rebuild
type Filter struct {
	include []string
	ignore  *ignore.GitIgnore
	skip    map[string]bool
}

// NewFilter builds a filter from doublestar include patterns and gitignore-style
// ignore rules. Both are matched against the file's base name.
func NewFilter(include, ignoreRules []string) (*Filter, error) {
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid watch pattern %q", pattern)
		}
	}

	f := &Filter{include: include, skip: make(map[string]bool)}
	if len(ignoreRules) > 0 {
		f.ignore = ignore.CompileIgnoreLines(ignoreRules...)
	}
	return f, nil
}

// Skip excludes exact paths, such as the build artifacts, whatever their name
func (f *Filter) Skip(paths ...string) {
	for _, p := range paths {
		if canonical, err := canonicalPath(p); err == nil {
			f.skip[canonical] = true
		}
	}
}

// Match reports whether a file name qualifies
func (f *Filter) Match(name string) bool {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return false
	}

	if len(f.skip) > 0 {
		if canonical, err := canonicalPath(name); err == nil && f.skip[canonical] {
			return false
		}
	}

	if f.ignore != nil && f.ignore.MatchesPath(base) {
		return false
	}

	for _, pattern := range f.include {
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// Qualifies reports whether ev should trigger a rebuild. Attribute-only
// changes never do.
func (f *Filter) Qualifies(ev Event) bool {
	if ev.Op == OpChmod {
		return false
	}
	return f.Match(ev.Name)
}

// Watcher reruns a build for every qualifying change event, one at a time
type Watcher struct {
	builder  Rebuilder
	filter   *Filter
	reporter *Reporter
}

// NewWatcher creates a watch loop around builder
func NewWatcher(builder Rebuilder, filter *Filter, reporter *Reporter) *Watcher {
	return &Watcher{
		builder:  builder,
		filter:   filter,
		reporter: reporter,
	}
}

// Run consumes events until ctx is done or events is closed. A rebuild always
// finishes before the next event is read. Build failures are reported and do
// not stop the loop.
func (w *Watcher) Run(ctx context.Context, events <-chan Event, errs <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			_, _ = w.HandleEvent(ev)

		case err, ok := <-errs:
			if !ok {
				// No more notifier errors; keep serving events
				errs = nil
				continue
			}
			w.reporter.Warn(fmt.Sprintf("watch error: %v", err))
		}
	}
}

// HandleEvent rebuilds if ev qualifies. It returns a nil result and nil error
// for events that are filtered out.
func (w *Watcher) HandleEvent(ev Event) (*BuildResult, error) {
	if !w.filter.Qualifies(ev) {
		return nil, nil
	}

	name := filepath.Base(ev.Name)
	w.reporter.Changed(name)

	result, err := w.builder.Build()
	if err != nil {
		w.reporter.BuildFailed(name, err)
		return nil, err
	}

	w.reporter.BuildSucceeded(result)
	return result, nil
}

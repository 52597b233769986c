package cssbundle

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/cssbundle/internal/bundle"
)

// Build is the main entry point
func Build(config Config) (*BuildResult, error) {
	return bundle.NewBuilder(config, bundle.NewFileStore()).Build()
}

// Resolve returns entryPath with every local import inlined
func Resolve(entryPath string) (string, error) {
	return bundle.NewResolver(bundle.NewFileStore()).Resolve(entryPath)
}

// Minify compacts a stylesheet
func Minify(css string) string {
	return bundle.Minify(css)
}

// Graph resolves the entry without writing and lists stylesheets under the
// source root that the entry never reaches.
func Graph(config Config) (*Resolution, []string, error) {
	store := bundle.NewFileStore()

	res, err := bundle.NewBuilder(config, store).Graph()
	if err != nil {
		return nil, nil, err
	}

	orphans, err := bundle.Orphans(store, config.SourceDir, "**/*.css", res)
	if err != nil {
		return nil, nil, fmt.Errorf("list sources: %w", err)
	}
	return res, orphans, nil
}

// Watch builds once and then rebuilds on every qualifying change until ctx is
// cancelled. Once the initial build succeeds it only returns when ctx is done.
// Watch directories that cannot be subscribed are reported and skipped.
func Watch(ctx context.Context, config Config, w, errW io.Writer) error {
	store := bundle.NewFileStore()
	builder := bundle.NewBuilder(config, store)
	reporter := bundle.NewReporter(w, errW, config)

	filter, err := bundle.NewFilter(config.WatchInclude, config.WatchIgnore)
	if err != nil {
		return err
	}
	filter.Skip(builder.BundlePath(), builder.MinifiedPath())

	// 1. Initial build
	result, err := builder.Build()
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}
	reporter.BuildSucceeded(result)

	// 2. Subscribe
	notifier, err := bundle.NewNotifier()
	if err != nil {
		reporter.Warn(fmt.Sprintf("file watching unavailable: %v", err))
		<-ctx.Done()
		return nil
	}
	defer notifier.Close()

	var watched []string
	for _, dir := range WatchDirs(config) {
		if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
			reporter.Warn(fmt.Sprintf("skipping watch directory %s: not a directory", dir))
			continue
		}
		if err := notifier.Add(dir); err != nil {
			reporter.Warn(fmt.Sprintf("skipping watch directory %s: %v", dir, err))
			continue
		}
		watched = append(watched, dir)
	}
	if len(watched) == 0 {
		reporter.Warn("no directories to watch, waiting for interrupt")
	}
	reporter.Watching(watched)

	// 3. Rebuild serially until cancelled
	return bundle.NewWatcher(builder, filter, reporter).Run(ctx, notifier.Events(), notifier.Errors())
}

// WatchDirs resolves the configured watch directories against the source root
func WatchDirs(config Config) []string {
	dirs := make([]string, 0, len(config.WatchDirs))
	seen := make(map[string]bool)
	for _, d := range config.WatchDirs {
		p := bundle.SourcePath(config.SourceDir, d)
		if !seen[p] {
			seen[p] = true
			dirs = append(dirs, p)
		}
	}
	return dirs
}

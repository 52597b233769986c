package bundle

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBuilder returns queued outcomes in order and records concurrency
type fakeBuilder struct {
	errs        []error
	calls       int
	inFlight    int32
	maxInFlight int32
}

func (b *fakeBuilder) Build() (*BuildResult, error) {
	n := atomic.AddInt32(&b.inFlight, 1)
	defer atomic.AddInt32(&b.inFlight, -1)
	if n > atomic.LoadInt32(&b.maxInFlight) {
		atomic.StoreInt32(&b.maxInFlight, n)
	}
	time.Sleep(5 * time.Millisecond)

	var err error
	if b.calls < len(b.errs) {
		err = b.errs[b.calls]
	}
	b.calls++
	if err != nil {
		return nil, err
	}
	return &BuildResult{
		Full:     Artifact{Path: "dist/rosewood.css", Bytes: 2048},
		Minified: Artifact{Path: "dist/rosewood.min.css", Bytes: 1024},
	}, nil
}

func defaultFilter(t *testing.T) *Filter {
	t.Helper()
	config := DefaultConfig()
	f, err := NewFilter(config.WatchInclude, config.WatchIgnore)
	require.NoError(t, err)
	return f
}

func TestFilter_Match(t *testing.T) {
	f := defaultFilter(t)

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"entry stylesheet", "src/rosewood.css", true},
		{"component stylesheet", "src/components/button.css", true},
		{"vendored minified stylesheet", "src/vendor/normalize.min.css", true},
		{"emacs lock file", "src/components/.#button.css", false},
		{"backup file", "src/button.css~", false},
		{"non-css file", "src/components/readme.md", false},
		{"css-like suffix", "src/notes.css.bak", false},
		{"empty name", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Match(tt.path))
		})
	}
}

func TestFilter_Qualifies(t *testing.T) {
	f := defaultFilter(t)

	assert.True(t, f.Qualifies(Event{Name: "a.css", Op: OpWrite}))
	assert.True(t, f.Qualifies(Event{Name: "a.css", Op: OpCreate}))
	assert.True(t, f.Qualifies(Event{Name: "a.css", Op: OpRemove}))
	assert.True(t, f.Qualifies(Event{Name: "a.css", Op: OpWrite | OpChmod}))
	assert.False(t, f.Qualifies(Event{Name: "a.css", Op: OpChmod}))
	assert.True(t, f.Qualifies(Event{Name: "src/vendor.min.css", Op: OpWrite}))
	assert.False(t, f.Qualifies(Event{Name: "src/.#a.css", Op: OpWrite}))
}

func TestFilter_Skip(t *testing.T) {
	config := testConfig(t)
	b := NewBuilder(config, NewFileStore())

	f := defaultFilter(t)
	f.Skip(b.BundlePath(), b.MinifiedPath())

	assert.False(t, f.Match(b.BundlePath()))
	assert.False(t, f.Match(b.MinifiedPath()))
	// Same base name elsewhere still qualifies
	assert.True(t, f.Match(filepath.Join(config.SourceDir, "rosewood.css")))
	assert.True(t, f.Match(filepath.Join(config.SourceDir, "vendor", "rosewood.min.css")))
}

func TestNewFilter_InvalidPattern(t *testing.T) {
	_, err := NewFilter([]string{"[a-"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid watch pattern")
}

func TestNewFilter_NoIgnoreRules(t *testing.T) {
	f, err := NewFilter([]string{"*.css"}, nil)
	require.NoError(t, err)
	assert.True(t, f.Match("a.min.css"))
}

func TestEventOp_String(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "rename", OpRename.String())
	assert.Equal(t, "chmod", OpChmod.String())
	assert.Equal(t, "unknown", EventOp(0).String())
	assert.True(t, (OpWrite | OpChmod).Has(OpWrite))
	assert.False(t, OpWrite.Has(OpCreate))
}

func TestWatcher_HandleEvent(t *testing.T) {
	builder := &fakeBuilder{errs: []error{errors.New("resolve failed: boom")}}
	reporter, out, errOut := newTestReporter(false)
	w := NewWatcher(builder, defaultFilter(t), reporter)

	// Filtered out: no build
	result, err := w.HandleEvent(Event{Name: "src/readme.md", Op: OpWrite})
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, builder.calls)

	// Failure is returned and reported with the file name
	_, err = w.HandleEvent(Event{Name: "src/components/button.css", Op: OpWrite})
	require.Error(t, err)
	assert.Contains(t, errOut.String(), "Build error after button.css changed: resolve failed: boom")

	// The next event builds again
	result, err = w.HandleEvent(Event{Name: "src/components/button.css", Op: OpWrite})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 2, builder.calls)
	assert.Contains(t, out.String(), "button.css changed, rebuilding...")
	assert.Contains(t, out.String(), "Built dist/rosewood.css (2.0 KB)")
}

func TestWatcher_RunSurvivesFailures(t *testing.T) {
	builder := &fakeBuilder{errs: []error{
		&FileError{Op: "read", Path: "src/missing.css", Kind: ErrFileNotFound},
		nil,
	}}
	reporter, out, errOut := newTestReporter(false)
	w := NewWatcher(builder, defaultFilter(t), reporter)

	events := make(chan Event, 4)
	events <- Event{Name: "src/rosewood.css", Op: OpWrite}
	events <- Event{Name: "src/notes.md", Op: OpWrite}
	events <- Event{Name: "src/rosewood.css", Op: OpChmod}
	events <- Event{Name: "src/rosewood.css", Op: OpWrite}
	close(events)

	err := w.Run(context.Background(), events, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, builder.calls)
	assert.Contains(t, errOut.String(), "file not found")
	assert.Contains(t, out.String(), "Built dist/rosewood.min.css (1.0 KB)")
}

func TestWatcher_RunIsSerial(t *testing.T) {
	builder := &fakeBuilder{}
	reporter, _, _ := newTestReporter(false)
	w := NewWatcher(builder, defaultFilter(t), reporter)

	events := make(chan Event)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), events, nil)
	}()

	for i := 0; i < 5; i++ {
		events <- Event{Name: "a.css", Op: OpWrite}
	}
	close(events)

	require.NoError(t, <-done)
	assert.Equal(t, 5, builder.calls)
	assert.Equal(t, int32(1), atomic.LoadInt32(&builder.maxInFlight))
}

func TestWatcher_RunStopsOnCancel(t *testing.T) {
	reporter, _, _ := newTestReporter(false)
	w := NewWatcher(&fakeBuilder{}, defaultFilter(t), reporter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, make(chan Event), make(chan error))
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_RunReportsNotifierErrors(t *testing.T) {
	reporter, _, errOut := newTestReporter(false)
	w := NewWatcher(&fakeBuilder{}, defaultFilter(t), reporter)

	events := make(chan Event)
	errs := make(chan error)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), events, errs)
	}()

	errs <- errors.New("queue overflow")
	close(errs)
	// A closed error channel does not end the loop
	events <- Event{Name: "a.css", Op: OpWrite}
	close(events)

	require.NoError(t, <-done)
	assert.Contains(t, errOut.String(), "Warning: watch error: queue overflow")
}

func TestWatcher_RecoversAfterBrokenImport(t *testing.T) {
	config := testConfig(t)
	writeTree(t, config.SourceDir, map[string]string{
		"rosewood.css": "@import 'a.css';",
		"a.css":        ".a { color: red; }",
	})
	entry := filepath.Join(config.SourceDir, "rosewood.css")

	builder := NewBuilder(config, NewFileStore())
	_, err := builder.Build()
	require.NoError(t, err)

	reporter, _, errOut := newTestReporter(false)
	w := NewWatcher(builder, defaultFilter(t), reporter)

	// Break the import
	writeTree(t, config.SourceDir, map[string]string{"rosewood.css": "@import 'missing.css';"})
	_, err = w.HandleEvent(Event{Name: entry, Op: OpWrite})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.Contains(t, errOut.String(), "rosewood.css changed")
	assert.Equal(t, ".a{color:red}", readFile(t, builder.MinifiedPath()))

	// Fix it
	writeTree(t, config.SourceDir, map[string]string{"rosewood.css": "@import 'a.css';\n.b { margin: 0; }"})
	result, err := w.HandleEvent(Event{Name: entry, Op: OpWrite})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, ".a{color:red}.b{margin:0}", readFile(t, builder.MinifiedPath()))
}

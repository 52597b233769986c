package bundle

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under dir from a map of slash-separated relative paths
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// readFile returns the content of path, failing the test on error
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// testConfig returns a config rooted in a fresh temp dir
func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	config := DefaultConfig()
	config.SourceDir = filepath.Join(dir, "src")
	config.OutputDir = filepath.Join(dir, "dist")
	return config
}

// newTestReporter returns a colorless reporter writing to buffers
func newTestReporter(verbose bool) (*Reporter, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Reporter{w: &out, errW: &errOut, verbose: verbose}, &out, &errOut
}

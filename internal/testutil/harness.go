// Package testutil provides the shared harness and doubles used by the
// integration tests: a thread-safe log buffer, a manifest-file harness that
// runs the whole application against a temp directory, and a scripted cell
// implementation for multi-pass scenarios.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/cellflow/internal/app"
	"github.com/vk/cellflow/internal/bag"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	Bag       map[string]any
}

// RunApp writes the given files into a temp directory, points the app at
// "main.hcl" (which must be one of them), and runs a full evaluation.
// Overrides in cfg apply as given; zero-value cfg fields get test defaults.
func RunApp(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	if cfg.OpPath == "" {
		cfg.OpPath = filepath.Join(tmpDir, "main.hcl")
	} else {
		cfg.OpPath = filepath.Join(tmpDir, cfg.OpPath)
	}
	if cfg.BagPath != "" {
		cfg.BagPath = filepath.Join(tmpDir, cfg.BagPath)
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	if cfg.Calls == 0 {
		cfg.Calls = 1
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	config, err := app.NewConfig(cfg)
	require.NoError(t, err)

	outBuffer := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	testApp := app.New(outBuffer, logBuffer, config)

	runErr := testApp.Run(context.Background())

	result := &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
	}
	if b := testApp.FinalBag(); b != nil {
		result.Bag = bag.Snapshot(b)
	}

	if os.Getenv("CELLFLOW_TEST_LOGS") == "true" {
		t.Logf("--- Full log output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}

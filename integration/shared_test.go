//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedLifespanPath holds the path to a shared lifespan binary built once for all tests.
	sharedLifespanPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// attentionCSV is a small daily attention export. "Café" is stored as Latin-1.
var attentionCSV = []byte("Attention index by event\n" +
	"Values are relative search interest\n" +
	"Week,Election,Tariffs,Storm,Caf\xe9\n" +
	"2024-01-01,0,10,0,2\n" +
	"2024-01-02,10,4,20,2\n" +
	"not a date,99,99,99,99\n" +
	"2024-01-03,8,2,18,6\n" +
	"2024-01-04,5,1,16,n/a\n" +
	"2024-01-05,2,0,9,1\n")

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getLifespanBinary returns the path to the lifespan binary, building it once if needed.
func getLifespanBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "lifespan-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		lifespanPath := filepath.Join(tempDir, "lifespan")
		buildCmd := exec.Command("go", "build", "-o", lifespanPath, ".")
		buildCmd.Dir = ".." // Build from project root
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build lifespan: %v", err))
		}

		sharedLifespanPath = lifespanPath
	})

	return sharedLifespanPath
}

// writeAttentionCSV writes the sample input into a temp dir and returns its path.
func writeAttentionCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attention.csv")
	if err := os.WriteFile(path, attentionCSV, 0o600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

// runLifespan runs the binary and returns stdout. Stderr is logged on failure.
func runLifespan(t *testing.T, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getLifespanBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), env...)
	out, err := cmd.Output()
	if err != nil {
		var stderr string
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), out, stderr)
	}
	return string(out), err
}

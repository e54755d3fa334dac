package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/huangsam/lifespan/internal/iocache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRoot executes the root command with args and returns its stdout.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := Execute()
	return out.String(), err
}

func TestAnalyzeMissingFileReturnsError(t *testing.T) {
	_, err := runRoot(t, "analyze", filepath.Join(t.TempDir(), "missing.csv"), "--output", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot run attention analysis")
	assert.Contains(t, err.Error(), "read input")
}

func TestCacheStatusMixedCaseBackend(t *testing.T) {
	t.Cleanup(iocache.CloseCaching)
	dbPath := filepath.Join(t.TempDir(), "cache.db")

	out, err := runRoot(t, "cache", "status", "--cache-backend", "SQLite", "--cache-db-connect", dbPath)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", string(cfg.CacheBackend))
	assert.Contains(t, out, "Cache Backend:")
}

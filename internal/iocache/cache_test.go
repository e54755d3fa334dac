package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/lifespan/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetManager clears the package globals so each test initializes from scratch.
func resetManager(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
	t.Cleanup(CloseCaching)
}

func newMemoryStore(t *testing.T, tableName string) *CacheStoreImpl {
	t.Helper()
	store, err := NewCacheStore(tableName, schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite store")
	t.Cleanup(func() { _ = store.Close() })
	return store.(*CacheStoreImpl)
}

func TestInitCaching(t *testing.T) {
	t.Run("sqlite file", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		require.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		assert.NotNil(t, Manager.GetTableStore())

		_, err := os.Stat(dbPath)
		assert.NoError(t, err, "Database file should be created")
	})

	t.Run("idempotent", func(t *testing.T) {
		resetManager(t)
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		require.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		first := Manager.GetTableStore()
		require.NoError(t, InitCaching(schema.SQLiteBackend, dbPath))
		assert.Same(t, first, Manager.GetTableStore())

		CloseCaching()
		CloseCaching()
	})

	t.Run("none backend", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitCaching(schema.NoneBackend, ""))
		store := Manager.GetTableStore()
		require.NotNil(t, store)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.False(t, status.Connected)
	})

	t.Run("empty backend leaves caching off", func(t *testing.T) {
		resetManager(t)
		require.NoError(t, InitCaching("", ""))
		assert.Nil(t, Manager.GetTableStore())
	})

	t.Run("unsupported backend", func(t *testing.T) {
		resetManager(t)
		err := InitCaching("redis", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize table caching")
		assert.Nil(t, Manager.GetTableStore())
	})
}

func TestNoneBackendOperations(t *testing.T) {
	store, err := NewCacheStore("test_table", schema.NoneBackend, "")
	require.NoError(t, err)

	assert.NoError(t, store.Set("key", []byte("value"), 1, 123456789))
	_, _, _, err = store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, store.Close())
}

func TestSQLiteBackendOperations(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		store := newMemoryStore(t, "test_table")

		require.NoError(t, store.Set("key", []byte("payload"), 1, 1234567890))
		value, version, ts, err := store.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "payload", string(value))
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1234567890), ts)
	})

	t.Run("upsert", func(t *testing.T) {
		store := newMemoryStore(t, "test_table")

		require.NoError(t, store.Set("key", []byte("initial"), 1, 1000))
		require.NoError(t, store.Set("key", []byte("updated"), 2, 2000))

		value, version, ts, err := store.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "updated", string(value))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("missing key", func(t *testing.T) {
		store := newMemoryStore(t, "test_table")
		_, _, _, err := store.Get("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("binary payload", func(t *testing.T) {
		store := newMemoryStore(t, "test_table")
		payload := []byte{0x00, 0xff, 0x81, 0x0a, 0x00}
		require.NoError(t, store.Set("bin", payload, 1, 1))
		value, _, _, err := store.Get("bin")
		require.NoError(t, err)
		assert.Equal(t, payload, value)
	})
}

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"simple", "lifespan_table_cache", false},
		{"with digits", "cache_2", false},
		{"leading underscore", "_cache", false},
		{"empty", "", true},
		{"leading digit", "2cache", true},
		{"hyphen", "table-cache", true},
		{"injection", "cache; DROP TABLE users", true},
		{"quote", `cache"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"cache"`, quoteTableName("cache", schema.SQLiteBackend))
	assert.Equal(t, `"cache"`, quoteTableName("cache", schema.PostgreSQLBackend))
	assert.Equal(t, "`cache`", quoteTableName("cache", schema.MySQLBackend))
}

func TestQueriesPerBackend(t *testing.T) {
	tests := []struct {
		backend     schema.DatabaseBackend
		placeholder string
		upsert      string
		createType  string
	}{
		{schema.SQLiteBackend, "?", "INSERT OR REPLACE", "BLOB"},
		{schema.MySQLBackend, "?", "ON DUPLICATE KEY UPDATE", "LONGBLOB"},
		{schema.PostgreSQLBackend, "$1", "ON CONFLICT (cache_key)", "BYTEA"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			store := &CacheStoreImpl{tableName: "cache", backend: tt.backend}
			assert.Equal(t, tt.placeholder, store.getPlaceholder())
			assert.Contains(t, store.getUpsertQuery(), tt.upsert)
			assert.Contains(t, getCreateTableQuery("cache", tt.backend), tt.createType)
		})
	}
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("invalid-name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err, "Expected error for invalid table name")

	_, err = NewCacheStore("test_table", "unsupported", "")
	assert.Error(t, err, "Expected error for unsupported backend")
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "clear.db")
		store, err := NewCacheStore(tableCacheTable, schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Set("key", []byte("v"), 1, 1))
		require.NoError(t, store.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed")
	})

	t.Run("sqlite missing file", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "missing.db"), ""))
	})

	t.Run("sqlite empty path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported", func(t *testing.T) {
		assert.Error(t, ClearCache("unsupported", "", ""))
	})
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	resetManager(t)
	require.NoError(t, InitCaching(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db")))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NotNil(t, Manager.GetTableStore())
		}()
	}
	wg.Wait()
}

func TestCacheStoreGetStatus(t *testing.T) {
	t.Run("sqlite with data", func(t *testing.T) {
		store := newMemoryStore(t, "status_table")
		for _, ts := range []int64{1000, 2000, 1500} {
			require.NoError(t, store.Set(time.Unix(ts, 0).String(), []byte("value"), 1, ts))
		}

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", status.Backend)
		assert.True(t, status.Connected)
		assert.Equal(t, 3, status.TotalEntries)
		assert.Equal(t, time.Unix(2000, 0), status.LastEntryTime)
		assert.Equal(t, time.Unix(1000, 0), status.OldestEntryTime)
		assert.Greater(t, status.TableSizeBytes, int64(0))
	})

	t.Run("sqlite empty", func(t *testing.T) {
		status, err := newMemoryStore(t, "empty_table").GetStatus()
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Zero(t, status.TotalEntries)
		assert.True(t, status.LastEntryTime.IsZero())
		assert.Zero(t, status.TableSizeBytes)
	})

	t.Run("none", func(t *testing.T) {
		store, err := NewCacheStore("none_table", schema.NoneBackend, "")
		require.NoError(t, err)
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, "none", status.Backend)
		assert.False(t, status.Connected)
	})
}

func TestPrintCacheStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintCacheStatus(&buf, schema.CacheStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    2,
		LastEntryTime:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local),
		OldestEntryTime: time.Date(2024, 2, 1, 12, 0, 0, 0, time.Local),
		TableSizeBytes:  8192,
	})
	out := buf.String()
	assert.Contains(t, out, "Cached Tables: 2")
	assert.Contains(t, out, "Last Entry: 2024-03-01 12:00:00")
	assert.Contains(t, out, "Table Size: 8192 bytes")
}

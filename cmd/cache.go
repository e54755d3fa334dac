package cmd

import (
	"fmt"

	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/internal/iocache"
	"github.com/huangsam/lifespan/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend, err := contract.ParseDatabaseBackend(viper.GetString("cache-backend"))
	if err != nil {
		return err
	}
	connStr := viper.GetString("cache-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	if err := iocache.InitCaching(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Cache subcommands skip sharedSetup since they take no input file.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed-table cache",
	Long: `Manage the cache of parsed attention tables.

When a cache backend is configured, lifespan stores the decoded and cleaned table
keyed by file content and encoding, so repeated runs over the same CSV skip parsing.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  lifespan cache status --cache-backend sqlite

  # Clear cache
  lifespan cache clear --cache-backend sqlite`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached tables",
	Long: `Delete all cached tables from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache at the default location
  lifespan cache clear --cache-backend sqlite

  # Clear MySQL cache (set connection string via env variable)
  LIFESPAN_CACHE_BACKEND=mysql LIFESPAN_CACHE_DB_CONNECT="..." lifespan cache clear`,
	PreRunE: cacheSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		sqlitePath := cfg.CacheDBConnect
		if sqlitePath == "" {
			sqlitePath = contract.GetCacheDBFilePath()
		}
		// The open store holds the SQLite file, release it before removal
		iocache.CloseCaching()
		if err := iocache.ClearCache(cfg.CacheBackend, sqlitePath, cfg.CacheDBConnect); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared successfully.")
		return nil
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, connection status, number of cached tables,
newest and oldest entries, and the cache table size.

Examples:
  lifespan cache status --cache-backend sqlite`,
	PreRunE: cacheSetupWrapper,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := iocache.Manager.GetTableStore()
		if store == nil {
			iocache.PrintCacheStatus(cmd.OutOrStdout(), schema.CacheStatus{Backend: string(schema.NoneBackend)})
			return nil
		}
		status, err := store.GetStatus()
		if err != nil {
			return fmt.Errorf("failed to get cache status: %w", err)
		}
		iocache.PrintCacheStatus(cmd.OutOrStdout(), status)
		return nil
	},
}

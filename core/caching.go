package core

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/huangsam/lifespan/internal/contract"
	"github.com/huangsam/lifespan/internal/loader"
	"github.com/huangsam/lifespan/internal/log"
	"github.com/huangsam/lifespan/schema"
	"github.com/vmihailenco/msgpack/v5"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// cacheTTL is how long a cached table stays valid.
const cacheTTL = 7 * 24 * time.Hour

// cachedLoadTable reads the input and returns its parsed table, consulting the
// cache store when one is configured. hit reports whether the cache served it.
func cachedLoadTable(cfg *contract.Config, mgr contract.CacheManager) (table schema.AttentionTable, hit bool, err error) {
	opts := loaderOptions(cfg)

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetTableStore()
	}
	if store == nil {
		// Fallback to direct parsing
		table, err = loader.LoadFile(cfg.InputPath, opts)
		return table, false, err
	}

	data, err := loader.ReadInput(cfg.InputPath)
	if err != nil {
		return schema.AttentionTable{}, false, err
	}
	key := generateCacheKey(data, opts)

	// Check for cache hit
	if cached, ok := checkCacheHit(store, key); ok {
		log.Debugw("cache hit", "key", key)
		return cached, true, nil
	}

	// Cache miss: parse and store
	table, err = loader.Parse(data, opts)
	if err != nil {
		return schema.AttentionTable{}, false, err
	}
	payload, err := msgpack.Marshal(&table)
	if err != nil {
		contract.LogWarn("Cannot encode table for cache", err)
		return table, false, nil
	}
	if err := store.Set(key, payload, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Cannot write cache entry", err)
	}
	return table, false, nil
}

// checkCacheHit attempts to retrieve and validate a cached table
func checkCacheHit(store contract.CacheStore, key string) (schema.AttentionTable, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return schema.AttentionTable{}, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheTTL {
		return schema.AttentionTable{}, false
	}

	var table schema.AttentionTable
	if err := msgpack.Unmarshal(data, &table); err != nil {
		log.Warnw("discarding unreadable cache entry", "key", key, "error", err)
		return schema.AttentionTable{}, false
	}
	normalizeDays(&table)
	return table, true
}

// normalizeDays restores UTC days shared by every series after decoding.
func normalizeDays(table *schema.AttentionTable) {
	for i, d := range table.Days {
		table.Days[i] = d.UTC()
	}
	for i := range table.Events {
		table.Events[i].Days = table.Days
	}
}

// generateCacheKey creates a unique key from the input bytes and loader options
func generateCacheKey(data []byte, opts loader.Options) string {
	sum := sha256.Sum256(data)
	key := fmt.Sprintf("%x:%s", sum, opts.CacheKeyPart())
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}

func loaderOptions(cfg *contract.Config) loader.Options {
	opts := loader.DefaultOptions()
	if cfg.Encoding != "" {
		opts.Encoding = cfg.Encoding
	}
	return opts
}

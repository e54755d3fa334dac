// Package iocache caches parsed input tables in a SQL database.
package iocache

import (
	"sync"

	"github.com/huangsam/lifespan/internal/contract"
)

// CacheStoreManager owns the process-wide cache store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	table        contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetTableStore returns the store holding parsed input tables, or nil when
// caching was never initialized.
func (mgr *CacheStoreManager) GetTableStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.table
}

package catalog

import "sync"

// resolveCache memoizes successful reference resolutions between
// mutations. Wildcard resolution probes every combination of the missing
// leading levels, so repeated lookups of the same shorthand are worth
// remembering. The lock keeps concurrent readers safe; AddTable drops the
// whole cache since any new path can change a wildcard outcome.
type resolveCache struct {
	mu      sync.RWMutex
	entries map[string]*Branch
}

func newResolveCache() *resolveCache {
	return &resolveCache{entries: make(map[string]*Branch)}
}

func (rc *resolveCache) get(key string) (*Branch, bool) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	b, ok := rc.entries[key]
	return b, ok
}

func (rc *resolveCache) set(key string, b *Branch) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries[key] = b
}

func (rc *resolveCache) reset() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.entries = make(map[string]*Branch)
}

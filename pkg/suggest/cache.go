package suggest

import (
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultCacheCapacity bounds the number of cached queries per section.
const DefaultCacheCapacity = 20

// sectionCache holds one section's cached result lists with insertion order
// tracked for oldest-first eviction.
type sectionCache struct {
	results map[string][]string
	order   []string
}

// QueryCache caches suggestion lists per section, keyed by
// normalizedQuery|limit. Entries die on learn-triggered invalidation or
// capacity eviction; nothing survives a restart.
type QueryCache struct {
	mu       sync.Mutex
	capacity int
	sections map[string]*sectionCache
	hits     int
	misses   int
}

// NewQueryCache creates a QueryCache. capacity <= 0 selects the default.
func NewQueryCache(capacity int) *QueryCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &QueryCache{
		capacity: capacity,
		sections: make(map[string]*sectionCache),
	}
}

// Get returns a copy of the cached list for the key, if present.
func (qc *QueryCache) Get(sectionKey, cacheKey string) ([]string, bool) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	sc, ok := qc.sections[sectionKey]
	if !ok {
		qc.misses++
		return nil, false
	}
	results, ok := sc.results[cacheKey]
	if !ok {
		qc.misses++
		return nil, false
	}
	qc.hits++

	out := make([]string, len(results))
	copy(out, results)
	return out, true
}

// Put stores a copy of results under the key, evicting the oldest-inserted
// key once the section exceeds capacity.
func (qc *QueryCache) Put(sectionKey, cacheKey string, results []string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	sc, ok := qc.sections[sectionKey]
	if !ok {
		sc = &sectionCache{results: make(map[string][]string)}
		qc.sections[sectionKey] = sc
	}

	if _, exists := sc.results[cacheKey]; !exists {
		sc.order = append(sc.order, cacheKey)
	}
	stored := make([]string, len(results))
	copy(stored, results)
	sc.results[cacheKey] = stored

	for len(sc.order) > qc.capacity {
		oldest := sc.order[0]
		sc.order = sc.order[1:]
		delete(sc.results, oldest)
		log.Debugf("Evicted cached query %q from section %q", oldest, sectionKey)
	}
}

// Invalidate wipes every cached query for the section.
func (qc *QueryCache) Invalidate(sectionKey string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	delete(qc.sections, sectionKey)
}

// Clear drops all cached state. Test hook.
func (qc *QueryCache) Clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.sections = make(map[string]*sectionCache)
	qc.hits = 0
	qc.misses = 0
}

// Stats returns cache counters for diagnostics.
func (qc *QueryCache) Stats() map[string]int {
	qc.mu.Lock()
	defer qc.mu.Unlock()

	keys := 0
	for _, sc := range qc.sections {
		keys += len(sc.results)
	}
	return map[string]int{
		"cacheSections": len(qc.sections),
		"cacheKeys":     keys,
		"cacheHits":     qc.hits,
		"cacheMisses":   qc.misses,
	}
}

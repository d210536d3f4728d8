package suggest

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/inspectd/faultserve/pkg/storage"
)

// DefaultLearnedCapacity bounds each section's learned list.
const DefaultLearnedCapacity = 200

// defaultLearnedKey is the storage key holding the learned blob.
const defaultLearnedKey = "faultserve-learned-issues"

// LearnedStore keeps technician-confirmed phrases that are absent from the
// catalog, per section, most recent first. The durable blob is read lazily
// exactly once per process; writes never block the caller, and a storage
// failure degrades the store to memory-only for the session.
type LearnedStore struct {
	mu       sync.Mutex
	store    storage.KeyValueStore
	key      string
	capacity int
	entries  map[string][]string
	loaded   bool
}

// NewLearnedStore creates a LearnedStore over the given storage capability.
// A nil store means memory-only. capacity <= 0 selects the default.
func NewLearnedStore(store storage.KeyValueStore, capacity int) *LearnedStore {
	if capacity <= 0 {
		capacity = DefaultLearnedCapacity
	}
	return &LearnedStore{
		store:    store,
		key:      defaultLearnedKey,
		capacity: capacity,
		entries:  make(map[string][]string),
	}
}

// ForSection returns the section's learned texts, most recent first.
func (ls *LearnedStore) ForSection(sectionKey string) []string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.loadLocked()

	entries := ls.entries[sectionKey]
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}

// HasSemanticKey reports whether any learned entry in the section shares the
// given semantic key.
func (ls *LearnedStore) HasSemanticKey(sectionKey, semKey string) bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.loadLocked()

	for _, text := range ls.entries[sectionKey] {
		if SemanticKey(text) == semKey {
			return true
		}
	}
	return false
}

// Add prepends text to the section's list, removing any exact
// case-insensitive duplicate first so a re-learned phrase moves to the
// front, then truncates to capacity and persists in the background.
func (ls *LearnedStore) Add(sectionKey, text string) {
	ls.mu.Lock()
	ls.loadLocked()

	lower := strings.ToLower(text)
	existing := ls.entries[sectionKey]
	next := make([]string, 0, len(existing)+1)
	next = append(next, text)
	for _, e := range existing {
		if strings.ToLower(e) != lower {
			next = append(next, e)
		}
	}
	if len(next) > ls.capacity {
		next = next[:ls.capacity]
	}
	ls.entries[sectionKey] = next

	snapshot := ls.snapshotLocked()
	ls.mu.Unlock()

	go ls.persist(snapshot)
}

// Reset drops all in-memory learned state and forces a reload on next use.
// Test hook; production code never calls it.
func (ls *LearnedStore) Reset() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.entries = make(map[string][]string)
	ls.loaded = false
}

// Stats returns counters for diagnostics.
func (ls *LearnedStore) Stats() map[string]int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.loadLocked()

	total := 0
	for _, entries := range ls.entries {
		total += len(entries)
	}
	return map[string]int{
		"learnedSections": len(ls.entries),
		"learnedPhrases":  total,
		"learnedCapacity": ls.capacity,
	}
}

// loadLocked reads the durable blob the first time any learned state is
// touched. Corrupt content is discarded; the store starts empty for the
// session either way.
func (ls *LearnedStore) loadLocked() {
	if ls.loaded {
		return
	}
	ls.loaded = true
	if ls.store == nil {
		return
	}

	blob, err := ls.store.Get(ls.key)
	if err != nil {
		log.Warnf("Learned store unavailable, continuing in memory: %v", err)
		return
	}
	if blob == "" {
		return
	}

	var decoded map[string][]string
	if err := json.Unmarshal([]byte(blob), &decoded); err != nil {
		log.Warnf("Discarding corrupt learned store content: %v", err)
		return
	}
	for section, entries := range decoded {
		// Concurrent workstations race last-write-wins on the blob, so it can
		// hold rewordings of one fault. Entries are most recent first; keep
		// the first per semantic key.
		seen := make(map[string]bool, len(entries))
		kept := make([]string, 0, len(entries))
		for _, text := range entries {
			semKey := SemanticKey(text)
			if semKey == "" || seen[semKey] {
				continue
			}
			seen[semKey] = true
			kept = append(kept, text)
		}
		if len(kept) > ls.capacity {
			kept = kept[:ls.capacity]
		}
		ls.entries[section] = kept
	}
	log.Debugf("Loaded learned suggestions for %d sections", len(ls.entries))
}

func (ls *LearnedStore) snapshotLocked() map[string][]string {
	snapshot := make(map[string][]string, len(ls.entries))
	for section, entries := range ls.entries {
		copied := make([]string, len(entries))
		copy(copied, entries)
		snapshot[section] = copied
	}
	return snapshot
}

// persist writes the blob fire-and-forget. Quota or privacy-mode failures
// are swallowed; the in-memory learn effect already succeeded.
func (ls *LearnedStore) persist(snapshot map[string][]string) {
	if ls.store == nil {
		return
	}
	blob, err := json.Marshal(snapshot)
	if err != nil {
		log.Warnf("Failed to encode learned store: %v", err)
		return
	}
	if err := ls.store.Set(ls.key, string(blob)); err != nil {
		log.Warnf("Failed to persist learned store: %v", err)
	}
}

package suggest

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/inspectd/faultserve/internal/utils"
	"github.com/inspectd/faultserve/pkg/storage"
)

// Default result limits, overridable per engine.
const (
	DefaultLimit    = 12
	DefaultMaxLimit = 64

	// catalogOverscan widens the catalog take so deduplication against
	// learned entries cannot starve the merged list.
	catalogOverscan = 2
)

// Learn outcome reasons. Diagnostics only; callers branch on Learned.
const (
	ReasonAdded             = "added"
	ReasonInvalidInput      = "invalid_input"
	ReasonEmptySemanticKey  = "empty_semantic_key"
	ReasonSemanticDuplicate = "semantic_duplicate"
)

// LearnResult is the structured outcome of a learn call.
type LearnResult struct {
	Learned bool   `json:"learned"`
	Reason  string `json:"reason"`
}

// Options tune a SuggestionEngine.
type Options struct {
	DefaultLimit    int
	MaxLimit        int
	CacheCapacity   int
	LearnedCapacity int
}

// Engine orchestrates suggestion retrieval and learning over a catalog, a
// learned store and a per-section query cache. Engines are independent;
// state never leaks between instances.
type Engine struct {
	catalog      Catalog
	learned      *LearnedStore
	cache        *QueryCache
	defaultLimit int
	maxLimit     int
}

// NewEngine creates an engine over the catalog, persisting learned phrases
// through store (nil store means memory-only for the session).
func NewEngine(catalog Catalog, store storage.KeyValueStore, opts Options) *Engine {
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = DefaultMaxLimit
	}
	return &Engine{
		catalog:      catalog,
		learned:      NewLearnedStore(store, opts.LearnedCapacity),
		cache:        NewQueryCache(opts.CacheCapacity),
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
	}
}

// ResolveSectionKey delegates to the catalog's resolver.
func (e *Engine) ResolveSectionKey(raw string) string {
	return e.catalog.ResolveSectionKey(raw)
}

// GetSuggestions returns up to limit unique display strings for the query,
// learned entries first, catalog matches second. An unresolvable section or
// blank query yields an empty list, never an error.
func (e *Engine) GetSuggestions(section, query string, limit int) []string {
	sectionKey := e.catalog.ResolveSectionKey(section)
	normQuery := NormalizeQuery(query)
	if sectionKey == "" || normQuery == "" {
		return nil
	}

	if limit <= 0 {
		limit = e.defaultLimit
	}
	if limit > e.maxLimit {
		limit = e.maxLimit
	}

	cacheKey := normQuery + "|" + strconv.Itoa(limit)
	if cached, ok := e.cache.Get(sectionKey, cacheKey); ok {
		log.Debugf("Cache hit for %q in section %q", normQuery, sectionKey)
		return cached
	}

	catalogMatches := e.catalog.Rank(sectionKey, normQuery)
	if take := limit * catalogOverscan; len(catalogMatches) > take {
		catalogMatches = catalogMatches[:take]
	}

	learnedMatches := RankCandidates(learnedCandidates(e.learned.ForSection(sectionKey)), normQuery)
	if len(learnedMatches) > limit {
		learnedMatches = learnedMatches[:limit]
	}

	// Technician-confirmed phrases outrank curated defaults regardless of
	// tier, so learned entries always merge ahead of catalog matches.
	filter := utils.NewResultFilter()
	results := make([]string, 0, limit)
	for _, lists := range [][]Ranked{learnedMatches, catalogMatches} {
		for _, match := range lists {
			if len(results) >= limit {
				break
			}
			if filter.ShouldInclude(match.Text) {
				results = append(results, match.Text)
			}
		}
	}

	e.cache.Put(sectionKey, cacheKey, results)
	return results
}

// Learn records a technician-confirmed phrase for the section unless its
// semantic key already exists in the catalog or the learned list. A
// successful learn wipes the section's cache so the phrase is discoverable
// on the next keystroke.
func (e *Engine) Learn(section, text string) LearnResult {
	sectionKey := e.catalog.ResolveSectionKey(section)
	text = strings.TrimSpace(text)
	if sectionKey == "" || text == "" {
		return LearnResult{Learned: false, Reason: ReasonInvalidInput}
	}

	semKey := SemanticKey(text)
	if semKey == "" {
		return LearnResult{Learned: false, Reason: ReasonEmptySemanticKey}
	}

	if e.catalog.HasSemanticKey(sectionKey, semKey) || e.learned.HasSemanticKey(sectionKey, semKey) {
		log.Debugf("Rejected semantic duplicate %q in section %q", text, sectionKey)
		return LearnResult{Learned: false, Reason: ReasonSemanticDuplicate}
	}

	e.learned.Add(sectionKey, text)
	e.cache.Invalidate(sectionKey)
	log.Debugf("Learned %q for section %q", text, sectionKey)
	return LearnResult{Learned: true, Reason: ReasonAdded}
}

// Sections lists the catalog's canonical section keys.
func (e *Engine) Sections() []string {
	return e.catalog.Sections()
}

// Reset drops all mutable engine state (cache and learned entries). Test
// hook; keeps separate engines and tests from leaking into each other.
func (e *Engine) Reset() {
	e.cache.Clear()
	e.learned.Reset()
}

// Stats merges catalog, cache and learned-store counters.
func (e *Engine) Stats() map[string]int {
	stats := map[string]int{
		"defaultLimit": e.defaultLimit,
		"maxLimit":     e.maxLimit,
	}
	for k, v := range e.catalog.Stats() {
		stats[k] = v
	}
	for k, v := range e.cache.Stats() {
		stats[k] = v
	}
	for k, v := range e.learned.Stats() {
		stats[k] = v
	}
	return stats
}

// learnedCandidates wraps learned texts as rankable candidates, most recent
// first so recency breaks remaining within-tier ties.
func learnedCandidates(texts []string) []Candidate {
	cands := make([]Candidate, 0, len(texts))
	for _, text := range texts {
		norm := NormalizeQuery(text)
		if norm == "" {
			continue
		}
		cands = append(cands, Candidate{Text: text, Norm: norm})
	}
	return cands
}

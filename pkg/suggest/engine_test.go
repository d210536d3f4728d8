package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog is a minimal Catalog over a flat phrase list per section.
type fakeCatalog struct {
	phrases   map[string][]string
	rankCalls int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{phrases: map[string][]string{
		"tyres": {
			"Tyre worn below legal limit",
			"Tyre wear on inner edge",
			"Nail in tyre",
			"Puncture in tyre",
			"Sidewall bulge",
			"Tyre pressure low",
		},
		"brakes": {
			"Brake pads worn",
			"Brake discs corroded",
		},
	}}
}

func (f *fakeCatalog) ResolveSectionKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := f.phrases[key]; ok {
		return key
	}
	return ""
}

func (f *fakeCatalog) Rank(sectionKey, normQuery string) []Ranked {
	f.rankCalls++
	return RankCandidates(mkCandidates(f.phrases[sectionKey]...), normQuery)
}

func (f *fakeCatalog) HasSemanticKey(sectionKey, semKey string) bool {
	for _, text := range f.phrases[sectionKey] {
		if SemanticKey(text) == semKey {
			return true
		}
	}
	return false
}

func (f *fakeCatalog) Sections() []string { return []string{"tyres", "brakes"} }

func (f *fakeCatalog) Stats() map[string]int {
	return map[string]int{"sections": len(f.phrases)}
}

func newTestEngine() (*Engine, *fakeCatalog) {
	catalog := newFakeCatalog()
	return NewEngine(catalog, nil, Options{}), catalog
}

func TestGetSuggestionsBasics(t *testing.T) {
	engine, _ := newTestEngine()

	results := engine.GetSuggestions("tyres", "tyre", 0)
	require.NotEmpty(t, results)
	assert.Equal(t, "Tyre pressure low", results[0], "shortest prefix-tier match first")
	assert.Contains(t, results, "Nail in tyre", "word-tier matches follow")
	assert.NotContains(t, results, "Sidewall bulge", "non-matches excluded")
}

func TestGetSuggestionsEmptyInputs(t *testing.T) {
	engine, _ := newTestEngine()

	assert.Nil(t, engine.GetSuggestions("tyres", "", 5))
	assert.Nil(t, engine.GetSuggestions("tyres", "   !!", 5), "punctuation-only normalizes to blank")
	assert.Nil(t, engine.GetSuggestions("no-such-section", "tyre", 5))
}

func TestGetSuggestionsLimitClamping(t *testing.T) {
	engine, _ := newTestEngine()

	assert.Len(t, engine.GetSuggestions("tyres", "tyre", 2), 2)

	// absurd limit clamps to the max, not an error
	results := engine.GetSuggestions("tyres", "tyre", 10000)
	assert.True(t, len(results) <= DefaultMaxLimit)
}

func TestGetSuggestionsCacheHit(t *testing.T) {
	engine, catalog := newTestEngine()

	first := engine.GetSuggestions("tyres", "tyre", 5)
	calls := catalog.rankCalls
	second := engine.GetSuggestions("tyres", "Tyre!", 5)

	assert.Equal(t, first, second, "normalized-equal queries share a cache entry")
	assert.Equal(t, calls, catalog.rankCalls, "second call served from cache")
}

func TestGetSuggestionsDeduplicates(t *testing.T) {
	engine, _ := newTestEngine()

	require.Equal(t, ReasonAdded, engine.Learn("tyres", "Slow leak osf tyre").Reason)
	results := engine.GetSuggestions("tyres", "tyre", 12)

	seen := make(map[string]bool)
	for _, text := range results {
		lower := strings.ToLower(text)
		assert.False(t, seen[lower], "duplicate %q in results", text)
		seen[lower] = true
	}
}

func TestLearnedEntriesRankFirst(t *testing.T) {
	engine, _ := newTestEngine()

	result := engine.Learn("tyres", "Tyre scrubbed on kerb")
	require.True(t, result.Learned)

	results := engine.GetSuggestions("tyres", "tyre", 12)
	require.NotEmpty(t, results)
	assert.Equal(t, "Tyre scrubbed on kerb", results[0], "learned entries outrank catalog matches")
}

func TestLearnRejectsInvalidInput(t *testing.T) {
	engine, _ := newTestEngine()

	testCases := []struct {
		section     string
		text        string
		reason      string
		description string
	}{
		{"tyres", "", ReasonInvalidInput, "blank text"},
		{"tyres", "   ", ReasonInvalidInput, "whitespace text"},
		{"no-such-section", "Nail in tyre", ReasonInvalidInput, "unresolvable section"},
		{"tyres", "the on of", ReasonEmptySemanticKey, "stop words only"},
		{"tyres", "!!!", ReasonEmptySemanticKey, "punctuation only"},
	}

	for _, tc := range testCases {
		result := engine.Learn(tc.section, tc.text)
		assert.False(t, result.Learned, tc.description)
		assert.Equal(t, tc.reason, result.Reason, tc.description)
	}
}

func TestLearnRejectsSemanticDuplicates(t *testing.T) {
	engine, _ := newTestEngine()

	// same fault as the catalog's "Nail in tyre", worded differently
	result := engine.Learn("tyres", "screw found in tyre")
	assert.False(t, result.Learned)
	assert.Equal(t, ReasonSemanticDuplicate, result.Reason)

	// learned phrase also blocks its own rewordings
	require.True(t, engine.Learn("tyres", "NSF tyre worn").Learned)
	result = engine.Learn("tyres", "nsf   tyre, worn!!")
	assert.False(t, result.Learned)
	assert.Equal(t, ReasonSemanticDuplicate, result.Reason)
}

func TestLearnInvalidatesSectionCache(t *testing.T) {
	engine, catalog := newTestEngine()

	engine.GetSuggestions("tyres", "tyre", 5)
	calls := catalog.rankCalls

	require.True(t, engine.Learn("tyres", "Tyre scrubbed on kerb").Learned)

	results := engine.GetSuggestions("tyres", "tyre", 5)
	assert.Greater(t, catalog.rankCalls, calls, "cache wiped by learn, query recomputed")
	assert.Equal(t, "Tyre scrubbed on kerb", results[0])
}

func TestEngineIsolation(t *testing.T) {
	a, _ := newTestEngine()
	b, _ := newTestEngine()

	require.True(t, a.Learn("tyres", "Tyre scrubbed on kerb").Learned)

	results := b.GetSuggestions("tyres", "scrubbed", 5)
	assert.Empty(t, results, "engines never share learned state")
}

func TestEngineStats(t *testing.T) {
	engine, _ := newTestEngine()
	engine.GetSuggestions("tyres", "tyre", 5)

	stats := engine.Stats()
	assert.Equal(t, DefaultLimit, stats["defaultLimit"])
	assert.Equal(t, 2, stats["sections"])
	assert.Contains(t, stats, "cacheMisses")
	assert.Contains(t, stats, "learnedPhrases")
}

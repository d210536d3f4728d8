package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inspectd/faultserve/pkg/suggest"
)

func testSections() []Section {
	return []Section{
		{
			Key:     "tyres",
			Title:   "Tyres",
			Aliases: []string{"tires", "nearside-front-tyres"},
			Phrases: []string{
				"Tyre worn below legal limit",
				"Tyre wear on inner edge",
				"Nail in tyre",
				"Puncture in tyre",
				"Sidewall bulge",
				"Tyre pressure low",
			},
		},
		{
			Key:     "wipers-washers",
			Title:   "Wipers and Washers",
			Aliases: []string{"wipers"},
			Phrases: []string{
				"Front wiper blade smearing",
				"Washer fluid low",
			},
		},
	}
}

func TestNewIndexSections(t *testing.T) {
	ix := NewIndex(testSections())
	assert.Equal(t, []string{"tyres", "wipers-washers"}, ix.Sections())
	assert.Len(t, ix.Phrases("tyres"), 6)
	assert.Nil(t, ix.Phrases("unknown"))
}

func TestNewIndexSkipsBadSections(t *testing.T) {
	ix := NewIndex([]Section{
		{Key: "", Title: "No key", Phrases: []string{"x"}},
		{Key: "tyres", Phrases: []string{"Nail in tyre"}},
		{Key: "tyres", Phrases: []string{"Duplicate section"}},
	})

	assert.Equal(t, []string{"tyres"}, ix.Sections())
	phrases := ix.Phrases("tyres")
	require.Len(t, phrases, 1, "first definition wins")
	assert.Equal(t, "Nail in tyre", phrases[0].Text)
}

func TestRankTiers(t *testing.T) {
	ix := NewIndex(testSections())

	ranked := ix.Rank("tyres", "tyre")
	require.NotEmpty(t, ranked)

	// prefix matches lead, shortest first
	assert.Equal(t, "Tyre pressure low", ranked[0].Text)
	assert.Equal(t, suggest.TierPrefix, ranked[0].Tier)

	// word-start matches follow
	var sawWord bool
	for _, r := range ranked {
		if r.Tier == suggest.TierWord {
			sawWord = true
		}
		assert.NotEqual(t, suggest.TierSubsequence, r.Tier, "no fuzzy results when contiguous tiers matched")
	}
	assert.True(t, sawWord)
}

func TestRankSubsequenceFallback(t *testing.T) {
	ix := NewIndex(testSections())

	ranked := ix.Rank("wipers-washers", "fwb")
	require.Len(t, ranked, 1)
	assert.Equal(t, "Front wiper blade smearing", ranked[0].Text)
	assert.Equal(t, suggest.TierSubsequence, ranked[0].Tier)
}

func TestRankUnknownSectionOrEmptyQuery(t *testing.T) {
	ix := NewIndex(testSections())
	assert.Nil(t, ix.Rank("unknown", "tyre"))
	assert.Nil(t, ix.Rank("tyres", ""))
	assert.Empty(t, ix.Rank("tyres", "zzzqqq"))
}

func TestHasSemanticKey(t *testing.T) {
	ix := NewIndex(testSections())

	// "screw found in tyre" words the catalog's "Nail in tyre"
	assert.True(t, ix.HasSemanticKey("tyres", suggest.SemanticKey("screw found in tyre")))
	assert.False(t, ix.HasSemanticKey("tyres", suggest.SemanticKey("handbrake travel excessive")))
	assert.False(t, ix.HasSemanticKey("unknown", suggest.SemanticKey("Nail in tyre")))
}

func TestBuiltinSectionsIndex(t *testing.T) {
	ix := NewIndex(BuiltinSections())

	stats := ix.Stats()
	assert.Greater(t, stats["sections"], 5)
	assert.Greater(t, stats["phrases"], 50)

	// every builtin section resolves through its own key
	for _, key := range ix.Sections() {
		assert.Equal(t, key, ix.ResolveSectionKey(key))
	}
}

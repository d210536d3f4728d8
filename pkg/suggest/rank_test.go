package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkCandidates(texts ...string) []Candidate {
	cands := make([]Candidate, len(texts))
	for i, text := range texts {
		cands[i] = Candidate{Text: text, Norm: NormalizeQuery(text)}
	}
	return cands
}

func rankedTexts(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Text
	}
	return out
}

func TestClassifyTier(t *testing.T) {
	testCases := []struct {
		norm        string
		query       string
		expected    MatchTier
		description string
	}{
		{"tyre worn below legal limit", "tyre", TierPrefix, "prefix"},
		{"nail in tyre", "tyre", TierWord, "word start"},
		{"tyre pressure low", "press", TierWord, "word start mid-phrase"},
		{"tyre perished", "yre", TierSubstring, "inside a word"},
		{"brake pads worn", "tyre", TierNone, "no contiguous match"},
		{"anything", "", TierNone, "empty query never matches"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ClassifyTier(tc.norm, tc.query), tc.description)
	}
}

func TestIsSubsequence(t *testing.T) {
	assert.True(t, IsSubsequence("front wiper blade", "fwb"))
	assert.True(t, IsSubsequence("Front Wiper Blade", "fwb"), "case insensitive")
	assert.False(t, IsSubsequence("front wiper blade", "bwf"), "order matters")
	assert.False(t, IsSubsequence("short", "shortest"), "query longer than text")
	assert.False(t, IsSubsequence("anything", ""))
}

func TestRankCandidatesTierOrder(t *testing.T) {
	cands := mkCandidates(
		"Nail in tyre",       // word
		"Tyre perished",      // prefix
		"Anti-roll bar bush", // none
		"Flat tyre nsf",      // word
	)

	ranked := RankCandidates(cands, "tyre")
	require.Len(t, ranked, 3)
	assert.Equal(t, "Tyre perished", ranked[0].Text)
	assert.Equal(t, TierPrefix, ranked[0].Tier)
	assert.Equal(t, TierWord, ranked[1].Tier)
	assert.Equal(t, TierWord, ranked[2].Tier)
}

func TestRankCandidatesShorterWinsWithinTier(t *testing.T) {
	cands := mkCandidates(
		"Tyre worn below legal limit",
		"Tyre worn",
	)

	ranked := RankCandidates(cands, "tyre")
	require.Len(t, ranked, 2)
	assert.Equal(t, "Tyre worn", ranked[0].Text, "shorter phrase ranks first")
}

func TestRankCandidatesInputOrderBreaksTies(t *testing.T) {
	// identical tier and length: first in wins
	cands := mkCandidates("Tyre bad a", "Tyre bad b")

	ranked := RankCandidates(cands, "tyre")
	require.Len(t, ranked, 2)
	assert.Equal(t, []string{"Tyre bad a", "Tyre bad b"}, rankedTexts(ranked))
}

func TestRankCandidatesSubsequenceIsFallbackOnly(t *testing.T) {
	cands := mkCandidates(
		"Front wiper blade smearing",
		"Washer fluid low",
	)

	// nothing contiguous matches "fwb", so the fuzzy pass runs
	ranked := RankCandidates(cands, "fwb")
	require.Len(t, ranked, 1)
	assert.Equal(t, "Front wiper blade smearing", ranked[0].Text)
	assert.Equal(t, TierSubsequence, ranked[0].Tier)

	// with a contiguous match present the fuzzy pass must not run at all
	cands = mkCandidates(
		"Front wiper blade smearing",
		"Wiper linkage worn",
	)
	ranked = RankCandidates(cands, "wiper")
	for _, r := range ranked {
		assert.NotEqual(t, TierSubsequence, r.Tier, "no fuzzy results when a contiguous tier matched")
	}
}

func TestRankCandidatesEmpty(t *testing.T) {
	assert.Nil(t, RankCandidates(nil, "tyre"))
	assert.Nil(t, RankCandidates(mkCandidates("Tyre worn"), ""))
	assert.Nil(t, RankCandidates(mkCandidates("Brake pads worn"), "zzz"))
}

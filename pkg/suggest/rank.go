package suggest

import (
	"sort"
	"strings"

	"github.com/inspectd/faultserve/internal/utils"
)

// MatchTier orders match quality; lower wins.
type MatchTier int

const (
	// TierPrefix - the phrase's normalized text starts with the query.
	TierPrefix MatchTier = iota
	// TierWord - the query occurs at a word start inside the phrase.
	TierWord
	// TierSubstring - the query occurs anywhere as a substring.
	TierSubstring
	// TierSubsequence - every query rune occurs in order, not necessarily
	// contiguously. Fallback only; never mixed with the tiers above.
	TierSubsequence
	// TierNone - no match.
	TierNone
)

// Candidate pairs a display phrase with its precomputed normalized form.
type Candidate struct {
	Text string
	Norm string
}

// Ranked is a candidate that matched the query, carrying its winning tier.
type Ranked struct {
	Text string
	Tier MatchTier
}

// tierPredicates are evaluated top-down, first match wins. Keeping each tier
// as its own predicate keeps them independently testable.
var tierPredicates = []struct {
	tier  MatchTier
	match func(norm, query string) bool
}{
	{TierPrefix, MatchesPrefix},
	{TierWord, MatchesWordStart},
	{TierSubstring, MatchesSubstring},
}

// MatchesPrefix reports whether norm starts with query.
func MatchesPrefix(norm, query string) bool {
	return strings.HasPrefix(norm, query)
}

// MatchesWordStart reports whether query occurs in norm preceded by
// start-of-string or a space.
func MatchesWordStart(norm, query string) bool {
	if query == "" {
		return false
	}
	idx := 0
	for {
		i := strings.Index(norm[idx:], query)
		if i < 0 {
			return false
		}
		pos := idx + i
		if pos == 0 || norm[pos-1] == ' ' {
			return true
		}
		idx = pos + 1
	}
}

// MatchesSubstring reports whether query occurs anywhere in norm.
func MatchesSubstring(norm, query string) bool {
	return query != "" && strings.Contains(norm, query)
}

// IsSubsequence reports whether every rune of query occurs in order within s,
// case-insensitively. Used to tolerate typos and abbreviations like "fwb" for
// "front wiper blade".
func IsSubsequence(s, query string) bool {
	if query == "" {
		return false
	}
	queryRunes := []rune(query)
	qi := 0
	for _, r := range s {
		if utils.EqualFold(r, queryRunes[qi]) {
			qi++
			if qi == len(queryRunes) {
				return true
			}
		}
	}
	return false
}

// ClassifyTier returns the best contiguous tier for norm against query, or
// TierNone when tiers 0-2 all miss. The subsequence tier is applied
// separately by RankCandidates as a whole-set fallback.
func ClassifyTier(norm, query string) MatchTier {
	if query == "" {
		return TierNone
	}
	for _, p := range tierPredicates {
		if p.match(norm, query) {
			return p.tier
		}
	}
	return TierNone
}

// RankCandidates scores every candidate against a normalized query and
// returns matches best-first: tier, then shorter phrase, then input order.
// When no candidate matches tiers 0-2, a fuzzy subsequence pass runs instead.
// Pure function; nil for an empty query or no matches.
func RankCandidates(cands []Candidate, normQuery string) []Ranked {
	if normQuery == "" || len(cands) == 0 {
		return nil
	}

	type scored struct {
		text   string
		tier   MatchTier
		length int
		pos    int
	}
	var matches []scored

	for i, c := range cands {
		if tier := ClassifyTier(c.Norm, normQuery); tier != TierNone {
			matches = append(matches, scored{c.Text, tier, len(c.Norm), i})
		}
	}

	if len(matches) == 0 {
		for i, c := range cands {
			if IsSubsequence(c.Norm, normQuery) {
				matches = append(matches, scored{c.Text, TierSubsequence, len(c.Norm), i})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].tier != matches[j].tier {
			return matches[i].tier < matches[j].tier
		}
		if matches[i].length != matches[j].length {
			return matches[i].length < matches[j].length
		}
		return matches[i].pos < matches[j].pos
	})

	if len(matches) == 0 {
		return nil
	}

	ranked := make([]Ranked, len(matches))
	for i, m := range matches {
		ranked[i] = Ranked{Text: m.text, Tier: m.tier}
	}
	return ranked
}

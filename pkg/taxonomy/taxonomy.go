// Package taxonomy holds the static, read-only fault phrase catalog and its
// section resolution. The catalog is materialized once per process; queries
// never mutate it.
package taxonomy

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/inspectd/faultserve/pkg/suggest"
)

// IssuePhrase is an immutable catalog entry.
type IssuePhrase struct {
	Text       string
	SectionKey string
}

// sectionIndex holds one section's phrases with everything precomputed at
// build time: normalized forms, semantic keys, and a patricia trie over the
// normalized texts for the prefix ranking tier.
type sectionIndex struct {
	key        string
	title      string
	phrases    []IssuePhrase
	candidates []suggest.Candidate
	trie       *patricia.Trie
	semKeys    map[string]bool
}

// Index is the process-wide catalog: canonical sections, alias lookup, and
// per-section ranking support.
type Index struct {
	sections map[string]*sectionIndex
	aliases  map[string]string
	order    []string
}

// NewIndex materializes the catalog from authored sections. Alias slugs that
// collide with an existing canonical key are dropped with a warning; the
// first definition wins.
func NewIndex(sections []Section) *Index {
	ix := &Index{
		sections: make(map[string]*sectionIndex, len(sections)),
		aliases:  make(map[string]string),
	}

	for _, sec := range sections {
		key := Slugify(sec.Key)
		if key == "" {
			log.Warnf("Skipping catalog section with blank key (title %q)", sec.Title)
			continue
		}
		if _, exists := ix.sections[key]; exists {
			log.Warnf("Duplicate catalog section %q ignored", key)
			continue
		}

		si := &sectionIndex{
			key:     key,
			title:   sec.Title,
			trie:    patricia.NewTrie(),
			semKeys: make(map[string]bool),
		}
		for _, text := range sec.Phrases {
			norm := suggest.NormalizeQuery(text)
			if norm == "" {
				continue
			}
			pos := len(si.phrases)
			si.phrases = append(si.phrases, IssuePhrase{Text: text, SectionKey: key})
			si.candidates = append(si.candidates, suggest.Candidate{Text: text, Norm: norm})

			// Several phrases can share one normalized form; the trie item
			// keeps every catalog position for that form.
			if item := si.trie.Get(patricia.Prefix(norm)); item != nil {
				si.trie.Set(patricia.Prefix(norm), append(item.([]int), pos))
			} else {
				si.trie.Insert(patricia.Prefix(norm), []int{pos})
			}

			if semKey := suggest.SemanticKey(text); semKey != "" {
				si.semKeys[semKey] = true
			}
		}

		ix.sections[key] = si
		ix.order = append(ix.order, key)
		ix.aliases[key] = key
		for _, alias := range sec.Aliases {
			ix.registerAlias(alias, key)
		}
	}
	return ix
}

func (ix *Index) registerAlias(alias, key string) {
	slug := Slugify(alias)
	if slug == "" {
		return
	}
	if existing, ok := ix.aliases[slug]; ok && existing != key {
		log.Warnf("Section alias %q already mapped to %q, ignoring mapping to %q", slug, existing, key)
		return
	}
	ix.aliases[slug] = key
}

// Sections returns canonical section keys in catalog order.
func (ix *Index) Sections() []string {
	keys := make([]string, len(ix.order))
	copy(keys, ix.order)
	return keys
}

// Phrases returns the section's static catalog, independent of any query.
// Nil for an unknown section.
func (ix *Index) Phrases(sectionKey string) []IssuePhrase {
	si, ok := ix.sections[sectionKey]
	if !ok {
		return nil
	}
	out := make([]IssuePhrase, len(si.phrases))
	copy(out, si.phrases)
	return out
}

// HasSemanticKey reports whether any catalog phrase in the section carries
// the given semantic key.
func (ix *Index) HasSemanticKey(sectionKey, semKey string) bool {
	si, ok := ix.sections[sectionKey]
	return ok && si.semKeys[semKey]
}

// Rank scores every catalog phrase in the section against a normalized query
// and returns matches best-first. The prefix tier is answered by the
// section's patricia trie; word and substring tiers scan the remainder; the
// fuzzy subsequence tier runs only when nothing else matched. Pure function;
// nil for an unknown section or empty query.
func (ix *Index) Rank(sectionKey, normQuery string) []suggest.Ranked {
	si, ok := ix.sections[sectionKey]
	if !ok || normQuery == "" {
		return nil
	}

	type scored struct {
		pos  int
		tier suggest.MatchTier
	}
	var matches []scored
	claimed := make(map[int]bool)

	err := si.trie.VisitSubtree(patricia.Prefix(normQuery), func(p patricia.Prefix, item patricia.Item) error {
		for _, pos := range item.([]int) {
			claimed[pos] = true
			matches = append(matches, scored{pos: pos, tier: suggest.TierPrefix})
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting catalog trie for section %q: %v", sectionKey, err)
		return nil
	}

	for pos, c := range si.candidates {
		if claimed[pos] {
			continue
		}
		switch {
		case suggest.MatchesWordStart(c.Norm, normQuery):
			matches = append(matches, scored{pos: pos, tier: suggest.TierWord})
		case suggest.MatchesSubstring(c.Norm, normQuery):
			matches = append(matches, scored{pos: pos, tier: suggest.TierSubstring})
		}
	}

	if len(matches) == 0 {
		for pos, c := range si.candidates {
			if suggest.IsSubsequence(c.Norm, normQuery) {
				matches = append(matches, scored{pos: pos, tier: suggest.TierSubsequence})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		la, lb := len(si.candidates[a.pos].Norm), len(si.candidates[b.pos].Norm)
		if la != lb {
			return la < lb
		}
		return a.pos < b.pos
	})

	ranked := make([]suggest.Ranked, len(matches))
	for i, m := range matches {
		ranked[i] = suggest.Ranked{Text: si.candidates[m.pos].Text, Tier: m.tier}
	}
	return ranked
}

// Stats returns catalog counters for diagnostics.
func (ix *Index) Stats() map[string]int {
	total := 0
	for _, si := range ix.sections {
		total += len(si.phrases)
	}
	return map[string]int{
		"sections":       len(ix.sections),
		"sectionAliases": len(ix.aliases),
		"phrases":        total,
	}
}

package suggest

import (
	"strings"

	"github.com/inspectd/faultserve/internal/utils"
)

// HighlightSpan is a run of candidate text that is either entirely matched
// or entirely unmatched against the query.
type HighlightSpan struct {
	Text    string
	Matched bool
}

// BuildHighlightParts splits a candidate into highlight spans for the given
// query using two passes: a contiguous case-insensitive substring match
// first, then a greedy left-to-right subsequence alignment. A query that
// cannot be fully consumed leaves the candidate unhighlighted. Never errors.
func BuildHighlightParts(candidate, query string) []HighlightSpan {
	query = strings.TrimSpace(query)
	if candidate == "" {
		return nil
	}
	if query == "" {
		return []HighlightSpan{{Text: candidate}}
	}

	if spans := substringSpans(candidate, query); spans != nil {
		return spans
	}
	if spans := subsequenceSpans(candidate, query); spans != nil {
		return spans
	}
	return []HighlightSpan{{Text: candidate}}
}

// substringSpans attempts one contiguous case-insensitive match and splits
// the candidate into before/match/after spans. The scan is rune-aligned:
// case folding can change a rune's byte length (Kelvin sign to "k"), so byte
// offsets into a lowercased copy cannot index the original safely.
func substringSpans(candidate, query string) []HighlightSpan {
	candRunes := []rune(candidate)
	queryRunes := []rune(query)
	if len(queryRunes) == 0 || len(queryRunes) > len(candRunes) {
		return nil
	}

	for start := 0; start+len(queryRunes) <= len(candRunes); start++ {
		window := true
		for i, qr := range queryRunes {
			if !utils.EqualFold(candRunes[start+i], qr) {
				window = false
				break
			}
		}
		if !window {
			continue
		}

		end := start + len(queryRunes)
		var spans []HighlightSpan
		if start > 0 {
			spans = append(spans, HighlightSpan{Text: string(candRunes[:start])})
		}
		spans = append(spans, HighlightSpan{Text: string(candRunes[start:end]), Matched: true})
		if rest := string(candRunes[end:]); rest != "" {
			spans = append(spans, HighlightSpan{Text: rest})
		}
		return spans
	}
	return nil
}

// subsequenceSpans greedily marks each query rune's next unconsumed
// occurrence in the candidate, coalescing adjacent same-state runes.
// Returns nil when the query is not a subsequence of the candidate.
func subsequenceSpans(candidate, query string) []HighlightSpan {
	candRunes := []rune(candidate)
	queryRunes := []rune(query)

	matched := make([]bool, len(candRunes))
	qi := 0
	for i, r := range candRunes {
		if qi < len(queryRunes) && utils.EqualFold(r, queryRunes[qi]) {
			matched[i] = true
			qi++
		}
	}
	if qi < len(queryRunes) {
		return nil
	}

	var spans []HighlightSpan
	start := 0
	for i := 1; i <= len(candRunes); i++ {
		if i == len(candRunes) || matched[i] != matched[start] {
			spans = append(spans, HighlightSpan{
				Text:    string(candRunes[start:i]),
				Matched: matched[start],
			})
			start = i
		}
	}
	return spans
}

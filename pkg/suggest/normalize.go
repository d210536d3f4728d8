package suggest

import (
	"sort"
	"strings"
	"unicode"
)

// phraseSynonyms folds multi-word wordings onto one canonical token before
// tokenization. Applied in order, longest form first.
var phraseSynonyms = []struct {
	from string
	to   string
}{
	{"foreign object", "nail"},
	{"foreign body", "nail"},
	{"slow puncture", "puncture"},
	{"going down", "puncture"},
	{"low on air", "puncture"},
}

// tokenSynonyms folds single tokens onto their canonical form. Wordings that
// describe the same fault must land on the same token so the semantic key
// treats them as equal.
var tokenSynonyms = map[string]string{
	"screw":      "nail",
	"screws":     "nail",
	"nails":      "nail",
	"tack":       "nail",
	"tire":       "tyre",
	"tires":      "tyre",
	"tyres":      "tyre",
	"leak":       "puncture",
	"leaks":      "puncture",
	"leaking":    "puncture",
	"flat":       "puncture",
	"deflated":   "puncture",
	"deflating":  "puncture",
	"punctured":  "puncture",
	"punctures":  "puncture",
	"windscreen": "screen",
	"lamp":       "light",
	"lamps":      "light",
	"lights":     "light",
	"worn":       "wear",
	"wearing":    "wear",
	"corroded":   "corrosion",
	"rusted":     "corrosion",
	"rusty":      "corrosion",
	"rust":       "corrosion",
}

// stopWords are articles, prepositions and technician filler verbs that carry
// no fault meaning.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"of": true, "on": true, "in": true, "at": true, "to": true,
	"with": true, "and": true, "for": true, "from": true, "by": true,
	"is": true, "are": true, "was": true, "were": true,
	"has": true, "have": true, "had": true,
	"found": true, "noted": true, "advised": true, "seen": true,
	"observed": true, "present": true, "reported": true,
}

// NormalizeQuery lowercases, trims, strips non-alphanumeric runes to spaces
// and collapses whitespace. Blank input yields "".
func NormalizeQuery(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// SemanticKey derives the order and punctuation insensitive fingerprint of a
// phrase: normalized text with domain synonyms folded, stop words removed,
// tokens deduplicated and sorted alphabetically.
//
// Two phrases sharing a key describe the same fault regardless of wording:
//
//	SemanticKey("NSF tyre worn")     == SemanticKey("nsf   tyre, worn!!")
//	SemanticKey("Screw in NSF tyre") == SemanticKey("nail found in n.s.f. tyre")
func SemanticKey(text string) string {
	norm := NormalizeQuery(text)
	if norm == "" {
		return ""
	}

	padded := " " + norm + " "
	for _, syn := range phraseSynonyms {
		padded = strings.ReplaceAll(padded, " "+syn.from+" ", " "+syn.to+" ")
	}

	seen := make(map[string]bool)
	var tokens []string
	for _, tok := range strings.Fields(padded) {
		if canonical, ok := tokenSynonyms[tok]; ok {
			tok = canonical
		}
		if stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

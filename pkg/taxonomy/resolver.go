package taxonomy

import (
	"strings"
	"unicode"
)

// legacyUmbrellaSections are retired catch-all areas from earlier inspection
// sheets. They deliberately resolve to "" — there is no phrase catalog for
// them, and callers treat "" as "nothing to suggest", never an error.
var legacyUmbrellaSections = map[string]bool{
	"misc":                true,
	"misc-items":          true,
	"miscellaneous":       true,
	"miscellaneous-items": true,
	"general":             true,
	"general-items":       true,
	"other":               true,
	"other-faults":        true,
	"sundries":            true,
}

// legacySpellings folds historic spaced or abbreviated slug fragments onto
// the catalog's spelling, e.g. "near-side-front-tyres" from an old sheet
// resolves the same as "nearside-front-tyres".
var legacySpellings = []struct {
	from string
	to   string
}{
	{"near-side", "nearside"},
	{"off-side", "offside"},
	{"n-s-f", "nearside-front"},
	{"o-s-f", "offside-front"},
	{"n-s-r", "nearside-rear"},
	{"o-s-r", "offside-rear"},
}

// Slugify normalizes a raw section identifier to a lookup slug: lowercase,
// non-alphanumeric runs become single hyphens, legacy spellings folded.
func Slugify(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	pendingHyphen := false
	for _, r := range strings.ToLower(raw) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		} else {
			pendingHyphen = true
		}
	}
	slug := b.String()
	for _, sp := range legacySpellings {
		slug = strings.ReplaceAll(slug, sp.from, sp.to)
	}
	return slug
}

// ResolveSectionKey maps a raw, possibly legacy vehicle-area identifier to
// its canonical section key. Returns "" for blank input, retired umbrella
// sections, and anything the catalog does not know. Never errors.
func (ix *Index) ResolveSectionKey(raw string) string {
	slug := Slugify(raw)
	if slug == "" || legacyUmbrellaSections[slug] {
		return ""
	}
	return ix.aliases[slug]
}

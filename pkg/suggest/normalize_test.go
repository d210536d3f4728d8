package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	testCases := []struct {
		input       string
		expected    string
		description string
	}{
		{"Nail in tyre", "nail in tyre", "lowercases"},
		{"  nsf   tyre  ", "nsf tyre", "collapses whitespace"},
		{"n.s.f. tyre, worn!!", "n s f tyre worn", "punctuation becomes spaces"},
		{"tyre-pressure low", "tyre pressure low", "hyphen splits tokens"},
		{"", "", "blank stays blank"},
		{"   ", "", "whitespace only"},
		{"!!!", "", "punctuation only"},
		{"ABS warning light on", "abs warning light on", "digits and letters survive"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, NormalizeQuery(tc.input), tc.description)
	}
}

func TestSemanticKeyEquivalences(t *testing.T) {
	// each pair words the same fault differently; their keys must collide
	pairs := []struct {
		a, b        string
		description string
	}{
		{"NSF tyre worn", "nsf   tyre, worn!!", "punctuation and case"},
		{"Screw in NSF tyre", "nail found in n.s.f. tyre", "synonym fold + stop word"},
		{"worn tyre", "tyre worn", "token order"},
		{"Tyre is flat", "tyre puncture", "flat folds to puncture"},
		{"Slow puncture nsf tyre", "puncture nsf tyre", "phrase synonym"},
		{"Rust on sill", "corrosion on sill", "rust folds to corrosion"},
		{"tires worn", "tyre wear", "plural and inflection folds"},
	}

	for _, p := range pairs {
		assert.Equal(t, SemanticKey(p.a), SemanticKey(p.b), p.description)
	}
}

func TestSemanticKeyDistinctFaults(t *testing.T) {
	// different faults must keep different keys
	assert.NotEqual(t, SemanticKey("Nail in tyre"), SemanticKey("Tyre worn"))
	assert.NotEqual(t, SemanticKey("Brake pads worn"), SemanticKey("Brake discs worn"))
}

func TestSemanticKeyEmpty(t *testing.T) {
	assert.Equal(t, "", SemanticKey(""))
	assert.Equal(t, "", SemanticKey("  !! ,, "))
	// stop words only
	assert.Equal(t, "", SemanticKey("found on the"))
}

func TestSemanticKeySortedTokens(t *testing.T) {
	// key tokens are deduplicated and alphabetical
	assert.Equal(t, "nsf tyre wear", SemanticKey("tyre NSF worn tyre"))
}

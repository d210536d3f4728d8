package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		input       string
		expected    string
		description string
	}{
		{"Tyres", "tyres", "lowercases"},
		{"Wipers & Washers", "wipers-washers", "punctuation run becomes one hyphen"},
		{"  Front  Brakes  ", "front-brakes", "edge whitespace dropped"},
		{"Near Side Front Tyres", "nearside-front-tyres", "legacy spaced spelling folded"},
		{"near-side front tyres", "nearside-front-tyres", "legacy hyphenated spelling folded"},
		{"N.S.F. Tyres", "nearside-front-tyres", "legacy abbreviation folded"},
		{"", "", "blank"},
		{"!!!", "", "punctuation only"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, Slugify(tc.input), tc.description)
	}
}

func TestResolveSectionKey(t *testing.T) {
	ix := NewIndex(BuiltinSections())

	testCases := []struct {
		input       string
		expected    string
		description string
	}{
		{"tyres", "tyres", "canonical key"},
		{"Tyres", "tyres", "case insensitive"},
		{"tires", "tyres", "alias"},
		{"Nearside Front Tyres", "tyres", "alias via slug"},
		{"Near Side Front Tyres", "tyres", "legacy spelling of an alias"},
		{"wheels and tyres", "tyres", "spaced alias"},
		{"Braking System", "brakes", "alias"},
		{"lamps", "lights", "alias"},
		{"", "", "blank input"},
		{"Miscellaneous", "", "retired umbrella section"},
		{"general items", "", "retired umbrella section"},
		{"other-faults", "", "retired umbrella section"},
		{"flux-capacitor", "", "unknown section"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ix.ResolveSectionKey(tc.input), tc.description)
	}
}

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input       string
		expected    bool
		description string
	}{
		{"tyre worn", true, "normal query"},
		{"ty", true, "short but real"},
		{"", false, "empty"},
		{"12345", false, "numbers only"},
		{"aaaa", false, "repetitive noise"},
		{"aa", true, "two chars allowed"},
		{"nsf tyre 2", true, "digits mixed with words"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, IsValidInput(tc.input), tc.description)
	}
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold('a', 'A'))
	assert.True(t, EqualFold('z', 'z'))
	assert.False(t, EqualFold('a', 'b'))
	assert.True(t, EqualFold('é', 'É'), "non-ASCII folding")
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
}

func TestResultFilter(t *testing.T) {
	filter := NewResultFilter()
	assert.True(t, filter.ShouldInclude("Nail in tyre"))
	assert.False(t, filter.ShouldInclude("nail in tyre"), "case-insensitive duplicate")
	assert.False(t, filter.ShouldInclude("NAIL IN TYRE"))
	assert.True(t, filter.ShouldInclude("Tyre worn"))
}

func TestCreateRankList(t *testing.T) {
	assert.Empty(t, CreateRankList(0))
	assert.Equal(t, []uint16{1, 2, 3}, CreateRankList(3))
}

func TestDirWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config", "faultserve")
	assert.True(t, DirWritable(dir), "missing directory is created and checked")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "the write check leaves nothing behind")
}

func TestGetAbsolutePath(t *testing.T) {
	assert.Equal(t, "unknown", GetAbsolutePath(""))
	assert.Equal(t, "/etc/faultserve.toml", GetAbsolutePath("/etc/faultserve.toml"))
	assert.True(t, filepath.IsAbs(GetAbsolutePath("config.toml")))
}

package utils

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// LoadTOMLFile decodes a TOML file into config. A decode error is logged and
// returned so the caller can switch to value-by-value recovery.
func LoadTOMLFile(path string, config interface{}) error {
	if _, err := toml.DecodeFile(path, config); err != nil {
		log.Warnf("TOML parsing error in %s: %v", path, err)
		return err
	}
	return nil
}

// ParseTOMLWithRecovery decodes a TOML file into an untyped map. Mistyped
// values that fail a strict struct decode still land in the map, where the
// Extract helpers can salvage the usable ones.
func ParseTOMLWithRecovery(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	parsed := make(map[string]any)
	if _, err := toml.Decode(string(data), &parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

// ExtractSection pulls a named table out of untyped TOML data.
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// ExtractInt pulls an integer value out of untyped TOML data. TOML decodes
// integers as int64; anything else under the key reports false.
func ExtractInt(data map[string]any, key string) (int, bool) {
	if val, ok := data[key].(int64); ok {
		return int(val), true
	}
	return 0, false
}

// ExtractString pulls a string value out of untyped TOML data.
func ExtractString(data map[string]any, key string) (string, bool) {
	if val, ok := data[key].(string); ok {
		return val, true
	}
	return "", false
}

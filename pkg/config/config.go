/*
Package config manages TOML config for FaultServe services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/inspectd/faultserve/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Learned LearnedConfig `toml:"learned"`
	Cache   CacheConfig   `toml:"cache"`
	UI      UIConfig      `toml:"ui"`
}

// EngineConfig has suggestion engine options.
type EngineConfig struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// LearnedConfig holds learned-store options.
type LearnedConfig struct {
	Capacity  int    `toml:"capacity"`
	Backend   string `toml:"backend"` // "file", "redis" or "memory"
	RedisAddr string `toml:"redis_addr"`
}

// CacheConfig holds query cache options.
type CacheConfig struct {
	Capacity int `toml:"capacity"`
}

// UIConfig holds autocomplete control options.
type UIConfig struct {
	DebounceMs int `toml:"debounce_ms"`
	MaxVisible int `toml:"max_visible"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "faultserve")
	if utils.DirWritable(primaryPath) {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "faultserve")
	if utils.DirWritable(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/faultserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			DefaultLimit: 12,
			MaxLimit:     64,
		},
		Learned: LearnedConfig{
			Capacity:  200,
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
		Cache: CacheConfig{
			Capacity: 20,
		},
		UI: UIConfig{
			DebounceMs: 150,
			MaxVisible: 8,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file section by section
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if learnedSection, ok := utils.ExtractSection(tempConfig, "learned"); ok {
		extractLearnedConfig(learnedSection, &config.Learned)
	}
	if cacheSection, ok := utils.ExtractSection(tempConfig, "cache"); ok {
		extractCacheConfig(cacheSection, &config.Cache)
	}
	if uiSection, ok := utils.ExtractSection(tempConfig, "ui"); ok {
		extractUIConfig(uiSection, &config.UI)
	}
	return config, nil
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt(data, "default_limit"); ok {
		engine.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt(data, "max_limit"); ok {
		engine.MaxLimit = val
	}
}

// extractLearnedConfig extracts learned-store configuration from a map
func extractLearnedConfig(data map[string]any, learned *LearnedConfig) {
	if val, ok := utils.ExtractInt(data, "capacity"); ok {
		learned.Capacity = val
	}
	if val, ok := utils.ExtractString(data, "backend"); ok {
		learned.Backend = val
	}
	if val, ok := utils.ExtractString(data, "redis_addr"); ok {
		learned.RedisAddr = val
	}
}

// extractCacheConfig extracts cache config from a map
func extractCacheConfig(data map[string]any, cache *CacheConfig) {
	if val, ok := utils.ExtractInt(data, "capacity"); ok {
		cache.Capacity = val
	}
}

// extractUIConfig extracts autocomplete control config from a map
func extractUIConfig(data map[string]any, ui *UIConfig) {
	if val, ok := utils.ExtractInt(data, "debounce_ms"); ok {
		ui.DebounceMs = val
	}
	if val, ok := utils.ExtractInt(data, "max_visible"); ok {
		ui.MaxVisible = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

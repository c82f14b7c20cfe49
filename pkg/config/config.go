/*
Package config manages the TOML config for teny services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Checker CheckerConfig `toml:"checker"`
	Lexicon LexiconConfig `toml:"lexicon"`
	Model   ModelConfig   `toml:"model"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// CheckerConfig tunes the analysis pipeline.
type CheckerConfig struct {
	Threshold        float64 `toml:"threshold"`
	SuggestionLimit  int     `toml:"suggestion_limit"`
	DictAlternatives int     `toml:"dictionary_alternatives"`
	DictThreshold    float64 `toml:"dictionary_threshold"`
	CacheSize        int     `toml:"cache_size"`
}

// LexiconConfig lists the lexicon sources merged over the built-in list.
type LexiconConfig struct {
	DefinitionsPath string `toml:"definitions_path"`
	WordListPath    string `toml:"word_list_path"`
	SnapshotPath    string `toml:"snapshot_path"`
	RedisAddr       string `toml:"redis_addr"`
	RedisKey        string `toml:"redis_key"`
	Watch           bool   `toml:"watch"`
}

// ModelConfig locates the n-gram model.
type ModelConfig struct {
	Order        int    `toml:"order"`
	SnapshotPath string `toml:"snapshot_path"`
	DBPath       string `toml:"db_path"`
	TrainSeed    bool   `toml:"train_seed"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxTextLength int      `toml:"max_text_length"`
	MaxLimit      int      `toml:"max_limit"`
	MinPrefix     int      `toml:"min_prefix"`
	HTTPAddr      string   `toml:"http_addr"`
	CORSOrigins   []string `toml:"cors_origins"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	Color        bool `toml:"color"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/teny
// 2. ~/Library/Application Support/teny (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.ExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "teny")
	if utils.WritableDir(primaryPath) {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "teny")
	if utils.WritableDir(macOSPath) {
		return macOSPath, nil
	}
	execDir, err := utils.ExecutableDir()
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
// 2. Default path: [UserConfigDir]/teny/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
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
		Checker: CheckerConfig{
			Threshold:        70,
			SuggestionLimit:  5,
			DictAlternatives: 3,
			DictThreshold:    70,
			CacheSize:        10000,
		},
		Lexicon: LexiconConfig{
			RedisKey: "teny:user_words",
		},
		Model: ModelConfig{
			Order:     2,
			TrainSeed: true,
		},
		Server: ServerConfig{
			MaxTextLength: 20000,
			MaxLimit:      50,
			MinPrefix:     2,
			HTTPAddr:      "127.0.0.1:8000",
			CORSOrigins:   []string{"http://localhost:3000"},
		},
		CLI: CliConfig{
			DefaultLimit: 5,
			Color:        true,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if err := utils.EnsureParentDir(configPath); err != nil {
		log.Warnf("%v. Using built-in defaults...", err)
		return DefaultConfig(), nil
	}

	if !utils.IsFile(configPath) {
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

// LoadConfig loads from a TOML file. A file that does not decode as a whole is
// recovered section by section; values missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every well-typed key of a file that failed strict decoding.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "checker"); ok {
		extractCheckerConfig(section, &config.Checker)
	}
	if section, ok := utils.ExtractSection(tempConfig, "lexicon"); ok {
		extractLexiconConfig(section, &config.Lexicon)
	}
	if section, ok := utils.ExtractSection(tempConfig, "model"); ok {
		extractModelConfig(section, &config.Model)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractCheckerConfig(data map[string]any, c *CheckerConfig) {
	if val, ok := utils.ExtractFloat64(data, "threshold"); ok {
		c.Threshold = val
	}
	if val, ok := utils.ExtractInt64(data, "suggestion_limit"); ok {
		c.SuggestionLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "dictionary_alternatives"); ok {
		c.DictAlternatives = val
	}
	if val, ok := utils.ExtractFloat64(data, "dictionary_threshold"); ok {
		c.DictThreshold = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		c.CacheSize = val
	}
}

func extractLexiconConfig(data map[string]any, l *LexiconConfig) {
	if val, ok := utils.ExtractString(data, "definitions_path"); ok {
		l.DefinitionsPath = val
	}
	if val, ok := utils.ExtractString(data, "word_list_path"); ok {
		l.WordListPath = val
	}
	if val, ok := utils.ExtractString(data, "snapshot_path"); ok {
		l.SnapshotPath = val
	}
	if val, ok := utils.ExtractString(data, "redis_addr"); ok {
		l.RedisAddr = val
	}
	if val, ok := utils.ExtractString(data, "redis_key"); ok {
		l.RedisKey = val
	}
	if val, ok := utils.ExtractBool(data, "watch"); ok {
		l.Watch = val
	}
}

func extractModelConfig(data map[string]any, m *ModelConfig) {
	if val, ok := utils.ExtractInt64(data, "order"); ok {
		m.Order = val
	}
	if val, ok := utils.ExtractString(data, "snapshot_path"); ok {
		m.SnapshotPath = val
	}
	if val, ok := utils.ExtractString(data, "db_path"); ok {
		m.DBPath = val
	}
	if val, ok := utils.ExtractBool(data, "train_seed"); ok {
		m.TrainSeed = val
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_text_length"); ok {
		s.MaxTextLength = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		s.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_prefix"); ok {
		s.MinPrefix = val
	}
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		s.HTTPAddr = val
	}
	if val, ok := utils.ExtractStrings(data, "cors_origins"); ok {
		s.CORSOrigins = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsPath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the server limits and saves to file. Nil values are left as is.
func (c *Config) Update(configPath string, maxLimit, minPrefix, maxTextLength *int) error {
	server := &c.Server
	if maxLimit != nil {
		server.MaxLimit = *maxLimit
	}
	if minPrefix != nil {
		server.MinPrefix = *minPrefix
	}
	if maxTextLength != nil {
		server.MaxTextLength = *maxTextLength
	}
	return SaveConfig(c, configPath)
}

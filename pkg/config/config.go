/*
Package config manages the TOML config for wordchain.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/wordchain/internal/utils"
	"github.com/bastiangx/wordchain/pkg/game"
	"github.com/bastiangx/wordchain/pkg/opponent"
	"github.com/bastiangx/wordchain/pkg/score"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Game    game.Settings `toml:"game"`
	Weights score.Weights `toml:"weights"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
	Data    DataConfig    `toml:"data"`
}

// EngineConfig bounds the opponent search.
type EngineConfig struct {
	opponent.Limits
	ObscurityCacheSize int `toml:"obscurity_cache_size"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxHints int `toml:"max_hints"`
	// AutoStart starts a game as soon as a dictionary is loaded.
	AutoStart bool `toml:"auto_start"`
}

// CliConfig holds console game options.
type CliConfig struct {
	ShowHints     bool `toml:"show_hints"`
	AutoPrefix    bool `toml:"auto_prefix"`
	TopSolveLimit int  `toml:"top_solve_limit"`
}

// DataConfig names the word list files.
type DataConfig struct {
	Words    string `toml:"words"`
	Patterns string `toml:"patterns"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. platform config dir (~/.config/wordchain)
// 2. current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil {
		primaryPath := utils.ConfigDirFor(homeDir)
		if result := utils.CheckDirStatus(primaryPath); result.Writable {
			return primaryPath, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
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
// 2. Default path: [UserConfigDir]/wordchain/config.toml
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
		Engine: EngineConfig{
			Limits:             opponent.DefaultLimits(),
			ObscurityCacheSize: 20000,
		},
		Game:    game.DefaultSettings(),
		Weights: score.DefaultWeights(),
		Server: ServerConfig{
			MaxHints: 16,
		},
		CLI: CliConfig{
			ShowHints:     false,
			AutoPrefix:    true,
			TopSolveLimit: 10,
		},
		Data: DataConfig{
			Words:    "words.txt",
			Patterns: "patterns.txt",
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

// LoadConfig loads from a TOML file. Keys missing from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse keeps every value of the right type and defaults the rest.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "engine"); ok {
		extractEngineConfig(section, &config.Engine)
	}
	if section, ok := utils.ExtractSection(raw, "game"); ok {
		extractGameSettings(section, &config.Game)
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	if section, ok := utils.ExtractSection(raw, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(raw, "weights.word"); ok {
		decodeSection(section, &config.Weights.Word)
	}
	if section, ok := utils.ExtractSection(raw, "weights.move"); ok {
		decodeSection(section, &config.Weights.Move)
	}
	if section, ok := utils.ExtractSection(raw, "weights.hint"); ok {
		decodeSection(section, &config.Weights.Hint)
	}
	return config, nil
}

func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "lookahead_candidates"); ok {
		engine.LookaheadCandidates = val
	}
	if val, ok := utils.ExtractInt64(data, "lookahead_responses"); ok {
		engine.LookaheadResponses = val
	}
	if val, ok := utils.ExtractInt64(data, "fallback_pool"); ok {
		engine.FallbackPool = val
	}
	if val, ok := utils.ExtractInt64(data, "shuffle_window"); ok {
		engine.ShuffleWindow = val
	}
	if val, ok := utils.ExtractInt64(data, "restart_attempts"); ok {
		engine.RestartAttempts = val
	}
	if val, ok := utils.ExtractFloat(data, "deep_penalty_floor"); ok {
		engine.DeepPenaltyFloor = val
	}
	if val, ok := utils.ExtractInt64(data, "obscurity_cache_size"); ok {
		engine.ObscurityCacheSize = val
	}
}

func extractGameSettings(data map[string]any, settings *game.Settings) {
	if val, ok := utils.ExtractInt64(data, "starting_hearts"); ok {
		settings.StartingHearts = val
	}
	if val, ok := utils.ExtractInt64(data, "points_for_heart"); ok {
		settings.PointsForHeart = val
	}
	if val, ok := utils.ExtractInt64(data, "hint_pool"); ok {
		settings.HintPool = val
	}
	if val, ok := utils.ExtractInt64(data, "hints_shown"); ok {
		settings.HintsShown = val
	}
	if val, ok := utils.ExtractInt64(data, "max_prefix_len"); ok {
		settings.MaxPrefixLen = val
	}
	if val, ok := utils.ExtractInt64(data, "hint_solution_sample"); ok {
		settings.HintSolutionSample = val
	}
	if val, ok := utils.ExtractInt64(data, "seed"); ok {
		settings.Seed = int64(val)
	}
	if val, ok := utils.ExtractBool(data, "verify_lookahead"); ok {
		settings.VerifyLookahead = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_hints"); ok {
		server.MaxHints = val
	}
	if val, ok := utils.ExtractBool(data, "auto_start"); ok {
		server.AutoStart = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "show_hints"); ok {
		cli.ShowHints = val
	}
	if val, ok := utils.ExtractBool(data, "auto_prefix"); ok {
		cli.AutoPrefix = val
	}
	if val, ok := utils.ExtractInt64(data, "top_solve_limit"); ok {
		cli.TopSolveLimit = val
	}
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	if val, ok := utils.ExtractString(data, "words"); ok {
		d.Words = val
	}
	if val, ok := utils.ExtractString(data, "patterns"); ok {
		d.Patterns = val
	}
}

// decodeSection decodes one key at a time into dst, so a value of the wrong
// type only loses that key.
func decodeSection(data map[string]any, dst any) {
	for key, val := range data {
		doc, err := toml.Marshal(map[string]any{key: val})
		if err != nil {
			continue
		}
		if err := toml.Unmarshal(doc, dst); err != nil {
			log.Warnf("Ignoring config key %q: %v", key, err)
		}
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
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

// EngineOptions turns the config into game engine options.
func (c *Config) EngineOptions() []game.Option {
	return []game.Option{
		game.WithSettings(c.Game),
		game.WithWeights(c.Weights),
		game.WithLimits(c.Engine.Limits),
		game.WithCacheSize(c.Engine.ObscurityCacheSize),
	}
}

// Update changes the game values and saves to file
func (c *Config) Update(configPath string, startingHearts, pointsForHeart *int, seed *int64) error {
	if startingHearts != nil {
		c.Game.StartingHearts = *startingHearts
	}
	if pointsForHeart != nil {
		c.Game.PointsForHeart = *pointsForHeart
	}
	if seed != nil {
		c.Game.Seed = *seed
	}
	return SaveConfig(c, configPath)
}

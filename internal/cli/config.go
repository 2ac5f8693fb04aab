package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	DataDir string `json:"data_dir"` //nolint:tagliatelle // snake_case for config file
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{DataDir: "data"}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".examdesk.json"

// EnvDataDir overrides the data directory when set in the environment.
const EnvDataDir = "EXAMDESK_DATA_DIR"

// LoadConfig loads configuration with the following precedence (highest
// wins): defaults, project config file (or the explicit file given via
// configPath), EXAMDESK_DATA_DIR, CLI override. Returns the config and the
// path of the config file that was loaded, if any.
func LoadConfig(workDir, configPath, dataDirOverride string, env map[string]string) (Config, string, error) {
	cfg := DefaultConfig()

	cfgFile := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	source := ""

	if loaded {
		source = cfgFile

		if fileCfg.DataDir != "" {
			cfg.DataDir = fileCfg.DataDir
		}
	}

	if envDir := env[EnvDataDir]; envDir != "" {
		cfg.DataDir = envDir
	}

	if dataDirOverride != "" {
		cfg.DataDir = dataDirOverride
	}

	if cfg.DataDir == "" {
		return Config{}, "", errDataDirEmpty
	}

	return cfg, source, nil
}

// loadConfigFile loads a config file. If mustExist is false, a missing file
// returns zero config without error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
		}

		return Config{}, false, nil
	}

	standardized, parseErr := hujson.Standardize(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSONC: %w", errConfigInvalid, path, parseErr)
	}

	var cfg Config

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: invalid JSON: %w", errConfigInvalid, path, unmarshalErr)
	}

	// An explicitly empty data_dir is a config error, not a fallthrough to
	// the default.
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if val, exists := raw["data_dir"]; exists {
		if str, ok := val.(string); ok && str == "" {
			return Config{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, errDataDirEmpty)
		}
	}

	return cfg, true, nil
}

// FormatConfig returns the config as formatted JSON.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}

	return string(data), nil
}

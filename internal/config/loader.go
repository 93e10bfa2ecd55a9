package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory under $HOME holding configs, the database and logs.
const AppDir = ".paper-runner"

// Load loads the runner configuration. Values missing from a file keep their defaults.
// Search order: customPath -> ~/.paper-runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func Load(customPath string) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()

	// A custom path must load; errors are returned to the caller
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{"configs/runner.yaml"}
	if userCfgPath := UserPath("configs", "runner.yaml"); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultRunnerConfig()
		if err := decode(path, data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil
	}
	return cfg, nil
}

// decode picks the codec from the file extension: .toml is TOML, anything else YAML.
func decode(path string, data []byte, cfg *RunnerConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Marshal renders a config as YAML.
func Marshal(cfg RunnerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// UserPath joins elem under ~/.paper-runner, or returns empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, AppDir}, elem...)...)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Package config loads and bootstraps the taste configuration file.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tastemaker/taste/internal/domain"
	"github.com/tastemaker/taste/internal/pkg/filesystem"
	"github.com/tastemaker/taste/internal/ports"
)

// FileLoader loads YAML configuration from ~/.taste/config.yaml
// (overridable via TASTE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path means "use the default
// location or the TASTE_CONFIG override".
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is bootstrapped with
// defaults so a fresh install works without manual setup.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv("TASTE_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".taste", "config.yaml")
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		RulesRoot:           filepath.Join(filesystem.UserHomeDir(), ".taste", "rules"),
		GitHub: domain.GitHubSettings{
			APIBaseURL:  "https://api.github.com",
			TokenEnvVar: "GITHUB_TOKEN",
		},
		Model: domain.ModelDefinition{
			Endpoint:    "https://api.anthropic.com/v1/messages",
			AuthEnvVar:  "ANTHROPIC_API_KEY",
			ModelID:     "claude-sonnet-4-20250514",
			MaxTokens:   8000,
			Temperature: 0.2,
		},
		Preferences: domain.Preferences{
			TimeoutSeconds: 120,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := defaultConfig()
	if cfg.RulesRoot == "" {
		cfg.RulesRoot = def.RulesRoot
	} else {
		cfg.RulesRoot = filesystem.ExpandPath(cfg.RulesRoot)
	}
	if cfg.GitHub.APIBaseURL == "" {
		cfg.GitHub.APIBaseURL = def.GitHub.APIBaseURL
	}
	if cfg.GitHub.TokenEnvVar == "" {
		cfg.GitHub.TokenEnvVar = def.GitHub.TokenEnvVar
	}
	if cfg.Model.Endpoint == "" {
		cfg.Model.Endpoint = def.Model.Endpoint
	}
	if cfg.Model.AuthEnvVar == "" {
		cfg.Model.AuthEnvVar = def.Model.AuthEnvVar
	}
	if cfg.Model.ModelID == "" {
		cfg.Model.ModelID = def.Model.ModelID
	}
	if cfg.Model.MaxTokens == 0 {
		cfg.Model.MaxTokens = def.Model.MaxTokens
	}
	if cfg.Model.Temperature == 0 {
		cfg.Model.Temperature = def.Model.Temperature
	}
	if cfg.Preferences.TimeoutSeconds == 0 {
		cfg.Preferences.TimeoutSeconds = def.Preferences.TimeoutSeconds
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)

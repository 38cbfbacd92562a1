package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/publish-guard/internal/manifest"
	"github.com/conn-castle/publish-guard/internal/messages"
)

// DefaultFileName is the config file looked up in the working directory.
const DefaultFileName = ".publish.toml"

// DefaultPath returns the config path for a working directory.
func DefaultPath(dir string) string {
	return filepath.Join(dir, DefaultFileName)
}

// ManifestPath resolves the configured manifest relative to dir.
func (c *Config) ManifestPath(dir string) string {
	if strings.TrimSpace(c.Publish.Manifest) == "" {
		return resolve(dir, manifest.DefaultPath)
	}
	return resolve(dir, c.Publish.Manifest)
}

// EnvFilePath resolves the configured env file relative to dir; "" when unset.
func (c *Config) EnvFilePath(dir string) (string, error) {
	if strings.TrimSpace(c.CI.EnvFile) == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(c.CI.EnvFile)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandEnvFileFmt, c.CI.EnvFile, err)
	}
	return resolve(dir, expanded), nil
}

// UserConfigPath returns the npm userconfig with "~" expanded; "" when unset.
func (c *Config) UserConfigPath() (string, error) {
	if strings.TrimSpace(c.Registry.UserConfig) == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(c.Registry.UserConfig)
	if err != nil {
		return "", fmt.Errorf(messages.ConfigExpandUserConfigFmt, c.Registry.UserConfig, err)
	}
	return expanded, nil
}

func resolve(dir string, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

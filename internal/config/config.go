package config

import (
	"time"

	"github.com/conn-castle/publish-guard/internal/credentials"
	"github.com/conn-castle/publish-guard/internal/gate"
	"github.com/conn-castle/publish-guard/internal/manifest"
	"github.com/conn-castle/publish-guard/internal/registry"
)

// Config is the publish configuration file (.publish.toml).
type Config struct {
	Publish  PublishConfig  `toml:"publish"`
	Registry RegistryConfig `toml:"registry"`
	CI       CIConfig       `toml:"ci"`
}

// PublishConfig holds defaults for the publish decision and run.
type PublishConfig struct {
	// Triggers lists default on-<component> options; CLI flags add to them.
	Triggers []string `toml:"triggers"`
	Tag      string   `toml:"tag"`
	// Timeout bounds each registry call, as a Go duration. Empty or "0" disables it.
	Timeout  string `toml:"timeout"`
	Manifest string `toml:"manifest"`
}

// RegistryConfig configures the npm executable.
type RegistryConfig struct {
	NPM        string `toml:"npm"`
	URL        string `toml:"url"`
	UserConfig string `toml:"userconfig"`
}

// CIConfig names the environment variables used in CI runs.
type CIConfig struct {
	Indicator   string `toml:"indicator"`
	UsernameEnv string `toml:"username_env"`
	PasswordEnv string `toml:"password_env"`
	EmailEnv    string `toml:"email_env"`
	EnvFile     string `toml:"env_file"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Publish: PublishConfig{
			Manifest: manifest.DefaultPath,
		},
		Registry: RegistryConfig{
			NPM: registry.DefaultBinary,
		},
		CI: CIConfig{
			Indicator:   credentials.DefaultIndicator,
			UsernameEnv: credentials.DefaultUsernameEnv,
			PasswordEnv: credentials.DefaultPasswordEnv,
			EmailEnv:    credentials.DefaultEmailEnv,
		},
	}
}

// GateOptions returns the configured default triggers.
func (c *Config) GateOptions() (gate.Options, error) {
	return gate.ParseOptions(c.Publish.Triggers)
}

// TimeoutDuration returns the per-call registry timeout; zero means none.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Publish.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Publish.Timeout)
}

// Resolver returns the credential resolver for the configured variable names.
func (c *Config) Resolver() credentials.Resolver {
	return credentials.Resolver{
		Indicator: c.CI.Indicator,
		Keys: credentials.Keys{
			Username: c.CI.UsernameEnv,
			Password: c.CI.PasswordEnv,
			Email:    c.CI.EmailEnv,
		},
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/conn-castle/publish-guard/internal/gate"
	"github.com/conn-castle/publish-guard/internal/messages"
)

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	for _, trigger := range c.Publish.Triggers {
		if _, err := gate.ParseTrigger(trigger); err != nil {
			return fmt.Errorf(messages.ConfigTriggerInvalidFmt, path, trigger)
		}
	}

	if c.Publish.Timeout != "" {
		timeout, err := time.ParseDuration(c.Publish.Timeout)
		if err != nil {
			return fmt.Errorf(messages.ConfigTimeoutInvalidFmt, path, c.Publish.Timeout)
		}
		if timeout < 0 {
			return fmt.Errorf(messages.ConfigTimeoutNegativeFmt, path)
		}
	}

	if strings.TrimSpace(c.Registry.NPM) == "" {
		return fmt.Errorf(messages.ConfigNPMRequiredFmt, path)
	}

	envFields := []struct {
		field string
		value string
	}{
		{"indicator", c.CI.Indicator},
		{"username_env", c.CI.UsernameEnv},
		{"password_env", c.CI.PasswordEnv},
		{"email_env", c.CI.EmailEnv},
	}
	seen := make(map[string]string, len(envFields))
	for _, f := range envFields {
		name := strings.TrimSpace(f.value)
		if name == "" {
			return fmt.Errorf(messages.ConfigCIEnvRequiredFmt, path, f.field)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf(messages.ConfigCIEnvDuplicateFmt, path, prev, f.field, name)
		}
		seen[name] = f.field
	}
	return nil
}

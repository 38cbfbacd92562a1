package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"bad trigger", "[publish]\ntriggers = [\"on-release\"]\n", `invalid trigger "on-release"`},
		{"bad timeout", "[publish]\ntimeout = \"soon\"\n", "not a valid duration"},
		{"negative timeout", "[publish]\ntimeout = \"-5s\"\n", "must not be negative"},
		{"empty npm", "[registry]\nnpm = \" \"\n", "registry.npm must not be empty"},
		{"empty indicator", "[ci]\nindicator = \"\"\n", "ci.indicator must not be empty"},
		{"empty email env", "[ci]\nemail_env = \"\"\n", "ci.email_env must not be empty"},
		{"duplicate env", "[ci]\npassword_env = \"NPM_USERNAME\"\n", "name the same variable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml), "bad.toml")
			if !errors.Is(err, ErrConfigValidation) {
				t.Fatalf("expected ErrConfigValidation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected %q in %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), "bad.toml") {
				t.Fatalf("expected source in %v", err)
			}
		})
	}
}

func TestValidateDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate("default"); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

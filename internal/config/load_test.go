package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/conn-castle/publish-guard/internal/version"
)

const fullConfig = `
[publish]
triggers = ["on-minor", "patch"]
tag = "next"
timeout = "90s"
manifest = "pkg/package.json"

[registry]
npm = "/usr/local/bin/npm"
url = "https://registry.example.com/"
userconfig = "/tmp/npmrc"

[ci]
indicator = "TRAVIS"
username_env = "REG_USER"
password_env = "REG_PASS"
email_env = "REG_EMAIL"
env_file = ".env.ci"
`

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(fullConfig), "test.toml")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	opts, err := cfg.GateOptions()
	if err != nil {
		t.Fatalf("GateOptions error: %v", err)
	}
	if !opts.Has(version.Minor) || !opts.Has(version.Patch) || opts.Has(version.Major) {
		t.Fatalf("unexpected triggers %s", opts)
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil || timeout != 90*time.Second {
		t.Fatalf("unexpected timeout %v (%v)", timeout, err)
	}
	if cfg.Publish.Tag != "next" {
		t.Fatalf("unexpected tag %q", cfg.Publish.Tag)
	}
	if cfg.Registry.URL != "https://registry.example.com/" {
		t.Fatalf("unexpected registry url %q", cfg.Registry.URL)
	}
	resolver := cfg.Resolver()
	if resolver.Indicator != "TRAVIS" || resolver.Keys.Username != "REG_USER" || resolver.Keys.Password != "REG_PASS" || resolver.Keys.Email != "REG_EMAIL" {
		t.Fatalf("unexpected resolver %+v", resolver)
	}
}

func TestParseEmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil, "empty.toml")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	want := Default()
	if cfg.Registry.NPM != want.Registry.NPM || cfg.CI.Indicator != "CI" || cfg.Publish.Manifest != "package.json" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil || timeout != 0 {
		t.Fatalf("expected no timeout, got %v (%v)", timeout, err)
	}
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("[ci]\nindicator = \"GITHUB_ACTIONS\"\n"), "partial.toml")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.CI.Indicator != "GITHUB_ACTIONS" || cfg.CI.UsernameEnv != "NPM_USERNAME" {
		t.Fatalf("unexpected ci config %+v", cfg.CI)
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("[publish\n"), "broken.toml")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	if errors.Is(err, ErrConfigValidation) {
		t.Fatalf("syntax errors must not be validation errors: %v", err)
	}
}

func TestParseUnknownKey(t *testing.T) {
	_, err := Parse([]byte("[publish]\nretries = 3\n"), "unknown.toml")
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "unrecognized config keys") {
		t.Fatalf("expected unrecognized keys message, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(DefaultPath(dir))
	if err != nil {
		t.Fatalf("LoadOptional error: %v", err)
	}
	if cfg.Registry.NPM != "npm" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}

	if err := os.WriteFile(DefaultPath(dir), []byte("[publish]\ntag = \"beta\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = LoadOptional(DefaultPath(dir))
	if err != nil {
		t.Fatalf("LoadOptional error: %v", err)
	}
	if cfg.Publish.Tag != "beta" {
		t.Fatalf("expected tag beta, got %q", cfg.Publish.Tag)
	}
}

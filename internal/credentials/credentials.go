// Package credentials derives registry credentials from the environment of a CI run.
package credentials

import (
	"os"
	"strconv"
	"strings"
)

// Default environment variable names.
const (
	DefaultIndicator   = "CI"
	DefaultUsernameEnv = "NPM_USERNAME"
	DefaultPasswordEnv = "NPM_PASSWORD"
	DefaultEmailEnv    = "NPM_EMAIL"
)

// Env looks up environment variables.
type Env interface {
	Lookup(key string) (string, bool)
}

// OSEnv reads the process environment.
type OSEnv struct{}

// Lookup implements Env.
func (OSEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is an Env backed by a map.
type MapEnv map[string]string

// Lookup implements Env.
func (m MapEnv) Lookup(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// Overlay consults Primary first and falls back to Fallback for unset or empty keys.
type Overlay struct {
	Primary  Env
	Fallback Env
}

// Lookup implements Env.
func (o Overlay) Lookup(key string) (string, bool) {
	if o.Primary != nil {
		if value, ok := o.Primary.Lookup(key); ok && value != "" {
			return value, true
		}
	}
	if o.Fallback != nil {
		return o.Fallback.Lookup(key)
	}
	return "", false
}

// Credentials authenticate a registry user. The password is never rendered by String or GoString.
type Credentials struct {
	Username string
	Password string
	Email    string
}

func (c Credentials) String() string {
	return "credentials{user=" + c.Username + ", email=" + c.Email + ", password=<redacted>}"
}

// GoString keeps %#v from printing the password.
func (c Credentials) GoString() string {
	return c.String()
}

// Keys names the variables holding each credential field.
type Keys struct {
	Username string
	Password string
	Email    string
}

// Resolver detects CI runs and reads credentials for them.
type Resolver struct {
	// Indicator is the variable that marks a CI run.
	Indicator string
	Keys      Keys
}

// DefaultResolver returns a Resolver using CI, NPM_USERNAME, NPM_PASSWORD and NPM_EMAIL.
func DefaultResolver() Resolver {
	return Resolver{
		Indicator: DefaultIndicator,
		Keys: Keys{
			Username: DefaultUsernameEnv,
			Password: DefaultPasswordEnv,
			Email:    DefaultEmailEnv,
		},
	}
}

// IsCI reports whether the indicator variable is set to a truthy value.
// Values that parse as false ("false", "0") and empty values do not count.
func (r Resolver) IsCI(env Env) bool {
	if env == nil || r.Indicator == "" {
		return false
	}
	raw, ok := env.Lookup(r.Indicator)
	if !ok {
		return false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return false
	}
	if parsed, err := strconv.ParseBool(value); err == nil {
		return parsed
	}
	return true
}

// Resolve returns credentials when all three variables are present and non-empty.
// A partial set is reported as absent.
func (r Resolver) Resolve(env Env) (Credentials, bool) {
	if env == nil {
		return Credentials{}, false
	}
	username, ok := lookupNonEmpty(env, r.Keys.Username)
	if !ok {
		return Credentials{}, false
	}
	password, ok := lookupNonEmpty(env, r.Keys.Password)
	if !ok {
		return Credentials{}, false
	}
	email, ok := lookupNonEmpty(env, r.Keys.Email)
	if !ok {
		return Credentials{}, false
	}
	return Credentials{Username: username, Password: password, Email: email}, true
}

func lookupNonEmpty(env Env, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	value, ok := env.Lookup(key)
	if !ok {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

// Package envfile reads dotenv files used to supply CI variables outside the process environment.
package envfile

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/publish-guard/internal/messages"
)

// Load reads the .env file at path.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingEnvFileFmt, path, err)
	}
	env, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	return env, nil
}

// Parse reads KEY=VALUE lines. Blank lines, # comments and an "export " prefix are allowed.
// Later assignments of a key win.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.ConfigEnvfileLineErrorFmt, lineNo, err)
		}
		if ok {
			env[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.ConfigEnvfileReadFailedFmt, err)
	}
	return env, nil
}

func parseLine(line string) (key string, value string, ok bool, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))

	key, raw, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false, errors.New(messages.ConfigEnvfileMissingEquals)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false, errors.New(messages.ConfigEnvfileEmptyKey)
	}
	value, err = parseValue(strings.TrimSpace(raw))
	if err != nil {
		return "", "", false, err
	}
	return key, value, true, nil
}

func parseValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	switch quote := raw[0]; quote {
	case '"', '\'':
		end := closingQuote(raw, quote)
		if end < 0 {
			return "", fmt.Errorf(messages.ConfigEnvfileUnterminatedFmt, string(quote))
		}
		inner := raw[1:end]
		if quote == '"' {
			inner = unescape(inner)
		}
		return inner, nil
	default:
		if idx := strings.Index(raw, " #"); idx >= 0 {
			raw = raw[:idx]
		}
		return strings.TrimSpace(raw), nil
	}
}

// closingQuote returns the index of the quote closing raw[0], honoring backslash escapes
// inside double quotes.
func closingQuote(raw string, quote byte) int {
	for i := 1; i < len(raw); i++ {
		if quote == '"' && raw[i] == '\\' {
			i++
			continue
		}
		if raw[i] == quote {
			return i
		}
	}
	return -1
}

var unescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\n`, "\n", `\r`, "\r", `\t`, "\t")

func unescape(s string) string {
	return unescaper.Replace(s)
}

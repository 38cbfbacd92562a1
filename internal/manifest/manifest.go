// Package manifest reads the name and version of the package being published.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/conn-castle/publish-guard/internal/messages"
)

// DefaultPath is the manifest location relative to the working directory.
const DefaultPath = "package.json"

var (
	// ErrManifestUnreadable wraps missing, unreadable, or malformed manifests.
	ErrManifestUnreadable = errors.New(messages.ManifestUnreadable)
	// ErrMissingVersion reports a manifest without a version field.
	ErrMissingVersion = errors.New(messages.ManifestMissingVersion)
)

// Manifest holds the package.json fields publish needs.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Reader loads a manifest from a path.
type Reader interface {
	Read(path string) (Manifest, error)
}

// FileReader reads manifests from the local filesystem.
type FileReader struct{}

// Read implements Reader.
func (FileReader) Read(path string) (Manifest, error) {
	return Read(path)
}

// Read loads and validates the manifest at path.
func Read(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf(messages.ManifestReadFailedFmt, ErrManifestUnreadable, path, err)
	}
	return Parse(data, path)
}

// Parse decodes manifest JSON. source is used in error messages.
func Parse(data []byte, source string) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf(messages.ManifestInvalidJSONFmt, ErrManifestUnreadable, source, err)
	}
	m.Name = strings.TrimSpace(m.Name)
	m.Version = strings.TrimSpace(m.Version)
	if m.Name == "" {
		return Manifest{}, fmt.Errorf(messages.ManifestMissingNameFmt, ErrManifestUnreadable, messages.ManifestMissingName)
	}
	if m.Version == "" {
		return Manifest{}, fmt.Errorf(messages.ManifestMissingFieldFmt, ErrMissingVersion, source)
	}
	return m, nil
}

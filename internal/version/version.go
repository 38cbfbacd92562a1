// Package version parses package versions and classifies how two versions differ.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/conn-castle/publish-guard/internal/messages"
)

// Component identifies one position of a version. Components are ordered by precedence.
type Component int

const (
	// Major is the first version position.
	Major Component = iota
	Minor
	Patch
	// Build is the prerelease identifier (the part after '-').
	Build
)

// Components lists every component in precedence order.
var Components = [...]Component{Major, Minor, Patch, Build}

func (c Component) String() string {
	switch c {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	case Build:
		return "build"
	default:
		return "component(" + strconv.Itoa(int(c)) + ")"
	}
}

// Precedence describes where the remote version sits relative to the local one.
type Precedence int

// Precedence values, read from the remote side.
const (
	// Equal means both versions have the same precedence.
	Equal Precedence = iota
	// RemoteGreater means the registry is ahead of the local version.
	RemoteGreater
	// RemoteLesser means the local version is ahead of the registry.
	RemoteLesser
)

func (p Precedence) String() string {
	switch p {
	case Equal:
		return "equal"
	case RemoteGreater:
		return "remote-greater"
	case RemoteLesser:
		return "remote-lesser"
	default:
		return "precedence(" + strconv.Itoa(int(p)) + ")"
	}
}

// Version is a parsed package version. The zero value is 0.0.0.
type Version struct {
	sv *semver.Version
}

// Parse parses a version in X.Y.Z form with optional "v" prefix, prerelease and build metadata.
func Parse(raw string) (Version, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Version{}, errors.New(messages.VersionRequired)
	}
	sv, err := semver.StrictNewVersion(strings.TrimPrefix(trimmed, "v"))
	if err != nil {
		return Version{}, fmt.Errorf(messages.VersionInvalidFmt, raw, err)
	}
	return Version{sv: sv}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(raw string) Version {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) semver() *semver.Version {
	if v.sv == nil {
		return semver.New(0, 0, 0, "", "")
	}
	return v.sv
}

// Major returns the major number.
func (v Version) Major() uint64 { return v.semver().Major() }

// Minor returns the minor number.
func (v Version) Minor() uint64 { return v.semver().Minor() }

// Patch returns the patch number.
func (v Version) Patch() uint64 { return v.semver().Patch() }

// Build returns the prerelease identifier, or "" for a release.
func (v Version) Build() string { return v.semver().Prerelease() }

// Metadata returns the build metadata after '+'. It never affects ordering.
func (v Version) Metadata() string { return v.semver().Metadata() }

// Component returns the value at position c in a form suitable for equality checks.
func (v Version) Component(c Component) string {
	switch c {
	case Major:
		return strconv.FormatUint(v.Major(), 10)
	case Minor:
		return strconv.FormatUint(v.Minor(), 10)
	case Patch:
		return strconv.FormatUint(v.Patch(), 10)
	case Build:
		return v.Build()
	default:
		return ""
	}
}

// String returns the normalized version without a "v" prefix.
func (v Version) String() string {
	return v.semver().String()
}

// Compare orders remote against local using semver precedence.
// Build metadata is ignored, so versions whose four components match are Equal.
func Compare(remote Version, local Version) Precedence {
	switch cmp := remote.semver().Compare(local.semver()); {
	case cmp > 0:
		return RemoteGreater
	case cmp < 0:
		return RemoteLesser
	default:
		return Equal
	}
}

// Diff returns the first component, in precedence order, at which remote and local differ.
// ok is false when all four components are equal.
func Diff(remote Version, local Version) (c Component, ok bool) {
	for _, c := range Components {
		if remote.Component(c) != local.Component(c) {
			return c, true
		}
	}
	return 0, false
}

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		major    uint64
		minor    uint64
		patch    uint64
		build    string
		metadata string
	}{
		{raw: "1.2.3", major: 1, minor: 2, patch: 3},
		{raw: "v1.2.3", major: 1, minor: 2, patch: 3},
		{raw: " 0.0.1 ", patch: 1},
		{raw: "2.0.0-beta.1", major: 2, build: "beta.1"},
		{raw: "2.0.0-rc.2+sha.abc", major: 2, build: "rc.2", metadata: "sha.abc"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.major, v.Major())
			assert.Equal(t, tt.minor, v.Minor())
			assert.Equal(t, tt.patch, v.Patch())
			assert.Equal(t, tt.build, v.Build())
			assert.Equal(t, tt.metadata, v.Metadata())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "1.2", "1.2.3.4", "latest", "1.2.x", "01.2.3"} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("nope") })
}

func TestZeroValue(t *testing.T) {
	var v Version
	if v.String() != "0.0.0" {
		t.Fatalf("expected 0.0.0, got %s", v.String())
	}
	if Compare(v, MustParse("0.0.0")) != Equal {
		t.Fatalf("expected zero value to equal 0.0.0")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		remote string
		local  string
		want   Precedence
	}{
		{"1.3.5", "1.3.5", Equal},
		{"1.3.5", "1.3.4", RemoteGreater},
		{"1.3.4", "1.3.5", RemoteLesser},
		{"1.3.3", "2.3.3", RemoteLesser},
		{"2.0.0", "1.9.9", RemoteGreater},
		{"2.0.0-beta.1", "2.0.0", RemoteLesser},
		{"2.0.0-beta.2", "2.0.0-beta.1", RemoteGreater},
		{"1.0.0+build.1", "1.0.0+build.2", Equal},
		{"v1.0.0", "1.0.0", Equal},
	}
	for _, tt := range tests {
		got := Compare(MustParse(tt.remote), MustParse(tt.local))
		if got != tt.want {
			t.Fatalf("Compare(%s, %s) = %s, want %s", tt.remote, tt.local, got, tt.want)
		}
	}
}

func TestDiffFirstDifferingComponent(t *testing.T) {
	tests := []struct {
		remote string
		local  string
		want   Component
	}{
		{"1.3.3", "2.3.3", Major},
		{"1.2.1", "2.3.3", Major},
		{"2.2.3", "2.3.3", Minor},
		{"2.2.3", "2.3.5", Minor},
		{"2.3.3", "2.3.4", Patch},
		{"2.3.3-alpha", "2.3.3-beta", Build},
		{"2.3.3-beta", "2.3.3", Build},
	}
	for _, tt := range tests {
		got, ok := Diff(MustParse(tt.remote), MustParse(tt.local))
		if !ok {
			t.Fatalf("Diff(%s, %s) reported no difference", tt.remote, tt.local)
		}
		if got != tt.want {
			t.Fatalf("Diff(%s, %s) = %s, want %s", tt.remote, tt.local, got, tt.want)
		}
	}
}

func TestDiffEqualIgnoresMetadata(t *testing.T) {
	if c, ok := Diff(MustParse("1.0.0+a"), MustParse("1.0.0+b")); ok {
		t.Fatalf("expected no difference, got %s", c)
	}
}

func TestComponentAndPrecedenceStrings(t *testing.T) {
	assert.Equal(t, "major", Major.String())
	assert.Equal(t, "minor", Minor.String())
	assert.Equal(t, "patch", Patch.String())
	assert.Equal(t, "build", Build.String())
	assert.Equal(t, "component(9)", Component(9).String())
	assert.Equal(t, "equal", Equal.String())
	assert.Equal(t, "remote-greater", RemoteGreater.String())
	assert.Equal(t, "remote-lesser", RemoteLesser.String())
	assert.Equal(t, "", MustParse("1.0.0").Component(Component(9)))
}

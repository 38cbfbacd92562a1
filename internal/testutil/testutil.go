package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// StubResponse describes how a stub executable answers one subcommand.
type StubResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	// SleepSeconds replaces the stub with `sleep` after writing output, for timeout tests.
	SleepSeconds int
	// ChildSleepSeconds runs `sleep` as a child of the stub before writing output, the way
	// npm lifecycle scripts outlive a killed npm process.
	ChildSleepSeconds int
}

// WriteCommandStub writes an executable shell stub that answers by first argument.
// t is the active test; dir is the output directory; name is the executable file name;
// responses maps a subcommand (e.g. "view") to its response. Unknown subcommands exit 0.
// Every invocation appends its arguments as one line to <dir>/<name>.calls and its stdin
// to <dir>/<name>.stdin. It returns the stub path.
func WriteCommandStub(t *testing.T, dir string, name string, responses map[string]StubResponse) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("dir=$(dirname \"$0\")\n")
	fmt.Fprintf(&b, "printf '%%s\\n' \"$*\" >> \"$dir/%s.calls\"\n", name)
	fmt.Fprintf(&b, "cat >> \"$dir/%s.stdin\"\n", name)
	b.WriteString("case \"$1\" in\n")

	subcommands := make([]string, 0, len(responses))
	for sub := range responses {
		subcommands = append(subcommands, sub)
	}
	sort.Strings(subcommands)
	for _, sub := range subcommands {
		resp := responses[sub]
		fmt.Fprintf(&b, "  %s)\n", shellQuote(sub))
		if resp.ChildSleepSeconds > 0 {
			fmt.Fprintf(&b, "    sleep %d\n", resp.ChildSleepSeconds)
		}
		if resp.Stdout != "" {
			fmt.Fprintf(&b, "    printf '%%s' %s\n", shellQuote(resp.Stdout))
		}
		if resp.Stderr != "" {
			fmt.Fprintf(&b, "    printf '%%s' %s >&2\n", shellQuote(resp.Stderr))
		}
		if resp.SleepSeconds > 0 {
			fmt.Fprintf(&b, "    exec sleep %d\n", resp.SleepSeconds)
		}
		fmt.Fprintf(&b, "    exit %d\n    ;;\n", resp.ExitCode)
	}
	b.WriteString("esac\nexit 0\n")

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// StubCalls returns the argument lines recorded by a stub written with WriteCommandStub.
// t is the active test; dir is the stub directory; name is the executable file name.
func StubCalls(t *testing.T, dir string, name string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name+".calls"))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read stub calls: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// StubStdin returns everything the stub received on stdin across invocations.
func StubStdin(t *testing.T, dir string, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name+".stdin"))
	if os.IsNotExist(err) {
		return ""
	}
	if err != nil {
		t.Fatalf("read stub stdin: %v", err)
	}
	return string(data)
}

// WriteManifest writes a package.json with the given name and version into dir and returns its path.
func WriteManifest(t *testing.T, dir string, name string, version string) string {
	t.Helper()
	path := filepath.Join(dir, "package.json")
	content := fmt.Sprintf("{\n  \"name\": %q,\n  \"version\": %q\n}\n", name, version)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package testutil

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteCommandStubAnswersBySubcommand(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteCommandStub(t, dir, "npm", map[string]StubResponse{
		"view":    {Stdout: `"1.2.3"`},
		"publish": {Stderr: "it's broken", ExitCode: 7},
	})

	info, err := os.Stat(stubPath)
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm() != 0o755 {
		t.Fatalf("expected mode 0755, got %#o", info.Mode().Perm())
	}

	out, err := exec.Command(stubPath, "view", "pkg", "version").Output()
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if string(out) != `"1.2.3"` {
		t.Fatalf("unexpected view output %q", out)
	}

	cmd := exec.Command(stubPath, "publish")
	var stderr strings.Builder
	cmd.Stderr = &stderr
	err = cmd.Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T", err)
	}
	if exitErr.ExitCode() != 7 {
		t.Fatalf("expected exit code 7, got %d", exitErr.ExitCode())
	}
	if stderr.String() != "it's broken" {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}

	if err := exec.Command(stubPath, "whoami").Run(); err != nil {
		t.Fatalf("unknown subcommand should succeed: %v", err)
	}

	calls := StubCalls(t, dir, "npm")
	want := []string{"view pkg version", "publish", "whoami"}
	if strings.Join(calls, "|") != strings.Join(want, "|") {
		t.Fatalf("expected calls %v, got %v", want, calls)
	}
}

func TestStubRecordsStdin(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteCommandStub(t, dir, "npm", nil)
	cmd := exec.Command(stubPath, "adduser")
	cmd.Stdin = strings.NewReader("user\npass\n")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run stub: %v", err)
	}
	if got := StubStdin(t, dir, "npm"); got != "user\npass\n" {
		t.Fatalf("unexpected stdin %q", got)
	}
}

func TestStubCallsEmptyWhenNeverRun(t *testing.T) {
	dir := t.TempDir()
	WriteCommandStub(t, dir, "npm", nil)
	if calls := StubCalls(t, dir, "npm"); calls != nil {
		t.Fatalf("expected no calls, got %v", calls)
	}
	if stdin := StubStdin(t, dir, "npm"); stdin != "" {
		t.Fatalf("expected no stdin, got %q", stdin)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := WriteManifest(t, dir, "left-pad", "1.0.0")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if decoded["name"] != "left-pad" || decoded["version"] != "1.0.0" {
		t.Fatalf("unexpected manifest %v", decoded)
	}
}

func TestWithWorkingDirRestoresDirectory(t *testing.T) {
	original, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	target := t.TempDir()
	WithWorkingDir(t, target, func() {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("getwd in fn: %v", err)
		}
		resolvedTarget, _ := filepath.EvalSymlinks(target)
		resolvedCwd, _ := filepath.EvalSymlinks(cwd)
		if resolvedCwd != resolvedTarget {
			t.Fatalf("expected cwd %s, got %s", resolvedTarget, resolvedCwd)
		}
	})
	after, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd after: %v", err)
	}
	if after != original {
		t.Fatalf("expected cwd restored to %s, got %s", original, after)
	}
}

func TestWriteCommandStubChildSleep(t *testing.T) {
	dir := t.TempDir()
	stubPath := WriteCommandStub(t, dir, "npm", map[string]StubResponse{
		"view": {ChildSleepSeconds: 1, Stdout: "done"},
	})
	data, err := os.ReadFile(stubPath)
	if err != nil {
		t.Fatalf("read stub: %v", err)
	}
	if !strings.Contains(string(data), "    sleep 1\n") || strings.Contains(string(data), "exec sleep") {
		t.Fatalf("expected a child sleep, got:\n%s", data)
	}

	out, err := exec.Command(stubPath, "view").Output()
	if err != nil {
		t.Fatalf("view: %v", err)
	}
	if string(out) != "done" {
		t.Fatalf("unexpected output %q", out)
	}
}

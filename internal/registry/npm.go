package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/conn-castle/publish-guard/internal/credentials"
	"github.com/conn-castle/publish-guard/internal/messages"
)

// DefaultBinary is the npm executable looked up on PATH.
const DefaultBinary = "npm"

var execCommandContext = exec.CommandContext

// waitDelay bounds how long a canceled npm call waits for its output pipes to close.
var waitDelay = time.Second

type configEntry struct {
	key   string
	value string
}

// NPM implements Client by running the npm executable.
type NPM struct {
	// Bin is the npm executable. Empty means DefaultBinary.
	Bin string
	// Dir is the working directory for npm; it must contain the package to publish.
	Dir string
	// Env overrides the child environment when non-nil.
	Env []string
	// Stdout and Stderr receive the output of adduser and publish. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer

	config []configEntry
}

// NewNPM returns an NPM client running bin in dir.
func NewNPM(bin string, dir string) *NPM {
	return &NPM{Bin: bin, Dir: dir}
}

// SetConfig records key=value and passes it as --key=value to every later npm invocation.
// Setting a key again replaces its value.
func (n *NPM) SetConfig(key string, value string) {
	for i := range n.config {
		if n.config[i].key == key {
			n.config[i].value = value
			return
		}
	}
	n.config = append(n.config, configEntry{key: key, value: value})
}

// Config returns the value recorded for key.
func (n *NPM) Config(key string) (string, bool) {
	for _, entry := range n.config {
		if entry.key == key {
			return entry.value, true
		}
	}
	return "", false
}

// LookupVersion runs `npm view <name> version --json`.
func (n *NPM) LookupVersion(ctx context.Context, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New(messages.RegistryNameRequired)
	}
	stdout, err := n.run(ctx, nil, false, "view", name, "version", "--json")
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && isNotFound(cmdErr.Output) {
			return "", fmt.Errorf(messages.RegistryNotFoundFmt, ErrNotFound, name)
		}
		return "", err
	}
	return decodeVersion(name, stdout)
}

// AddUser runs `npm adduser` and answers its prompts on stdin.
func (n *NPM) AddUser(ctx context.Context, creds credentials.Credentials) error {
	stdin := strings.NewReader(creds.Username + "\n" + creds.Password + "\n" + creds.Email + "\n")
	_, err := n.run(ctx, stdin, true, "adduser", "--auth-type=legacy")
	return err
}

// Publish runs `npm publish` with the recorded config, including any tag.
func (n *NPM) Publish(ctx context.Context) error {
	_, err := n.run(ctx, nil, true, "publish")
	return err
}

func (n *NPM) binary() string {
	if strings.TrimSpace(n.Bin) == "" {
		return DefaultBinary
	}
	return n.Bin
}

// args appends the recorded config to the subcommand arguments.
func (n *NPM) args(sub []string) []string {
	out := make([]string, 0, len(sub)+len(n.config))
	out = append(out, sub...)
	for _, entry := range n.config {
		out = append(out, "--"+entry.key+"="+entry.value)
	}
	return out
}

// run executes npm and returns its stdout. When stream is set, output is also copied to
// n.Stdout and n.Stderr as it is produced.
func (n *NPM) run(ctx context.Context, stdin io.Reader, stream bool, sub ...string) ([]byte, error) {
	label := n.binary() + " " + sub[0]
	// #nosec G204 -- the binary comes from config and arguments are built from fixed subcommands.
	cmd := execCommandContext(ctx, n.binary(), n.args(sub)...)
	cmd.Dir = n.Dir
	cmd.WaitDelay = waitDelay
	killGroupOnCancel(cmd)
	if n.Env != nil {
		cmd.Env = n.Env
	}
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if stream {
		if n.Stdout != nil {
			cmd.Stdout = io.MultiWriter(&stdout, n.Stdout)
		}
		if n.Stderr != nil {
			cmd.Stderr = io.MultiWriter(&stderr, n.Stderr)
		}
	}

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf(messages.RegistryCanceledFmt, label, ctxErr)
		}
		cmdErr := &CommandError{Command: label, Output: diagnostic(stdout.String(), stderr.String()), Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return nil, cmdErr
	}
	return stdout.Bytes(), nil
}

// diagnostic picks the most useful output of a failed npm command.
func diagnostic(stdout string, stderr string) string {
	stderr = strings.TrimSpace(stderr)
	stdout = strings.TrimSpace(stdout)
	switch {
	case stderr == "":
		return stdout
	case stdout == "":
		return stderr
	default:
		return stderr + "\n" + stdout
	}
}

// isNotFound recognizes npm's 404 error code in either its text or JSON error output.
func isNotFound(output string) bool {
	return strings.Contains(output, "E404")
}

// decodeVersion accepts the JSON string npm prints for a single version, or the array it
// prints when several versions match, in which case the last one is the latest.
func decodeVersion(name string, raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", fmt.Errorf(messages.RegistryEmptyVersionFmt, name)
	}
	var single string
	if err := json.Unmarshal(trimmed, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			return "", fmt.Errorf(messages.RegistryEmptyVersionFmt, name)
		}
		return strings.TrimSpace(single), nil
	}
	var many []string
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return "", fmt.Errorf(messages.RegistryDecodeVersionFmt, name, err)
	}
	if len(many) == 0 {
		return "", fmt.Errorf(messages.RegistryEmptyVersionFmt, name)
	}
	return strings.TrimSpace(many[len(many)-1]), nil
}

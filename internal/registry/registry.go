// Package registry talks to the package registry through the npm executable.
package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/conn-castle/publish-guard/internal/credentials"
	"github.com/conn-castle/publish-guard/internal/messages"
)

// ErrNotFound reports that the registry has never seen the package.
var ErrNotFound = errors.New(messages.RegistryNotFound)

// Client is the set of registry operations a publish run needs.
// Calls are blocking and must not be issued concurrently.
type Client interface {
	// LookupVersion returns the latest published version of name, or an error wrapping ErrNotFound.
	LookupVersion(ctx context.Context, name string) (string, error)
	// SetConfig sets a registry option for the calls that follow. It does not persist.
	SetConfig(key string, value string)
	// AddUser authenticates creds with the registry.
	AddUser(ctx context.Context, creds credentials.Credentials) error
	// Publish publishes the package in the working directory. A dist-tag is applied
	// beforehand with SetConfig("tag", name).
	Publish(ctx context.Context) error
}

// CommandError reports a failed registry command.
type CommandError struct {
	// Command is the invoked subcommand, e.g. "npm publish".
	Command  string
	ExitCode int
	// Output is the trimmed diagnostic output of the command.
	Output string
	Err    error
}

func (e *CommandError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf(messages.RegistryCommandErrFmt, e.Command, e.ExitCode, e.Output)
	}
	return fmt.Sprintf(messages.RegistryCommandNoCodeFmt, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

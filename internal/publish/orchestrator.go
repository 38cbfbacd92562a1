// Package publish sequences a guarded publish run: remote lookup, decision, optional
// authentication, then publish.
package publish

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/conn-castle/publish-guard/internal/credentials"
	"github.com/conn-castle/publish-guard/internal/gate"
	"github.com/conn-castle/publish-guard/internal/logging"
	"github.com/conn-castle/publish-guard/internal/manifest"
	"github.com/conn-castle/publish-guard/internal/messages"
	"github.com/conn-castle/publish-guard/internal/registry"
	"github.com/conn-castle/publish-guard/internal/version"
)

// ErrMissingCredentials reports a CI run without a complete set of registry credentials.
var ErrMissingCredentials = errors.New(messages.PublishMissingCreds)

// State is a step of a publish run.
type State int

// Run states in the order a successful publish passes through them. StateDoneNoOp,
// StateDone and StateFailed are terminal.
const (
	// StateStart reads and validates the manifest.
	StateStart State = iota
	// StateFetchingRemote looks up the latest published version.
	StateFetchingRemote
	// StateDeciding compares versions against the triggers.
	StateDeciding
	// StateAuthenticating adds the registry user; CI runs only.
	StateAuthenticating
	// StatePublishing runs the publish.
	StatePublishing
	// StateDoneNoOp ends a run that had nothing to publish.
	StateDoneNoOp
	// StateDone ends a run that published.
	StateDone
	// StateFailed ends a run with an ErrorKind.
	StateFailed
)

var stateNames = [...]string{
	StateStart:          "START",
	StateFetchingRemote: "FETCHING_REMOTE",
	StateDeciding:       "DECIDING",
	StateAuthenticating: "AUTHENTICATING",
	StatePublishing:     "PUBLISHING",
	StateDoneNoOp:       "DONE_NO_OP",
	StateDone:           "DONE",
	StateFailed:         "FAILED",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "State(" + strconv.Itoa(int(s)) + ")"
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateDone || s == StateDoneNoOp || s == StateFailed
}

// ErrorKind classifies a failed run. The zero value means no error.
type ErrorKind int

// Error kinds, one per way a run can fail.
const (
	KindNone ErrorKind = iota
	KindManifestUnreadable
	KindMissingVersion
	KindInvalidVersion
	KindRegistryLookupError
	KindMissingCredentials
	KindAddUserError
	KindPublishError
	KindTimeout
)

var kindNames = [...]string{
	KindNone:                "None",
	KindManifestUnreadable:  "ManifestUnreadable",
	KindMissingVersion:      "MissingVersion",
	KindInvalidVersion:      "InvalidVersion",
	KindRegistryLookupError: "RegistryLookupError",
	KindMissingCredentials:  "MissingCredentials",
	KindAddUserError:        "AddUserError",
	KindPublishError:        "PublishError",
	KindTimeout:             "Timeout",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Outcome is the result of a run.
type Outcome struct {
	Published bool
	Message   string
	Kind      ErrorKind
	// State is the terminal state: StateDone, StateDoneNoOp or StateFailed.
	State State
	// FirstPublish is set when the registry has never seen the package.
	FirstPublish bool
	// Decision is nil when the run ended before a decision was made.
	Decision *gate.Decision
	DryRun   bool
	Name     string
	Local    string
	Remote   string
	Tag      string
	Err      error
}

// Failed reports whether the run ended in StateFailed.
func (o Outcome) Failed() bool {
	return o.State == StateFailed
}

// ExitCode maps the outcome to a process exit code.
func (o Outcome) ExitCode() int {
	if o.Failed() {
		return 1
	}
	return 0
}

// Orchestrator runs one publish attempt. It is single-shot and must not be run concurrently.
type Orchestrator struct {
	Registry  registry.Client
	Manifests manifest.Reader
	Resolver  credentials.Resolver
	Env       credentials.Env
	Logger    *logging.Logger

	ManifestPath string
	Options      gate.Options
	Tag          string
	// Timeout bounds each registry call. Zero disables it.
	Timeout time.Duration
	DryRun  bool
}

// run carries the state of a single Run call.
type run struct {
	o     *Orchestrator
	log   *logging.Logger
	state State
	out   Outcome
}

// Run executes the state machine and returns its terminal outcome.
func (o *Orchestrator) Run(ctx context.Context) Outcome {
	r := &run{o: o, log: o.Logger, out: Outcome{DryRun: o.DryRun, Tag: o.Tag}}
	r.enter(StateStart)

	path := o.ManifestPath
	if path == "" {
		path = manifest.DefaultPath
	}
	reader := o.Manifests
	if reader == nil {
		reader = manifest.FileReader{}
	}
	m, err := reader.Read(path)
	if err != nil {
		kind := KindManifestUnreadable
		if errors.Is(err, manifest.ErrMissingVersion) {
			kind = KindMissingVersion
		}
		return r.fail(kind, err.Error(), err)
	}
	r.out.Name = m.Name
	r.out.Local = m.Version
	r.log = r.log.With(zap.String("package", m.Name))

	local, err := version.Parse(m.Version)
	if err != nil {
		return r.fail(KindInvalidVersion, fmt.Sprintf(messages.PublishLocalInvalidFmt, m.Version, err), err)
	}

	r.enter(StateFetchingRemote)
	var rawRemote string
	err = o.call(ctx, func(ctx context.Context) error {
		var lookupErr error
		rawRemote, lookupErr = o.Registry.LookupVersion(ctx, m.Name)
		return lookupErr
	})
	if errors.Is(err, registry.ErrNotFound) {
		r.out.FirstPublish = true
		return r.noOp(messages.PublishFirstRelease, r.log.Warn)
	}
	if err != nil {
		if isTimeout(ctx, err) {
			return r.fail(KindTimeout, o.timeoutMessage(messages.PublishOpLookup, err), err)
		}
		return r.fail(KindRegistryLookupError, fmt.Sprintf(messages.PublishLookupFailedFmt, m.Name, err), err)
	}
	r.out.Remote = rawRemote
	remote, err := version.Parse(rawRemote)
	if err != nil {
		return r.fail(KindRegistryLookupError, fmt.Sprintf(messages.PublishRemoteInvalidFmt, rawRemote, m.Name, err), err)
	}

	r.enter(StateDeciding)
	r.log.Debug(fmt.Sprintf(messages.PublishVersionsComparedFmt, local, remote))
	decision := gate.Decide(o.Options, local, remote)
	r.out.Decision = &decision
	if !decision.ShouldPublish {
		logf := r.log.Info
		if decision.Reason == gate.LocalLower {
			logf = r.log.Warn
		}
		return r.noOp(decision.Message(), logf)
	}
	r.log.Info(decision.Message(), zap.Stringer("reason", decision.Reason))

	ci := o.Resolver.IsCI(o.Env)
	if o.DryRun {
		if ci {
			r.log.Info(messages.PublishDryRunAddUser)
		}
		if o.Tag != "" {
			r.log.Info(fmt.Sprintf(messages.PublishUsingTagFmt, o.Tag))
		}
		return r.noOp(fmt.Sprintf(messages.PublishDryRunFmt, m.Name, m.Version), r.log.Info)
	}

	if ci {
		r.enter(StateAuthenticating)
		if out, ok := r.authenticate(ctx); !ok {
			return out
		}
	}

	r.enter(StatePublishing)
	if o.Tag != "" {
		r.log.Info(fmt.Sprintf(messages.PublishUsingTagFmt, o.Tag))
		o.Registry.SetConfig("tag", o.Tag)
	}
	err = o.call(ctx, func(ctx context.Context) error {
		return o.Registry.Publish(ctx)
	})
	if err != nil {
		if isTimeout(ctx, err) {
			return r.fail(KindTimeout, o.timeoutMessage(messages.PublishOpPublish, err), err)
		}
		return r.fail(KindPublishError, fmt.Sprintf(messages.PublishPublishFailedFmt, err), err)
	}

	r.out.Published = true
	r.out.Message = messages.PublishPublishedOK
	r.enter(StateDone)
	r.log.Info(messages.PublishPublishedOK, zap.String("version", m.Version))
	return r.finish()
}

// authenticate resolves CI credentials and adds the registry user. Credentials stay local
// to this call and are never logged.
func (r *run) authenticate(ctx context.Context) (Outcome, bool) {
	o := r.o
	creds, ok := o.Resolver.Resolve(o.Env)
	if !ok {
		msg := fmt.Sprintf(messages.PublishMissingCredsFmt, o.Resolver.Keys.Username, o.Resolver.Keys.Password, o.Resolver.Keys.Email)
		return r.fail(KindMissingCredentials, msg, ErrMissingCredentials), false
	}
	r.log.Info(messages.PublishAuthenticating)
	err := o.call(ctx, func(ctx context.Context) error {
		return o.Registry.AddUser(ctx, creds)
	})
	if err != nil {
		if isTimeout(ctx, err) {
			return r.fail(KindTimeout, o.timeoutMessage(messages.PublishOpAddUser, err), err), false
		}
		return r.fail(KindAddUserError, fmt.Sprintf(messages.PublishAddUserFailedFmt, err), err), false
	}
	return Outcome{}, true
}

func (r *run) enter(s State) {
	r.state = s
	r.log.Debug(fmt.Sprintf(messages.PublishStateTransitionFmt, s))
}

// noOp ends the run without publishing and reports msg through logf.
func (r *run) noOp(msg string, logf func(string, ...zap.Field)) Outcome {
	r.out.Message = msg
	r.enter(StateDoneNoOp)
	logf(msg)
	return r.finish()
}

func (r *run) fail(kind ErrorKind, msg string, err error) Outcome {
	r.out.Kind = kind
	r.out.Message = msg
	r.out.Err = err
	failedIn := r.state
	r.enter(StateFailed)
	r.log.Error(msg, zap.Stringer("kind", kind), zap.Stringer("state", failedIn))
	return r.finish()
}

func (r *run) finish() Outcome {
	r.out.State = r.state
	return r.out
}

// call runs fn with the per-call timeout applied.
func (o *Orchestrator) call(ctx context.Context, fn func(context.Context) error) error {
	if o.Timeout <= 0 {
		return fn(ctx)
	}
	callCtx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()
	err := fn(callCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	return err
}

func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
}

func (o *Orchestrator) timeoutMessage(op string, err error) string {
	if o.Timeout > 0 {
		return fmt.Sprintf(messages.PublishTimeoutFmt, op, o.Timeout)
	}
	return err.Error()
}

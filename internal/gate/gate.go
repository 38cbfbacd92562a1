// Package gate decides whether a local version should be published over the registry version.
package gate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conn-castle/publish-guard/internal/messages"
	"github.com/conn-castle/publish-guard/internal/version"
)

// Options is the set of enabled on-<component> triggers. The zero value is the empty set,
// which publishes on any version increase.
type Options uint8

// NewOptions returns the set containing the given components.
func NewOptions(components ...version.Component) Options {
	var o Options
	for _, c := range components {
		o = o.With(c)
	}
	return o
}

// With returns o with c enabled.
func (o Options) With(c version.Component) Options {
	if c < version.Major || c > version.Build {
		return o
	}
	return o | 1<<uint(c)
}

// Has reports whether the trigger for c is enabled.
func (o Options) Has(c version.Component) bool {
	return o&(1<<uint(c)) != 0
}

// Empty reports whether no trigger is enabled.
func (o Options) Empty() bool {
	return o == 0
}

// Components returns the enabled triggers in priority order.
func (o Options) Components() []version.Component {
	var out []version.Component
	for _, c := range version.Components {
		if o.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String renders the set as CLI flag names, e.g. "on-minor,on-patch".
func (o Options) String() string {
	names := make([]string, 0, 4)
	for _, c := range o.Components() {
		names = append(names, TriggerName(c))
	}
	return strings.Join(names, ",")
}

// TriggerName returns the option name for c, e.g. "on-major".
func TriggerName(c version.Component) string {
	return "on-" + c.String()
}

// ParseTrigger maps "on-minor" (or "minor") to its component.
func ParseTrigger(name string) (version.Component, error) {
	key := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "on-")
	for _, c := range version.Components {
		if c.String() == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf(messages.GateUnknownTriggerFmt, name)
}

// ParseOptions parses a list of trigger names into a set.
func ParseOptions(names []string) (Options, error) {
	var o Options
	for _, name := range names {
		c, err := ParseTrigger(name)
		if err != nil {
			return 0, err
		}
		o = o.With(c)
	}
	return o, nil
}

// Reason explains a Decision.
type Reason int

const (
	// Same means the local and remote versions are equal.
	Same Reason = iota
	// LocalLower means the registry already holds a newer version.
	LocalLower
	// NoMatchingTrigger means the local version is ahead but no enabled trigger covers the change.
	NoMatchingTrigger
	// Unconditional means the local version is ahead and no triggers were configured.
	Unconditional
	// TriggerMatched means an enabled trigger's component changed.
	TriggerMatched
)

func (r Reason) String() string {
	switch r {
	case Same:
		return "SAME"
	case LocalLower:
		return "LOCAL_LOWER"
	case NoMatchingTrigger:
		return "NO_MATCHING_TRIGGER"
	case Unconditional:
		return "UNCONDITIONAL"
	case TriggerMatched:
		return "TRIGGER_MATCHED"
	default:
		return "Reason(" + strconv.Itoa(int(r)) + ")"
	}
}

// Decision is the outcome of Decide.
type Decision struct {
	ShouldPublish bool
	Reason        Reason
	// Change is the highest-order component that differs. Set whenever the local version is ahead.
	Change version.Component
	// Trigger is the enabled trigger that fired. Meaningful only when Reason is TriggerMatched.
	Trigger version.Component
}

// Message returns the human-readable explanation of the decision.
func (d Decision) Message() string {
	switch d.Reason {
	case Same:
		return messages.PublishSame
	case LocalLower:
		return messages.PublishLocalLower
	case NoMatchingTrigger:
		return messages.PublishNoTrigger
	case TriggerMatched:
		return fmt.Sprintf(messages.PublishTriggerMatchFmt, d.Trigger)
	default:
		return messages.PublishUnconditional
	}
}

// Decide reports whether local should be published given the registry's remote version.
// Publishing never happens unless local is strictly ahead of remote. With triggers enabled,
// any enabled trigger whose component differs between the two versions publishes; the
// highest-priority one is reported.
func Decide(opts Options, local version.Version, remote version.Version) Decision {
	switch version.Compare(remote, local) {
	case version.Equal:
		return Decision{Reason: Same}
	case version.RemoteGreater:
		return Decision{Reason: LocalLower}
	}

	change, _ := version.Diff(remote, local)
	if opts.Empty() {
		return Decision{ShouldPublish: true, Reason: Unconditional, Change: change}
	}
	for _, c := range opts.Components() {
		if remote.Component(c) != local.Component(c) {
			return Decision{ShouldPublish: true, Reason: TriggerMatched, Change: change, Trigger: c}
		}
	}
	return Decision{Reason: NoMatchingTrigger, Change: change}
}

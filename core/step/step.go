// Package step implements the hierarchical, string-labeled scopes that
// disambiguate every message exchanged between helpers (spec §3). A Step's
// full path is the message address space: no two distinct operations at
// the same helper may ever narrow to the same Step.
package step

import (
	"strings"
	"sync"

	ipaerrors "github.com/ipa-mpc/core/errors"
)

// Step is an immutable path string, built by successively narrowing from
// the root. It is cheap to copy and safe for concurrent use — each Step
// value is read-only after construction.
type Step struct {
	path string
}

// Root returns the empty root step, the starting point for every context.
func Root() Step {
	return Step{path: ""}
}

// Narrow appends child to the step's path, returning a new, distinct Step.
// The substep tag set for a given protocol is a closed enumeration (spec
// §9): callers should narrow with named constants, not ad-hoc strings, so
// that accidental reuse is caught by the reuse tracker below rather than
// silently aliasing two operations onto one address.
func (s Step) Narrow(child string) Step {
	if s.path == "" {
		return Step{path: child}
	}
	return Step{path: s.path + "/" + child}
}

// String returns the full slash-separated path.
func (s Step) String() string {
	if s.path == "" {
		return "/"
	}
	return s.path
}

// Depth reports how many components deep this step is.
func (s Step) Depth() int {
	if s.path == "" {
		return 0
	}
	return strings.Count(s.path, "/") + 1
}

// Tracker detects step reuse at a single helper (spec §3 invariant, §7
// Programming error). It is a debug-time aid, not a correctness mechanism:
// production callers are expected to narrow through a closed enumeration
// that makes reuse structurally impossible, but the tracker catches
// violations (including ones introduced by future refactors) immediately
// instead of letting them silently corrupt message routing.
type Tracker struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewTracker returns an empty step-reuse tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: map[string]struct{}{}}
}

// Claim records that child was narrowed from parent. Returns
// errors.ErrStepReuse if that exact (parent, child) narrowing already
// happened once on this tracker.
func (t *Tracker) Claim(parent Step, child string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := parent.path + ">" + child
	if _, ok := t.seen[key]; ok {
		return ipaerrors.ErrStepReuse
	}
	t.seen[key] = struct{}{}
	return nil
}

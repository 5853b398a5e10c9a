// Package context implements the step-scoped handle bundling PRSS,
// gateway, role, and total-records hint that every protocol call threads
// through (spec §4.3). It generalizes the teacher's per-Task IO handle
// (core/task.IO) from a single flat conversation to the narrowable,
// step-addressed handle the basics/randombits/sort protocols all build on.
package context

import (
	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/gateway"
	"github.com/ipa-mpc/core/prss"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/step"
)

// Context is the handle every basic protocol and sub-protocol receives
// (spec §4.3). The root implementation is semiHonestContext (this file).
// MaliciousContext/UpgradedMaliciousContext (malicious.go) wrap a Context
// for malicious-secure computations but do not implement this interface.
type Context interface {
	// Role returns the helper identity this context runs as.
	Role() role.Role
	// Field returns the field this context's arithmetic runs over.
	Field() field.Field
	// Step returns the context's current step.
	Step() step.Step
	// Gateway returns the message-routing handle for this step's channels.
	Gateway() *gateway.Gateway
	// PRSS returns the correlated-randomness generator for this context's
	// (role, seed) pair. The same Generator is reused across narrowings —
	// only the step argument to GenerateFields changes.
	PRSS() *prss.Generator
	// TotalRecords returns the total-records hint in effect for this
	// context.
	TotalRecords() gateway.TotalRecords
	// IsTotalRecordsUnspecified reports whether TotalRecords is
	// Indeterminate.
	IsTotalRecordsUnspecified() bool
	// Narrow returns a child context whose step is the receiver's step with
	// substep appended (spec §4.3). Panics if substep was already narrowed
	// from this exact step on this helper (spec §3 step-reuse invariant,
	// §7 Programming error) — narrowing is expected to go through a closed,
	// per-protocol substep enumeration that makes this structurally
	// unreachable in correct callers (spec §9).
	Narrow(substep string) Context
	// SetTotalRecords returns a child context with totals fixed at n.
	// Returns errors.ErrTotalRecordsAlreadySet if this lineage's total was
	// already specified (spec §4.3, §7).
	SetTotalRecords(n uint32) (Context, error)
}

// semiHonestContext is the plain-replicated-share Context variant (spec
// §4.3 "Variants").
type semiHonestContext struct {
	role    role.Role
	f       field.Field
	s       step.Step
	gw      *gateway.Gateway
	gen     *prss.Generator
	total   gateway.TotalRecords
	tracker *step.Tracker
}

// New constructs a root semi-honest Context: empty step, Indeterminate
// totals, as the starting point for a query (spec §4.3).
func New(r role.Role, f field.Field, gw *gateway.Gateway, gen *prss.Generator) Context {
	return &semiHonestContext{
		role:    r,
		f:       f,
		s:       step.Root(),
		gw:      gw,
		gen:     gen,
		total:   gateway.Indeterminate(),
		tracker: step.NewTracker(),
	}
}

func (c *semiHonestContext) Role() role.Role                { return c.role }
func (c *semiHonestContext) Field() field.Field              { return c.f }
func (c *semiHonestContext) Step() step.Step                 { return c.s }
func (c *semiHonestContext) Gateway() *gateway.Gateway        { return c.gw }
func (c *semiHonestContext) PRSS() *prss.Generator            { return c.gen }
func (c *semiHonestContext) TotalRecords() gateway.TotalRecords {
	return c.total
}
func (c *semiHonestContext) IsTotalRecordsUnspecified() bool {
	return !c.total.IsSpecified()
}

func (c *semiHonestContext) Narrow(substep string) Context {
	if err := c.tracker.Claim(c.s, substep); err != nil {
		panic(errors.ErrStepReuse.Error() + ": " + c.s.Narrow(substep).String())
	}
	child := *c
	child.s = c.s.Narrow(substep)
	return &child
}

func (c *semiHonestContext) SetTotalRecords(n uint32) (Context, error) {
	if c.total.IsSpecified() {
		return nil, errors.ErrTotalRecordsAlreadySet
	}
	child := *c
	child.total = gateway.Specified(n)
	return &child, nil
}

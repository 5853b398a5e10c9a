package context

import (
	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/gateway"
	"github.com/ipa-mpc/core/prss"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/step"
)

// MaliciousContext holds the replicated share of a MAC key r for the
// MAC-carrying variant (spec §4.3). r is a per-query random field element,
// itself replicated-shared, established once and never revealed until
// MaliciousValidator.Validate. MaliciousContext does not compute MAC shares
// r*x itself: callers produce each (x, r*x) pair and hand it to a
// MaliciousValidator. This core does not implement the full
// extension-field (ExtendableField) upgrade a production malicious-secure
// system would use for values outside the base field; r lives in the same
// field as the values it masks, which is sufficient to exercise and test
// the validation invariant (spec §8 invariant 8) without claiming a
// malicious-security proof (an explicit Non-goal).
type MaliciousContext struct {
	inner Context
	r     share.Replicated[field.Element]
}

// NewMalicious wraps a semi-honest root context with a freshly shared
// random MAC key r.
func NewMalicious(inner Context, r share.Replicated[field.Element]) *MaliciousContext {
	return &MaliciousContext{inner: inner, r: r}
}

// Downgrade returns the plain semi-honest Context underneath, for
// primitives that do not need MAC tracking.
func (m *MaliciousContext) Downgrade() Context { return m.inner }

// R returns the replicated share of this query's MAC key.
func (m *MaliciousContext) R() share.Replicated[field.Element] { return m.r }

// Upgrade narrows the context under a fixed "malicious-upgrade" substep and
// returns an UpgradedMaliciousContext: a distinct type that does not
// satisfy the plain Context interface, so that code paths only meant for
// malicious-validated values cannot accidentally accept a not-yet-upgraded
// context (spec §9's "impossible to call... without an explicit
// downgrade" type-state note, applied in the other direction — here it is
// impossible to treat an upgraded context as a plain one without calling
// Downgrade explicitly).
func (m *MaliciousContext) Upgrade() *UpgradedMaliciousContext {
	return &UpgradedMaliciousContext{
		MaliciousContext: &MaliciousContext{inner: m.inner.Narrow("malicious-upgrade"), r: m.r},
	}
}

// UpgradedMaliciousContext is issued by MaliciousContext.Upgrade after the
// upgrade step (spec §4.3). It holds no per-value state and does not check
// that values used with it carry a MAC. It deliberately does not implement
// the plain Context interface.
type UpgradedMaliciousContext struct {
	*MaliciousContext
}

// MaliciousValidator accumulates (value, mac) pairs shared under an
// UpgradedMaliciousContext and checks, at the end of the computation, that
// sum(MAC) = r * sum(value) (spec §4.3, §8 invariant 8). Any single-bit
// tampering with a malicious share changes this sum with probability
// 1 - 1/|F|.
type MaliciousValidator struct {
	ctx *UpgradedMaliciousContext

	accValue share.Replicated[field.Element]
	accMAC   share.Replicated[field.Element]
	started  bool
}

// NewValidator starts accumulating under ctx.
func NewValidator(ctx *UpgradedMaliciousContext) *MaliciousValidator {
	return &MaliciousValidator{ctx: ctx}
}

// Accumulate records one more (value, mac) replicated-share pair into the
// running sums.
func (v *MaliciousValidator) Accumulate(value, mac share.Replicated[field.Element]) {
	if !v.started {
		v.accValue, v.accMAC = value, mac
		v.started = true
		return
	}
	v.accValue = v.accValue.Add(value)
	v.accMAC = v.accMAC.Add(mac)
}

// Validate reveals r and the accumulated sums via the supplied reveal
// function, which must return the opened value at every helper (typically
// protocol.RevealToAll), and checks sum(MAC) = r*sum(value).
// Returns errors.ErrProtocolAbort on mismatch.
func (v *MaliciousValidator) Validate(
	revealed func(share.Replicated[field.Element]) (field.Element, error),
) error {
	r, err := revealed(v.ctx.R())
	if err != nil {
		return errors.Wrap(err, "malicious validation: reveal r")
	}
	sumValue, err := revealed(v.accValue)
	if err != nil {
		return errors.Wrap(err, "malicious validation: reveal sum(value)")
	}
	sumMAC, err := revealed(v.accMAC)
	if err != nil {
		return errors.Wrap(err, "malicious validation: reveal sum(mac)")
	}
	expected := r.Mul(sumValue)
	if !sumMAC.Equal(expected) {
		return errors.ErrProtocolAbort
	}
	return nil
}

// The accessors below forward to the wrapped Context. MaliciousContext has
// no Narrow or SetTotalRecords, so neither it nor UpgradedMaliciousContext
// satisfies Context; protocols taking a Context need Downgrade().
func (m *MaliciousContext) Role() role.Role                     { return m.inner.Role() }
func (m *MaliciousContext) Field() field.Field                  { return m.inner.Field() }
func (m *MaliciousContext) Step() step.Step                     { return m.inner.Step() }
func (m *MaliciousContext) Gateway() *gateway.Gateway            { return m.inner.Gateway() }
func (m *MaliciousContext) PRSS() *prss.Generator                { return m.inner.PRSS() }
func (m *MaliciousContext) TotalRecords() gateway.TotalRecords   { return m.inner.TotalRecords() }
func (m *MaliciousContext) IsTotalRecordsUnspecified() bool      { return m.inner.IsTotalRecordsUnspecified() }

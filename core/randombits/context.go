package randombits

import (
	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/step"
)

// atStep returns a Context identical to ctx except that Step() reports s.
// Basic protocols (SecureMul, RevealToAll, ...) address their own messages
// by further narrowing whatever Step() returns, so wrapping lets solved_bits
// hand each sub-computation a distinct address built with plain step.Step
// narrowing instead of the tracked Context.Narrow — which may only be
// claimed once per (parent, substep) for the lifetime of the underlying
// Tracker, and solved_bits is invoked repeatedly (once per record id) from
// the same parent context by RandomBitsGenerator.
func atStep(ctx ctxpkg.Context, s step.Step) ctxpkg.Context {
	return stepContext{Context: ctx, step: s}
}

type stepContext struct {
	ctxpkg.Context
	step step.Step
}

func (c stepContext) Step() step.Step { return c.step }

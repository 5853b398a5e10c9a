package sort

import (
	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/step"
)

// withStep returns a Context identical to ctx except that Step() reports
// s. Used so GeneratePermutations (for roundPermutation) and subShuffle can
// address each round with plain step.Step narrowing instead of the tracked
// Context.Narrow, which may only be claimed once per (parent, substep) for
// the life of the Tracker, while ShuffleShares may be called several times
// from the same context (one call per correlated sequence).
func withStep(ctx ctxpkg.Context, s step.Step) ctxpkg.Context {
	return stepContext{Context: ctx, step: s}
}

type stepContext struct {
	ctxpkg.Context
	step step.Step
}

func (c stepContext) Step() step.Step { return c.step }

package randombits

import (
	"context"

	"go.uber.org/atomic"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/protocol"
	"github.com/ipa-mpc/core/transport"
)

// RandomBitsGenerator hands out RandomBitsShares drawn from SolvedBits,
// sequencing record ids over two CountingGenerators so that a SolvedBits
// failure — which happens in lockstep across all three helpers, since it is
// derived from a revealed public bit (spec §4.5, §5) — diverts every helper
// onto the same FallbackChannel substep in the same order (spec §4.5,
// §9 "Atomic counters vs. per-caller ids").
type RandomBitsGenerator struct {
	defaultGen  *countingGenerator
	fallbackGen *countingGenerator
	abortCount  atomic.Uint64
}

// New constructs a RandomBitsGenerator over ctx, which must have
// Indeterminate total records (spec's CountingGenerator precondition,
// mirrored from the RandomBitsGenerator::new debug assertion): the
// generator's own record-id allocation is independent of any caller-level
// batch size.
func New(ctx ctxpkg.Context) *RandomBitsGenerator {
	if !ctx.IsTotalRecordsUnspecified() {
		panic("randombits: RandomBitsGenerator requires a context with unspecified total records")
	}
	return &RandomBitsGenerator{
		defaultGen:  newCountingGenerator(ctx),
		fallbackGen: newCountingGenerator(atStep(ctx, ctx.Step().Narrow(protocol.StepFallback))),
	}
}

// Generate returns the next available RandomBitsShare, retrying on the
// fallback channel until SolvedBits succeeds (spec §4.5). Every fallback
// retry increments the abort count.
func (g *RandomBitsGenerator) Generate(goCtx context.Context) (RandomBitsShare, error) {
	v, ok, err := g.defaultGen.next(goCtx)
	if err != nil {
		return RandomBitsShare{}, errors.Wrap(err, "randombitsgenerator: default generator")
	}
	if ok {
		return v, nil
	}
	for {
		g.abortCount.Inc()
		v, ok, err := g.fallbackGen.next(goCtx)
		if err != nil {
			return RandomBitsShare{}, errors.Wrap(err, "randombitsgenerator: fallback generator")
		}
		if ok {
			return v, nil
		}
	}
}

// Aborts returns the total number of fallback attempts made so far; equal
// across helpers at quiescence (spec §4.5 Observable).
func (g *RandomBitsGenerator) Aborts() uint64 {
	return g.abortCount.Load()
}

// countingGenerator draws SolvedBits shares using a monotonic atomic
// record-id counter over a fixed context (spec §4.5 CountingGenerator).
type countingGenerator struct {
	counter atomic.Uint32
	ctx     ctxpkg.Context
}

func newCountingGenerator(ctx ctxpkg.Context) *countingGenerator {
	return &countingGenerator{ctx: ctx}
}

func (g *countingGenerator) next(goCtx context.Context) (RandomBitsShare, bool, error) {
	i := g.counter.Inc() - 1
	return SolvedBits(goCtx, g.ctx, transport.RecordID(i))
}

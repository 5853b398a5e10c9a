package sort

import (
	"context"
	"math/big"
	stdsort "sort"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/protocol"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/transport"
)

// Permutations holds, for each of the three sub-shuffle rounds (indexed by
// the round's "unaware" helper), the index permutation that round's two
// aware helpers agree on (spec §4.6: "(π_left, π_right)"). It is derived
// once via PRSS and then reused across every Resharable sequence that must
// move in lockstep — match-key shares and the sidecar records riding
// alongside them, for instance — so a permutation revealed from shuffling
// one sequence describes the others too (spec §4.6 apply_sort_permutation:
// "the revealed permutation was computed on the already-shuffled inputs").
type Permutations [3][]int

// GeneratePermutations derives the three rounds' permutations for a
// sequence of length n under ctx's current step. Only the two helpers
// aware for a given round populate that round's entry; the round's
// unaware helper's entry is nil and unused.
func GeneratePermutations(ctx ctxpkg.Context, n int) Permutations {
	var perms Permutations
	for _, unaware := range role.All() {
		s := ctx.Step().Narrow(protocol.StepPermutation).Narrow(unaware.String())
		perms[unaware] = roundPermutation(withStep(ctx, s), unaware, n)
	}
	return perms
}

// ShuffleShares runs the three-sub-shuffle oblivious permutation (spec
// §4.6) described by perms over items, addressing its wire communication
// under label so that multiple correlated sequences can be shuffled with
// the identical perms without their Reshare messages colliding on the
// same (peer, step, record_id) slot. In round r, the round's two aware
// helpers — who, being each other's ring neighbors, share a PRSS seed
// directly — feed perms[unaware]-ordered items into a Reshare addressed to
// the unaware helper. The unaware helper contributes nothing but its own
// PRSS draw (the `to_helper` branch of Reshare never reads its `input`
// argument), so it never learns which input slot landed at which output
// slot.
//
// After all three rounds, every helper has been the unaware party for
// exactly one round, so no single helper can reconstruct the full composed
// permutation — each is missing exactly one of the three links in the
// chain.
func ShuffleShares(
	goCtx context.Context,
	ctx ctxpkg.Context,
	items []Resharable,
	perms Permutations,
	label string,
) ([]Resharable, error) {
	current := items
	for _, unaware := range role.All() {
		next, err := subShuffle(goCtx, ctx, current, perms[unaware], unaware, label)
		if err != nil {
			return nil, errors.Wrap(err, "shuffleshares: sub-shuffle")
		}
		current = next
	}
	return current, nil
}

// subShuffle executes one round of ShuffleShares with unaware as the
// Reshare target that never learns the round's permutation, using the
// already-derived order for this round.
func subShuffle(
	goCtx context.Context,
	ctx ctxpkg.Context,
	items []Resharable,
	order []int,
	unaware role.Role,
	label string,
) ([]Resharable, error) {
	n := len(items)
	s := ctx.Step().Narrow(protocol.StepShuffleInput).Narrow(label).Narrow(unaware.String())
	shuffleCtx := withStep(ctx, s)

	self := ctx.Role()
	out := make([]Resharable, n)
	for j := 0; j < n; j++ {
		recordID := transport.RecordID(j)
		var source Resharable
		switch self {
		case unaware:
			// Reshare's to_helper branch never reads input; any value of
			// the right concrete type is safe to pass.
			source = items[0]
		default:
			source = items[order[j]]
		}
		reshared, err := source.Reshare(goCtx, shuffleCtx, recordID, unaware)
		if err != nil {
			return nil, errors.Wrap(err, "subshuffle: reshare")
		}
		out[j] = reshared
	}
	return out, nil
}

// roundPermutation derives the permutation known to unaware's two
// neighbors for this round, by sorting item indices on a priority key
// drawn from the PRSS value those two neighbors (and only those two) share
// directly: the left neighbor's "left" PRSS coordinate is identical to the
// right neighbor's "right" coordinate, since those two roles are each
// other's ring neighbors in a three-party ring. The helper playing
// `unaware` computes no permutation at all for this round (it has no
// matching coordinate to derive it from); its entry in the returned
// Permutations is nil and ShuffleShares' unaware branch never reads it.
func roundPermutation(ctx ctxpkg.Context, unaware role.Role, n int) []int {
	self := ctx.Role()
	if self == unaware {
		return nil
	}

	f := ctx.Field()
	priorities := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		left, right := ctx.PRSS().GenerateFields(f, ctx.Step(), transport.RecordID(i))
		var v field.Element
		switch self {
		case unaware.LeftOf():
			v = left
		case unaware.RightOf():
			v = right
		default:
			panic("sort: roundPermutation called by a helper outside the round's aware pair")
		}
		priorities[i] = v.Int()
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	stdsort.SliceStable(order, func(a, b int) bool {
		return priorities[order[a]].Cmp(priorities[order[b]]) < 0
	})
	return order
}

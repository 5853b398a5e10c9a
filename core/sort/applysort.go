package sort

import (
	"context"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/errors"
)

// ApplySortPermutation shuffles input under perms and then applies an
// already-revealed permutation to the shuffled sequence with no further
// communication (spec §4.6): revealed[i] names the shuffled-sequence index
// that becomes output position i. perms must be the identical
// Permutations used to shuffle whatever sequence revealed was computed
// from (typically a match-key column shuffled under a different label),
// so that revealed's indices — positions in that sequence's shuffled
// order — line up with input's. Correctness relies on revealed having been
// computed on the already-shuffled values, never on the original input
// order — otherwise the shuffle's obliviousness guarantee is void.
func ApplySortPermutation(
	goCtx context.Context,
	ctx ctxpkg.Context,
	input []Resharable,
	perms Permutations,
	label string,
	revealed []int,
) ([]Resharable, error) {
	if len(revealed) != len(input) {
		panic("sort: revealed permutation length must match input length")
	}

	shuffled, err := ShuffleShares(goCtx, ctx, input, perms, label)
	if err != nil {
		return nil, errors.Wrap(err, "applysortpermutation: shuffle")
	}

	out := make([]Resharable, len(shuffled))
	for i, src := range revealed {
		out[i] = shuffled[src]
	}
	return out, nil
}

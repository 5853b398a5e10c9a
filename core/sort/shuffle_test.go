package sort_test

import (
	"context"
	"math/big"
	stdsort "sort"
	"testing"

	"github.com/stretchr/testify/require"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/fixture"
	"github.com/ipa-mpc/core/gateway"
	"github.com/ipa-mpc/core/protocol"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/share"
	coresort "github.com/ipa-mpc/core/sort"
	"github.com/ipa-mpc/core/transport"
)

func newTrio(t *testing.T, f field.Field) *fixture.ThreeHelperMesh {
	m, err := fixture.NewThreeHelperMesh(f, gateway.DefaultBatchPolicy)
	require.NoError(t, err)
	return m
}

// shareSecret splits secret across the three helpers with distinct,
// deterministic masks so repeated calls in one test never collide.
var maskCounter int64

func shareSecret(f field.Field, secret int64) [3]share.Replicated[field.Element] {
	maskCounter++
	a := f.New(maskCounter * 97)
	maskCounter++
	b := f.New(maskCounter * 97)
	c := f.FromBigInt(new(big.Int).Sub(f.New(secret).Int(), new(big.Int).Add(a.Int(), b.Int())))
	return [3]share.Replicated[field.Element]{
		share.New(a, b),
		share.New(b, c),
		share.New(c, a),
	}
}

func reveal(t *testing.T, m *fixture.ThreeHelperMesh, recordID transport.RecordID, shares [3]share.Replicated[field.Element]) int64 {
	opened, err := fixture.Run3(m, func(ctx ctxpkg.Context) (field.Element, error) {
		idx := int(ctx.Role())
		return protocol.RevealToAll(context.Background(), ctx, recordID, shares[idx])
	})
	require.NoError(t, err)
	return opened[0].Int().Int64()
}

func TestGeneratePermutationsAgreesBetweenAwarePair(t *testing.T) {
	f := field.Fp31
	m := newTrio(t, f)

	const n = 6
	perms, err := fixture.Run3(m, func(ctx ctxpkg.Context) (coresort.Permutations, error) {
		return coresort.GeneratePermutations(ctx, n), nil
	})
	require.NoError(t, err)

	for _, unaware := range role.All() {
		left := perms[int(unaware.LeftOf())][unaware]
		right := perms[int(unaware.RightOf())][unaware]
		require.Equal(t, left, right, "round %v: aware pair must agree on the permutation", unaware)
		require.Len(t, left, n)

		seen := make(map[int]bool, n)
		for _, v := range left {
			require.False(t, seen[v], "permutation must not repeat an index")
			seen[v] = true
		}
	}
}

func TestShuffleSharesPreservesMultisetUnderDistinctLabels(t *testing.T) {
	f := field.Fp31
	m := newTrio(t, f)

	vals := []int64{0, 1, 2, 3, 4}
	sideVals := []int64{10, 11, 12, 13, 14}

	valShares := make([][3]share.Replicated[field.Element], len(vals))
	sideShares := make([][3]share.Replicated[field.Element], len(sideVals))
	for i := range vals {
		valShares[i] = shareSecret(f, vals[i])
		sideShares[i] = shareSecret(f, sideVals[i])
	}

	perms, err := fixture.Run3(m, func(ctx ctxpkg.Context) (coresort.Permutations, error) {
		return coresort.GeneratePermutations(ctx, len(vals)), nil
	})
	require.NoError(t, err)

	shuffledVals, err := fixture.Run3(m, func(ctx ctxpkg.Context) ([]coresort.Resharable, error) {
		idx := int(ctx.Role())
		items := make([]coresort.Resharable, len(vals))
		for i := range vals {
			items[i] = coresort.IndexedValue{Value: valShares[i][idx]}
		}
		return coresort.ShuffleShares(context.Background(), ctx, items, perms[idx], "values")
	})
	require.NoError(t, err)

	shuffledSide, err := fixture.Run3(m, func(ctx ctxpkg.Context) ([]coresort.Resharable, error) {
		idx := int(ctx.Role())
		items := make([]coresort.Resharable, len(sideVals))
		for i := range sideVals {
			items[i] = coresort.IndexedValue{Value: sideShares[i][idx]}
		}
		return coresort.ShuffleShares(context.Background(), ctx, items, perms[idx], "sidecars")
	})
	require.NoError(t, err)

	gotVals := revealAll(t, m, shuffledVals)
	gotSide := revealAll(t, m, shuffledSide)

	stdsort.Slice(gotVals, func(i, j int) bool { return gotVals[i] < gotVals[j] })
	stdsort.Slice(gotSide, func(i, j int) bool { return gotSide[i] < gotSide[j] })
	require.Equal(t, []int64{0, 1, 2, 3, 4}, gotVals)
	require.Equal(t, []int64{10, 11, 12, 13, 14}, gotSide)
}

func revealAll(t *testing.T, m *fixture.ThreeHelperMesh, shuffled [3][]coresort.Resharable) []int64 {
	n := len(shuffled[0])
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		var shares [3]share.Replicated[field.Element]
		for h := 0; h < 3; h++ {
			shares[h] = shuffled[h][i].(coresort.IndexedValue).Value
		}
		out[i] = reveal(t, m, transport.RecordID(i), shares)
	}
	return out
}

package prss_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	ipaerrors "github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/prss"
	"github.com/ipa-mpc/core/step"
	"github.com/ipa-mpc/core/transport"
)

func randomSeeds(t *testing.T) prss.Seeds {
	var s prss.Seeds
	_, err := rand.Read(s.Left[:])
	require.NoError(t, err)
	_, err = rand.Read(s.Right[:])
	require.NoError(t, err)
	return s
}

func TestGenerateFieldsIsDeterministicForSameInputs(t *testing.T) {
	gen := prss.New(randomSeeds(t))
	s := step.Root().Narrow("multiply")

	l1, r1 := gen.GenerateFields(field.Fp31, s, transport.RecordID(5))
	l2, r2 := gen.GenerateFields(field.Fp31, s, transport.RecordID(5))
	require.True(t, l1.Equal(l2))
	require.True(t, r1.Equal(r2))
}

func TestGenerateFieldsVariesWithStepOrRecordID(t *testing.T) {
	gen := prss.New(randomSeeds(t))
	base := step.Root().Narrow("multiply")
	other := step.Root().Narrow("reveal")

	l1, _ := gen.GenerateFields(field.Fp32BitPrime, base, transport.RecordID(0))
	l2, _ := gen.GenerateFields(field.Fp32BitPrime, base, transport.RecordID(1))
	l3, _ := gen.GenerateFields(field.Fp32BitPrime, other, transport.RecordID(0))

	require.False(t, l1.Equal(l2))
	require.False(t, l1.Equal(l3))
}

func TestTwoHelpersSharingASeedAgreeOnOneSide(t *testing.T) {
	shared := randomSeeds(t).Left
	a := prss.New(prss.Seeds{Left: randomSeeds(t).Left, Right: shared})
	b := prss.New(prss.Seeds{Left: shared, Right: randomSeeds(t).Left})

	s := step.Root().Narrow("multiply")
	rid := transport.RecordID(3)

	_, aRight := a.GenerateFields(field.Fp31, s, rid)
	bLeft, _ := b.GenerateFields(field.Fp31, s, rid)
	require.True(t, aRight.Equal(bLeft))
}

func TestDebugGeneratorClaimDetectsReuse(t *testing.T) {
	dbg := prss.NewDebug(randomSeeds(t))
	s := step.Root().Narrow("multiply")
	rid := transport.RecordID(0)

	require.NoError(t, dbg.Claim(s, rid))
	err := dbg.Claim(s, rid)
	require.ErrorIs(t, err, ipaerrors.ErrPRSSReuse)
}

func TestDebugGeneratorClaimAllowsDistinctRecordIDs(t *testing.T) {
	dbg := prss.NewDebug(randomSeeds(t))
	s := step.Root().Narrow("multiply")

	require.NoError(t, dbg.Claim(s, transport.RecordID(0)))
	require.NoError(t, dbg.Claim(s, transport.RecordID(1)))
}

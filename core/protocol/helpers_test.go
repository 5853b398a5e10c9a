package protocol_test

import (
	"math/big"

	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/fixture"
	"github.com/ipa-mpc/core/gateway"
	"github.com/ipa-mpc/core/share"
)

func newTrio(f field.Field) *fixture.ThreeHelperMesh {
	m, err := fixture.NewThreeHelperMesh(f, gateway.DefaultBatchPolicy)
	if err != nil {
		panic(err)
	}
	return m
}

var maskCounter int64

// shareAmong3 splits secret into three replicated-share coordinates (one
// per helper) summing to secret mod f's prime, using deterministic
// incrementing masks — good enough for unit tests, which don't need
// unpredictability, only distinct values across calls.
func shareAmong3(f field.Field, secret int64) [3]share.Replicated[field.Element] {
	maskCounter++
	s1 := f.FromBigInt(big.NewInt(maskCounter * 104729))
	maskCounter++
	s2 := f.FromBigInt(big.NewInt(maskCounter * 104729))
	s3 := f.FromBigInt(new(big.Int).Sub(f.New(secret).Int(), new(big.Int).Add(s1.Int(), s2.Int())))
	return [3]share.Replicated[field.Element]{
		share.New(s1, s2),
		share.New(s2, s3),
		share.New(s3, s1),
	}
}

package protocol

import (
	"context"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/transport"
)

// CheckZero tests whether a replicated share's secret is zero, without
// revealing it when it is nonzero (spec §4.4): multiply by a fresh random
// share drawn from PRSS and reveal the product. The false-positive rate
// ("zero" reported for a nonzero secret) is 1/|F|.
//
// RevealToAll is used so the result is a public event every helper observes
// identically — required by RandomBitsGenerator's fallback discipline (spec
// §4.5, §5: "success/failure is derived from a revealed public bit").
func CheckZero(
	goCtx context.Context,
	ctx ctxpkg.Context,
	recordID transport.RecordID,
	x share.Replicated[field.Element],
) (bool, error) {
	f := ctx.Field()
	s := ctx.Step().Narrow(StepCheckZero)
	rLeft, rRight := ctx.PRSS().GenerateFields(f, s, recordID)
	r := share.New(rLeft, rRight)

	product, err := SecureMul(goCtx, ctx, recordID, x, r)
	if err != nil {
		return false, errors.Wrap(err, "checkzero: multiply")
	}

	opened, err := RevealToAll(goCtx, ctx, recordID, product)
	if err != nil {
		return false, errors.Wrap(err, "checkzero: reveal")
	}

	return opened.Int().Sign() == 0, nil
}

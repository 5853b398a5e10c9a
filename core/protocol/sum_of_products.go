package protocol

import (
	"context"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/transport"
)

// SumOfProducts computes sum(x_i * y_i) for equal-length vectors of
// replicated shares in a single round of communication (spec §4.4),
// folding every cross term into one exchanged value per helper instead of
// running len(xs) independent SecureMul calls — saving 2*(n-1)
// multiplications' worth of bandwidth, as original_source's
// sum_of_products benchmark path exercises at attribution-window scale
// (spec §4.4.1).
func SumOfProducts(
	goCtx context.Context,
	ctx ctxpkg.Context,
	recordID transport.RecordID,
	xs, ys []share.Replicated[field.Element],
) (share.Replicated[field.Element], error) {
	if len(xs) != len(ys) {
		panic("protocol: sum of products requires equal-length vectors")
	}
	f := ctx.Field()
	s := ctx.Step().Narrow(StepSumOfProds)
	rLeft, rRight := ctx.PRSS().GenerateFields(f, s, recordID)

	d := rLeft.Sub(rRight).(field.Element)
	for i := range xs {
		x, y := xs[i], ys[i]
		d = d.Add(x.Left().Mul(y.Left())).
			Add(x.Left().Mul(y.Right())).
			Add(x.Right().Mul(y.Left())).(field.Element)
	}

	right := ctx.Gateway().Channel(ctx.Role().RightOf(), s)
	if err := right.Send(goCtx, recordID, d.Bytes()); err != nil {
		return share.Replicated[field.Element]{}, errors.Wrap(err, "sumofproducts: send")
	}

	left := ctx.Gateway().Channel(ctx.Role().LeftOf(), s)
	raw, err := left.Receive(goCtx, recordID)
	if err != nil {
		return share.Replicated[field.Element]{}, errors.Wrap(err, "sumofproducts: receive")
	}
	dPrev, err := f.FromBytes(raw)
	if err != nil {
		return share.Replicated[field.Element]{}, err
	}

	return share.New(dPrev, d), nil
}

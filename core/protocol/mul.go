package protocol

import (
	"context"

	"github.com/ipa-mpc/core/errors"
	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/transport"
)

// SecureMul computes [z] = [x]*[y] for semi-honest replicated shares in a
// single round of communication (spec §4.4). Each helper folds the three
// cross terms and a PRSS-masked correction into one value, sends it to its
// right neighbor, and receives the symmetric value from its left neighbor.
func SecureMul(
	goCtx context.Context,
	ctx ctxpkg.Context,
	recordID transport.RecordID,
	x, y share.Replicated[field.Element],
) (share.Replicated[field.Element], error) {
	f := ctx.Field()
	s := ctx.Step().Narrow(StepMultiply)
	rLeft, rRight := ctx.PRSS().GenerateFields(f, s, recordID)

	dVal := x.Left().Mul(y.Left()).
		Add(x.Left().Mul(y.Right())).
		Add(x.Right().Mul(y.Left())).
		Add(rLeft).
		Sub(rRight)
	d := dVal.(field.Element)

	right := ctx.Gateway().Channel(ctx.Role().RightOf(), s)
	if err := right.Send(goCtx, recordID, d.Bytes()); err != nil {
		return share.Replicated[field.Element]{}, errors.Wrap(err, "securemul: send")
	}

	left := ctx.Gateway().Channel(ctx.Role().LeftOf(), s)
	raw, err := left.Receive(goCtx, recordID)
	if err != nil {
		return share.Replicated[field.Element]{}, errors.Wrap(err, "securemul: receive")
	}
	dPrev, err := f.FromBytes(raw)
	if err != nil {
		return share.Replicated[field.Element]{}, err
	}

	return share.New(dPrev, d), nil
}

package protocol

import (
	"context"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/transport"
)

// Reshare produces a fresh replicated share of the same secret as input,
// independent of the original, at a communication cost of two messages
// (spec §4.4):
//
//  1. Draw (r0, r1) from PRSS.
//  2. to_helper.Left sends part1 = input.Left + input.Right - r1 to
//     to_helper.Right.
//  3. to_helper.Right sends part2 = input.Left - r0 to to_helper.Left.
//  4. to_helper.Left outputs (part1+part2, r1); to_helper.Right outputs
//     (r0, part1+part2); to_helper itself outputs (r0, r1).
func Reshare(
	goCtx context.Context,
	ctx ctxpkg.Context,
	recordID transport.RecordID,
	input share.Replicated[field.Element],
	to role.Role,
) (share.Replicated[field.Element], error) {
	f := ctx.Field()
	r0, r1 := ctx.PRSS().GenerateFields(f, ctx.Step(), recordID)
	self := ctx.Role()

	switch self {
	case to:
		return share.New(r0, r1), nil

	case to.LeftOf():
		part1 := input.Left().Add(input.Right()).Sub(r1).(field.Element)
		sendCh := ctx.Gateway().Channel(to.RightOf(), ctx.Step().Narrow(StepReshare1))
		if err := sendCh.Send(goCtx, recordID, part1.Bytes()); err != nil {
			return share.Replicated[field.Element]{}, errors.Wrap(err, "reshare: send part1")
		}

		recvCh := ctx.Gateway().Channel(to.RightOf(), ctx.Step().Narrow(StepReshare2))
		raw, err := recvCh.Receive(goCtx, recordID)
		if err != nil {
			return share.Replicated[field.Element]{}, errors.Wrap(err, "reshare: receive part2")
		}
		part2, err := f.FromBytes(raw)
		if err != nil {
			return share.Replicated[field.Element]{}, err
		}
		return share.New(part1.Add(part2).(field.Element), r1), nil

	case to.RightOf():
		recvCh := ctx.Gateway().Channel(to.LeftOf(), ctx.Step().Narrow(StepReshare1))
		raw, err := recvCh.Receive(goCtx, recordID)
		if err != nil {
			return share.Replicated[field.Element]{}, errors.Wrap(err, "reshare: receive part1")
		}
		part1, err := f.FromBytes(raw)
		if err != nil {
			return share.Replicated[field.Element]{}, err
		}

		part2 := input.Left().Sub(r0).(field.Element)
		sendCh := ctx.Gateway().Channel(to.LeftOf(), ctx.Step().Narrow(StepReshare2))
		if err := sendCh.Send(goCtx, recordID, part2.Bytes()); err != nil {
			return share.Replicated[field.Element]{}, errors.Wrap(err, "reshare: send part2")
		}

		return share.New(r0, part1.Add(part2).(field.Element)), nil

	default:
		panic("protocol: reshare called by a helper that is neither to_helper nor its neighbor")
	}
}

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

// Reveal opens a replicated share to a single designated receiver (spec
// §4.4): every helper sends its right coordinate to the receiver, which
// sums its own right coordinate with the two received values.
func Reveal(
	goCtx context.Context,
	ctx ctxpkg.Context,
	recordID transport.RecordID,
	value share.Replicated[field.Element],
	to role.Role,
) (field.Element, error) {
	self := ctx.Role()
	f := ctx.Field()
	s := ctx.Step().Narrow(StepReveal)

	if self != to {
		ch := ctx.Gateway().Channel(to, s)
		if err := ch.Send(goCtx, recordID, value.Right().Bytes()); err != nil {
			return nil, errors.Wrap(err, "reveal: send")
		}
		return nil, nil
	}

	// The receiver already holds its own left/right coordinates; it needs
	// one more contribution from each of the other two helpers to
	// reconstruct s1+s2+s3.
	left := to.LeftOf()
	right := to.RightOf()

	chLeft := ctx.Gateway().Channel(left, s)
	rawLeft, err := chLeft.Receive(goCtx, recordID)
	if err != nil {
		return nil, errors.Wrap(err, "reveal: receive from left")
	}
	fromLeft, err := f.FromBytes(rawLeft)
	if err != nil {
		return nil, err
	}

	chRight := ctx.Gateway().Channel(right, s)
	rawRight, err := chRight.Receive(goCtx, recordID)
	if err != nil {
		return nil, errors.Wrap(err, "reveal: receive from right")
	}
	fromRight, err := f.FromBytes(rawRight)
	if err != nil {
		return nil, err
	}

	secret := value.Right().Add(fromLeft).Add(fromRight).(field.Element)
	return secret, nil
}

// RevealToAll opens a replicated share to every helper (spec §4.4): each
// helper sends its right coordinate to both ring neighbors, then every
// helper reconstructs the secret locally and the three reconstructions are
// checked for agreement. Disagreement is a protocol abort
// (errors.ErrProtocolAbort), matching spec §7's reveal-agreement failure
// kind.
func RevealToAll(
	goCtx context.Context,
	ctx ctxpkg.Context,
	recordID transport.RecordID,
	value share.Replicated[field.Element],
) (field.Element, error) {
	self := ctx.Role()
	f := ctx.Field()
	s := ctx.Step().Narrow(StepReveal)

	leftPeer := self.LeftOf()
	rightPeer := self.RightOf()

	sendLeft := ctx.Gateway().Channel(leftPeer, s)
	if err := sendLeft.Send(goCtx, recordID, value.Right().Bytes()); err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: send left")
	}
	sendRight := ctx.Gateway().Channel(rightPeer, s)
	if err := sendRight.Send(goCtx, recordID, value.Right().Bytes()); err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: send right")
	}

	recvLeft, err := ctx.Gateway().Channel(leftPeer, s).Receive(goCtx, recordID)
	if err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: receive from left")
	}
	fromLeft, err := f.FromBytes(recvLeft)
	if err != nil {
		return nil, err
	}
	recvRight, err := ctx.Gateway().Channel(rightPeer, s).Receive(goCtx, recordID)
	if err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: receive from right")
	}
	fromRight, err := f.FromBytes(recvRight)
	if err != nil {
		return nil, err
	}

	secret := value.Right().Add(fromLeft).Add(fromRight).(field.Element)

	// Exchange the locally reconstructed secret with both neighbors and
	// check agreement; any mismatch aborts the protocol (spec §7).
	agreeStep := s.Narrow("agree")
	agreeLeft := ctx.Gateway().Channel(leftPeer, agreeStep)
	if err := agreeLeft.Send(goCtx, recordID, secret.Bytes()); err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: send agreement to left")
	}
	agreeRight := ctx.Gateway().Channel(rightPeer, agreeStep)
	if err := agreeRight.Send(goCtx, recordID, secret.Bytes()); err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: send agreement to right")
	}
	leftSecretRaw, err := ctx.Gateway().Channel(leftPeer, agreeStep).Receive(goCtx, recordID)
	if err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: receive agreement from left")
	}
	rightSecretRaw, err := ctx.Gateway().Channel(rightPeer, agreeStep).Receive(goCtx, recordID)
	if err != nil {
		return nil, errors.Wrap(err, "reveal-to-all: receive agreement from right")
	}
	leftSecret, err := f.FromBytes(leftSecretRaw)
	if err != nil {
		return nil, err
	}
	rightSecret, err := f.FromBytes(rightSecretRaw)
	if err != nil {
		return nil, err
	}
	var mismatches []error
	if !secret.Equal(leftSecret) {
		mismatches = append(mismatches, errors.ErrProtocolAbort)
	}
	if !secret.Equal(rightSecret) {
		mismatches = append(mismatches, errors.ErrProtocolAbort)
	}
	if len(mismatches) > 0 {
		return nil, errors.Aggregate(mismatches...)
	}

	return secret, nil
}

// Package sort implements the oblivious shuffle and sort-application
// protocols (spec §4.6): shuffling a sequence of per-record composite
// shares so no helper can trace an output position back to its input
// position, and applying an already-revealed permutation to a shuffled
// sequence locally.
package sort

import (
	"context"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/protocol"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/transport"
)

// Resharable is a per-record composite object that can reshare itself
// field-by-field under a context, producing a fresh, independent instance
// (spec §4.6). ShuffleShares and ApplySortPermutation operate over any
// Resharable sequence — match-key shares, attribution sidecar rows,
// whatever a caller composes from Replicated[field.Element] fields.
type Resharable interface {
	Reshare(goCtx context.Context, ctx ctxpkg.Context, recordID transport.RecordID, to role.Role) (Resharable, error)
}

// IndexedValue is the simplest Resharable: a single field-element share,
// used directly by ShuffleShares' and ApplySortPermutation's own tests and
// by callers that only need to permute bare values rather than composite
// records.
type IndexedValue struct {
	Value share.Replicated[field.Element]
}

// Reshare implements Resharable for a bare field-element share.
func (iv IndexedValue) Reshare(
	goCtx context.Context,
	ctx ctxpkg.Context,
	recordID transport.RecordID,
	to role.Role,
) (Resharable, error) {
	v, err := protocol.Reshare(goCtx, ctx, recordID, iv.Value, to)
	if err != nil {
		return nil, err
	}
	return IndexedValue{Value: v}, nil
}

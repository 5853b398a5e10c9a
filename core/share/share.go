// Package share implements the two-of-three additive replicated secret
// sharing scheme every protocol in this runtime operates on (spec §3,
// §4.4). It generalizes the teacher's Shamir-share arithmetic
// (core/process/value.go's ValuePrivate.Add) to the replicated scheme IPA
// actually uses: helper i holds the ordered pair (s_i, s_{i+1}), and
// addition/subtraction/scalar multiplication are local, while
// multiplication requires the SecureMul protocol in package protocol.
package share

import "github.com/ipa-mpc/core/field"

// Replicated is an ordered pair (left, right) of a SharedValue, held by one
// helper, such that s_1 + s_2 + s_3 = secret across the three helpers (or
// XOR, for bit arrays). Addition and scalar multiplication are local;
// multiplication is not representable here and requires a protocol.
type Replicated[V field.SharedValue] struct {
	left, right V
}

// New constructs a Replicated share from its two local coordinates.
func New[V field.SharedValue](left, right V) Replicated[V] {
	return Replicated[V]{left: left, right: right}
}

// Left returns the helper's left coordinate, s_i.
func (r Replicated[V]) Left() V { return r.left }

// Right returns the helper's right coordinate, s_{i+1}.
func (r Replicated[V]) Right() V { return r.right }

// Add returns the componentwise sum of two replicated shares held by the
// same helper; both operands must be shares of this helper's own view.
func (r Replicated[V]) Add(other Replicated[V]) Replicated[V] {
	return Replicated[V]{
		left:  r.left.Add(other.left).(V),
		right: r.right.Add(other.right).(V),
	}
}

// Sub returns the componentwise difference of two replicated shares.
func (r Replicated[V]) Sub(other Replicated[V]) Replicated[V] {
	return Replicated[V]{
		left:  r.left.Sub(other.left).(V),
		right: r.right.Sub(other.right).(V),
	}
}

// Neg returns the componentwise additive inverse.
func (r Replicated[V]) Neg() Replicated[V] {
	return Replicated[V]{
		left:  r.left.Neg().(V),
		right: r.right.Neg().(V),
	}
}

// ScalarMul multiplies both coordinates by a known public constant c; this
// is local because c is public (unlike ReplicatedShare x ReplicatedShare,
// which needs SecureMul).
func ScalarMul[V field.Element](r Replicated[V], c V) Replicated[V] {
	return Replicated[V]{
		left:  r.left.Mul(c).(V),
		right: r.right.Mul(c).(V),
	}
}

// Reconstruct opens a field-valued share by summing its two coordinates
// with the third party's contribution, supplied by the caller (typically
// the Reveal protocol in package protocol). It is provided here purely as
// arithmetic; Reveal owns the communication needed to obtain `third`.
func Reconstruct[V field.Element](r Replicated[V], third V) V {
	return r.left.Add(r.right).Add(third).(V)
}

// ReconstructXOR is Reconstruct's XOR-sharing analogue for BitArray
// shares.
func ReconstructXOR(r Replicated[field.BitArray], third field.BitArray) field.BitArray {
	return r.left.Add(r.right).Add(third).(field.BitArray)
}

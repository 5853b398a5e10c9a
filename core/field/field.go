// Package field implements the prime-field and bit-array algebra that
// every replicated share is built on (spec §3, §4.1). It follows the
// teacher's vss/algebra.Fp construction (mod add/sub/mul/inverse guarded by
// an InField check) but generalizes it from a single dealer-chosen prime to
// two named, reusable field values, Fp31 and Fp32BitPrime, as required by
// the QueryConfig's field_type selector (spec §6).
package field

import (
	"math/big"

	"github.com/ipa-mpc/core/errors"
)

// SharedValue is the algebraic contract every value type carried by a
// ReplicatedShare must satisfy: componentwise addition (or XOR, for bit
// arrays) and a canonical fixed-size byte encoding.
type SharedValue interface {
	// Add returns the sum (or XOR, for bit arrays) of the receiver and other.
	// other must be of the same concrete type.
	Add(other SharedValue) SharedValue
	// Sub returns the difference of the receiver and other.
	Sub(other SharedValue) SharedValue
	// Neg returns the additive inverse of the receiver.
	Neg() SharedValue
	// Bytes returns the canonical fixed-size encoding, always Size() long.
	Bytes() []byte
	// Size returns the fixed encoded length in bytes for this value's field.
	Size() int
}

// Element is a value in a specific Field: a SharedValue that additionally
// supports multiplication and, for nonzero elements, inversion.
type Element interface {
	SharedValue
	// Mul returns the field product of the receiver and other.
	Mul(other Element) Element
	// Inv returns the multiplicative inverse; panics if the receiver is zero,
	// matching the teacher's Fp.MulInv, which never fails for a true prime.
	Inv() Element
	// Equal reports whether two elements of the same field carry the same
	// residue.
	Equal(other Element) bool
	// Int returns the element's residue as a *big.Int, for tests and for
	// Reveal's secret reconstruction.
	Int() *big.Int
}

// Field is a finite field with prime modulus p (spec §3): it manufactures
// Elements from small integers, from u128 reductions, and from their
// canonical byte encoding.
type Field struct {
	prime *big.Int
	size  int
}

// NewFp returns a new prime field over the given modulus, with a canonical
// element encoding of size bytes. Panics if prime is not (probably) prime,
// mirroring the teacher's NewField panic — a non-prime modulus can never be
// constructed by a correct caller.
func NewFp(prime *big.Int, size int) Field {
	if !prime.ProbablyPrime(32) {
		panic("field: given prime is probably not prime")
	}
	return Field{prime: prime, size: size}
}

// Prime returns the field's modulus.
func (f Field) Prime() *big.Int { return new(big.Int).Set(f.prime) }

// Size returns the canonical encoded width of elements in this field.
func (f Field) Size() int { return f.size }

func (f Field) elem(v *big.Int) fpElement {
	m := new(big.Int).Mod(v, f.prime)
	return fpElement{f: f, v: m}
}

// New returns the field element corresponding to v mod p.
func (f Field) New(v int64) Element {
	return f.elem(big.NewInt(v))
}

// FromU128 reduces a 128-bit unsigned integer, split as hi:lo 64-bit words,
// modulo the field's prime, per spec §3 ("conversion from u128 modulo
// prime"). This is the reduction PRSS uses on PRF output (spec §4.1.1).
func (f Field) FromU128(hi, lo uint64) Element {
	v := new(big.Int).Lsh(new(big.Int).SetUint64(hi), 64)
	v.Or(v, new(big.Int).SetUint64(lo))
	return f.elem(v)
}

// FromBigInt reduces an arbitrary-precision integer modulo the field's
// prime. Used by the random-bit generation protocol to turn a publicly
// revealed modular square root back into a field element (spec §4.5).
func (f Field) FromBigInt(v *big.Int) Element {
	return f.elem(v)
}

// FromBytes decodes a canonical-width big-endian encoding back into a field
// element. Returns ErrMalformedFrame if b is not exactly Size() bytes.
func (f Field) FromBytes(b []byte) (Element, error) {
	if len(b) != f.size {
		return nil, errors.ErrMalformedFrame
	}
	return f.elem(new(big.Int).SetBytes(b)), nil
}

// fpElement is a value belonging to an Fp field.
type fpElement struct {
	f Field
	v *big.Int
}

func (e fpElement) Add(other SharedValue) SharedValue {
	o := other.(fpElement)
	return e.f.elem(new(big.Int).Add(e.v, o.v))
}

func (e fpElement) Sub(other SharedValue) SharedValue {
	o := other.(fpElement)
	return e.f.elem(new(big.Int).Sub(e.v, o.v))
}

func (e fpElement) Neg() SharedValue {
	return e.f.elem(new(big.Int).Neg(e.v))
}

func (e fpElement) Mul(other Element) Element {
	o := other.(fpElement)
	return e.f.elem(new(big.Int).Mul(e.v, o.v))
}

func (e fpElement) Inv() Element {
	if e.v.Sign() == 0 {
		panic("field: cannot invert zero")
	}
	return e.f.elem(new(big.Int).ModInverse(e.v, e.f.prime))
}

func (e fpElement) Size() int { return e.f.size }

func (e fpElement) Bytes() []byte {
	b := e.v.Bytes()
	if len(b) == e.f.size {
		return b
	}
	out := make([]byte, e.f.size)
	copy(out[e.f.size-len(b):], b)
	return out
}

func (e fpElement) Equal(other Element) bool {
	o, ok := other.(fpElement)
	if !ok || e.f.prime.Cmp(o.f.prime) != 0 {
		return false
	}
	return e.v.Cmp(o.v) == 0
}

func (e fpElement) Int() *big.Int { return new(big.Int).Set(e.v) }

var (
	// Fp31 is the small test field used throughout the basic-protocol test
	// vectors (spec §6, §8 E1/E2/E3/E4).
	Fp31 = NewFp(big.NewInt(31), 1)
	// Fp32BitPrime is the production-sized field: 2^32 - 5.
	Fp32BitPrime = NewFp(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 32), big.NewInt(5)), 4)
)

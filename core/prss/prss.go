// Package prss implements pseudo-random secret sharing (spec §4.1): each
// helper shares one symmetric seed with each of its two ring neighbors, and
// derives, for any (step, record_id), a correlated randomness triple of
// which it can compute exactly the two values it holds seeds for. The PRF
// is instantiated with BLAKE3 in keyed mode (github.com/zeebo/blake3),
// grounded on the same package's use in both luxfi-threshold and
// tuneinsight-lattigo in the retrieved pack.
package prss

import (
	"encoding/binary"

	"github.com/zeebo/blake3"

	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/step"
	"github.com/ipa-mpc/core/transport"
)

// SeedSize is the width of a PRSS seed: 128 bits, as established by the
// out-of-scope PrssExchangeStep handshake (spec §9 open question c).
const SeedSize = 16

// Seed is a 128-bit symmetric key shared with exactly one ring neighbor.
type Seed [SeedSize]byte

// Seeds bundles the two seeds one helper holds after the handshake: one
// shared with its left neighbor, one with its right.
type Seeds struct {
	Left, Right Seed
}

// Generator draws the correlated randomness triple for a (step, record_id)
// pair. Identical inputs must return identical outputs on the same helper
// across calls (spec §4.1 contract); distinct inputs are independent under
// the PRF assumption. Generator keeps no record of past draws: a repeated
// (step, record_id) pair returns the same values again without complaint
// (DebugGenerator adds that check). Basic protocols (SecureMul, CheckZero,
// SumOfProducts, Reshare, the random-bit generator) draw under the caller's
// step or a reserved substep of it, keyed by the caller's record id, so
// they repeat a draw only if a caller reuses a record id under one step;
// callers are responsible for that discipline, the same way they are
// responsible for step narrowing (spec §7 Programming error).
type Generator struct {
	seeds Seeds
}

// New returns a Generator seeded by the two symmetric keys established by
// the query's PRSS handshake.
func New(seeds Seeds) *Generator {
	return &Generator{seeds: seeds}
}

// GenerateFields returns (r_left, r_right) as elements of f for the given
// step and record id (spec §4.1). r_left is the value this helper shares
// with its left neighbor (who computes it as *their* r_right); r_right is
// shared with the right neighbor symmetrically.
func (g *Generator) GenerateFields(f field.Field, s step.Step, recordID transport.RecordID) (left, right field.Element) {
	hi, lo := prf(g.seeds.Left, s, recordID)
	left = f.FromU128(hi, lo)
	hi, lo = prf(g.seeds.Right, s, recordID)
	right = f.FromU128(hi, lo)
	return left, right
}

// prf evaluates BLAKE3 keyed by seed over step||record_id, and returns the
// first 16 digest bytes as a hi:lo pair suitable for Field.FromU128.
func prf(seed Seed, s step.Step, recordID transport.RecordID) (hi, lo uint64) {
	h, err := blake3.NewKeyed(expandKey(seed))
	if err != nil {
		// Only possible if the key is not exactly 32 bytes, which expandKey
		// guarantees; a violation here is a programming error in this file.
		panic("prss: invalid blake3 key size: " + err.Error())
	}
	h.Write([]byte(s.String()))
	var rid [4]byte
	binary.BigEndian.PutUint32(rid[:], uint32(recordID))
	h.Write(rid[:])

	digest := h.Sum(nil)
	hi = binary.BigEndian.Uint64(digest[0:8])
	lo = binary.BigEndian.Uint64(digest[8:16])
	return hi, lo
}

// expandKey pads a 128-bit seed to BLAKE3's required 32-byte keyed-mode
// key by duplicating it; this is a fixed, public expansion (not a secret
// derivation) purely to meet the API's key-size requirement.
func expandKey(seed Seed) []byte {
	key := make([]byte, 32)
	copy(key[:16], seed[:])
	copy(key[16:], seed[:])
	return key
}

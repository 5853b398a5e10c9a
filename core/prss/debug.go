package prss

import (
	"sync"

	"github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/step"
	"github.com/ipa-mpc/core/transport"
)

// DebugGenerator wraps a Generator with the (step, record_id) reuse check
// spec §4.1 requires be detectable in debug builds. Production contexts
// may skip this wrapper once a protocol's substep enumeration is trusted
// to make reuse structurally impossible (spec §9); tests and development
// builds should always use it.
type DebugGenerator struct {
	gen *Generator

	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDebug returns a reuse-checking Generator.
func NewDebug(seeds Seeds) *DebugGenerator {
	return &DebugGenerator{gen: New(seeds), seen: map[string]struct{}{}}
}

// Claim records a (step, record_id) draw and reports reuse. Kept separate
// from GenerateFields so callers with the concrete field.Field type can
// call it inline without generic-interface gymnastics:
//
//	left, right := gen.GenerateFields(f, s, rid)
//	if err := dbg.Claim(s, rid); err != nil { return err }
func (d *DebugGenerator) Claim(s step.Step, recordID transport.RecordID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	key := s.String() + "#" + itoa(uint32(recordID))
	if _, ok := d.seen[key]; ok {
		return errors.ErrPRSSReuse
	}
	d.seen[key] = struct{}{}
	return nil
}

// Generator exposes the underlying Generator for the actual PRF draw.
func (d *DebugGenerator) Generator() *Generator { return d.gen }

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

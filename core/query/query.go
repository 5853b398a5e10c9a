// Package query defines the plain data types that describe a query (spec
// §6): QueryId, QueryConfig, and the enums selecting a field and a query
// type. The out-of-scope QueryDriver is responsible for generating these
// and routing them to each helper; this package only models their shape
// and validates the constraints visible in the original implementation's
// IpaQueryConfig construction path (spec §6.1).
package query

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ID opaquely identifies a query; it is a UUID string, grounded on
// github.com/google/uuid, which several retrieved repos use for similar
// opaque request identifiers.
type ID string

// NewID returns a fresh, random query identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// FieldType selects which of the two standing Field instances (spec §3,
// §6) a query's arithmetic runs over.
type FieldType int

const (
	Fp31 FieldType = iota
	Fp32BitPrime
)

// Type selects the query's computation: a bare multiply smoke test, or the
// IPA attribution computation (whose business logic — windowing and
// capping — stays out of scope; only its configuration shape is modeled
// here).
type Type int

const (
	TestMultiply Type = iota
	Ipa
)

// IpaParams holds the IPA-specific configuration fields named in spec §6.
type IpaParams struct {
	PerUserCreditCap         uint32
	MaxBreakdownKey          uint32
	AttributionWindowSeconds int64
}

// Config is the per-helper query configuration (spec §6).
type Config struct {
	Field FieldType
	Type  Type
	Ipa   IpaParams
}

// Validate rejects IPA configs with constraints visible in the original
// implementation's IpaQueryConfig construction path (spec §6.1): a zero
// breakdown-key space, or a negative attribution window, can never
// correspond to a well-formed query.
func (c Config) Validate() error {
	if c.Type != Ipa {
		return nil
	}
	if c.Ipa.MaxBreakdownKey == 0 {
		return errors.New("query: max_breakdown_key must be nonzero")
	}
	if c.Ipa.AttributionWindowSeconds < 0 {
		return errors.New("query: attribution_window_seconds must be non-negative")
	}
	return nil
}

// Marshal encodes a Config in CBOR, the fixed binary form a QueryDriver
// sends alongside QueryId and Role when it hands a query to each helper
// (spec §6 "Query setup"), grounded on github.com/fxamacker/cbor/v2's use
// for similarly compact wire structs elsewhere in the retrieved pack.
func (c Config) Marshal() ([]byte, error) {
	b, err := cbor.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "query: marshal config")
	}
	return b, nil
}

// Unmarshal decodes a Config previously produced by Marshal.
func Unmarshal(b []byte) (Config, error) {
	var c Config
	if err := cbor.Unmarshal(b, &c); err != nil {
		return Config{}, errors.Wrap(err, "query: unmarshal config")
	}
	return c, nil
}

package protocol

import (
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/share"
)

// ShareKnownValue produces a replicated share of a public constant c,
// without communication (spec §4.4). Each helper deterministically derives
// its pair from its Role, with the constant landing on exactly one
// coordinate network-wide: H1 holds (c, 0), H2 holds (0, 0), H3 holds
// (0, c). Calling it with a role outside {H1,H2,H3} is a programming
// error, mirroring original_source's share_known_value dispatch on Role
// (spec §4.4.1).
func ShareKnownValue(f field.Field, self role.Role, c field.Element) share.Replicated[field.Element] {
	zero := f.New(0)
	switch self {
	case role.H1:
		return share.New(c, zero)
	case role.H2:
		return share.New(zero, zero)
	case role.H3:
		return share.New(zero, c)
	default:
		panic("protocol: ShareKnownValue called with an unknown role")
	}
}

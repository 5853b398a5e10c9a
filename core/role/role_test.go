package role_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ipa-mpc/core/role"
)

func TestLeftOfAndRightOfFormARing(t *testing.T) {
	for _, r := range role.All() {
		require.Equal(t, r, r.LeftOf().RightOf())
		require.Equal(t, r, r.RightOf().LeftOf())
		require.NotEqual(t, r, r.LeftOf())
		require.NotEqual(t, r, r.RightOf())
		require.NotEqual(t, r.LeftOf(), r.RightOf())
	}
}

func TestPeerMatchesLeftOfAndRightOf(t *testing.T) {
	r := role.H1
	require.Equal(t, r.LeftOf(), r.Peer(role.Left))
	require.Equal(t, r.RightOf(), r.Peer(role.Right))
}

func TestAllReturnsRingOrder(t *testing.T) {
	require.Equal(t, [3]role.Role{role.H1, role.H2, role.H3}, role.All())
}

func TestStringNamesKnownRoles(t *testing.T) {
	require.Equal(t, "H1", role.H1.String())
	require.Equal(t, "H2", role.H2.String())
	require.Equal(t, "H3", role.H3.String())
	require.Equal(t, "Hunknown", role.Role(7).String())
}

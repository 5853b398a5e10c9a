// Package transport defines the external collaborator interfaces the
// gateway is built on (spec §4.7): Transport (message delivery) and
// PeerDiscovery (role-to-address resolution). Only an in-memory
// implementation, suitable for the test-fixture interface (spec §6), lives
// in core; a networked transport is an out-of-scope external collaborator.
package transport

import (
	"context"

	"github.com/ipa-mpc/core/role"
)

// RecordID addresses a message within a (peer, step) channel.
type RecordID uint32

// Frame is a single fixed-size payload posted at a RecordID slot.
type Frame struct {
	RecordID RecordID
	Payload  []byte
}

// Transport is the minimal interface the gateway needs from whatever binds
// helpers to each other — in-memory channels for tests, or a networked
// RPC/socket layer out of scope for this core. Reordering across RecordIDs
// on the same (peer, step) is tolerated by the gateway (spec §4.7); a
// Transport is not required to preserve send order.
type Transport interface {
	// Send delivers a frame to peer on the named step. Blocks only as long
	// as the underlying medium requires; the gateway's own batching and
	// backpressure sit above this call.
	Send(ctx context.Context, peer role.Role, step string, frame Frame) error
	// Subscribe returns a channel of frames arriving from peer on the named
	// step. The channel is closed when the peer disconnects or ctx is done.
	Subscribe(ctx context.Context, peer role.Role, step string) (<-chan Frame, error)
}

// PeerDiscovery resolves a Role to a network address and public key. It is
// an external collaborator (spec §4.7); core only depends on its
// interface so a gateway can be constructed against any resolution scheme.
type PeerDiscovery interface {
	Resolve(r role.Role) (addr string, publicKey []byte, err error)
}

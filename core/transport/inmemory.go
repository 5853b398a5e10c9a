package transport

import (
	"context"
	"sync"

	ipaerrors "github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/logging"
	"github.com/ipa-mpc/core/role"
)

var log = logging.Component("transport")

// Mesh is the test-fixture three-helper ring (spec §6: "an in-memory
// three-transport mesh connects helpers in a ring"). It owns all three
// helpers' inboxes; each handed-out *inMemoryTransport holds only a
// non-owning reference back to the Mesh, through which it reaches its
// peers' inboxes, mirroring the design
// note in spec §9 ("the three in-memory transports reference each other to
// form a ring... a network container owns all three").
type Mesh struct {
	inboxes [3]*inbox
}

// NewMesh constructs a ring of three in-memory transports.
func NewMesh() *Mesh {
	m := &Mesh{}
	for i := range m.inboxes {
		m.inboxes[i] = newInbox()
	}
	return m
}

// Transports returns the three Transport handles, one per helper, suitable
// for injecting into a Gateway (spec §6 test-fixture interface).
func (m *Mesh) Transports() (h1, h2, h3 Transport) {
	return m.transportFor(role.H1), m.transportFor(role.H2), m.transportFor(role.H3)
}

func (m *Mesh) transportFor(self role.Role) Transport {
	return &inMemoryTransport{self: self, mesh: m}
}

type inMemoryTransport struct {
	self role.Role
	mesh *Mesh
}

func (t *inMemoryTransport) Send(ctx context.Context, peer role.Role, step string, frame Frame) error {
	dst := t.mesh.inboxes[peer]
	return dst.deliver(ctx, t.self, step, frame)
}

func (t *inMemoryTransport) Subscribe(ctx context.Context, peer role.Role, step string) (<-chan Frame, error) {
	// Messages addressed to `t.self` arrive in t.self's own inbox, posted by
	// peer; Subscribe always reads from the receiver's own inbox.
	src := t.mesh.inboxes[t.self]
	return src.subscribe(ctx, peer, step), nil
}

// channelKey identifies one directed (from, step) queue inside an inbox.
type channelKey struct {
	from role.Role
	step string
}

// inbox holds every inbound channel for one helper, keyed by (sender, step).
// Channels are created lazily on first use, per spec §4.2 ("channels are
// created on first use and indexed by step").
type inbox struct {
	mu       sync.Mutex
	channels map[channelKey]chan Frame
	seen     map[channelKey]map[RecordID]struct{}
}

func newInbox() *inbox {
	return &inbox{
		channels: map[channelKey]chan Frame{},
		seen:     map[channelKey]map[RecordID]struct{}{},
	}
}

func (ib *inbox) chanFor(key channelKey) chan Frame {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	ch, ok := ib.channels[key]
	if !ok {
		ch = make(chan Frame, 4096)
		ib.channels[key] = ch
		ib.seen[key] = map[RecordID]struct{}{}
	}
	return ch
}

func (ib *inbox) deliver(ctx context.Context, from role.Role, step string, frame Frame) error {
	key := channelKey{from: from, step: step}

	ib.mu.Lock()
	if ib.seen[key] == nil {
		ib.seen[key] = map[RecordID]struct{}{}
	}
	if _, dup := ib.seen[key][frame.RecordID]; dup {
		ib.mu.Unlock()
		log.WithField("step", step).WithField("record_id", frame.RecordID).
			Error("record id reuse detected on send")
		return ipaerrors.ErrRecordIDReuse
	}
	ib.seen[key][frame.RecordID] = struct{}{}
	ib.mu.Unlock()

	ch := ib.chanFor(key)
	select {
	case ch <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ib *inbox) subscribe(ctx context.Context, from role.Role, step string) <-chan Frame {
	key := channelKey{from: from, step: step}
	src := ib.chanFor(key)
	out := make(chan Frame)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case frame, ok := <-src:
				if !ok {
					return
				}
				select {
				case out <- frame:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

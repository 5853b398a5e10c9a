// Package gateway implements the per-helper multiplexer over a transport
// that the rest of the runtime calls to exchange messages (spec §4.2): a
// record-addressed, per-peer, per-step bidirectional byte channel, with
// backpressure on in-flight sends. Sends are not grouped into batches: each
// one is handed to the transport as soon as it is accepted. It plays the
// role the teacher's
// task.IO/buffer.Buffer pair plays for a single Task, generalized to
// multiplex thousands of concurrently outstanding (step, record_id)
// conversations across both ring neighbors.
package gateway

import (
	"context"
	"sync"

	ipaerrors "github.com/ipa-mpc/core/errors"
	"github.com/ipa-mpc/core/logging"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/step"
	"github.com/ipa-mpc/core/transport"
	"golang.org/x/sync/semaphore"
)

var log = logging.Component("gateway")

// BatchPolicy carries items_in_batch and batch_count (spec §4.2). Only
// their product is used: it caps how many sends may be in flight at once
// on one channel. Messages are not grouped into batches of ItemsInBatch.
type BatchPolicy struct {
	ItemsInBatch int
	BatchCount   int
}

// DefaultBatchPolicy matches the teacher's default IO buffer capacities
// (small, since tests exercise hundreds, not millions, of records).
var DefaultBatchPolicy = BatchPolicy{ItemsInBatch: 100, BatchCount: 10}

// Gateway multiplexes one helper's channels to its two ring neighbors over
// a Transport. Channels are created lazily, indexed by (peer, step), and
// are single-writer per direction by convention (spec §5).
type Gateway struct {
	self      role.Role
	transport transport.Transport
	policy    BatchPolicy

	mu       sync.Mutex
	channels map[channelKey]*Channel
}

type channelKey struct {
	peer role.Role
	step string
}

// New returns a Gateway for `self`, routing over t with the given batch
// policy.
func New(self role.Role, t transport.Transport, policy BatchPolicy) *Gateway {
	return &Gateway{
		self:      self,
		transport: t,
		policy:    policy,
		channels:  map[channelKey]*Channel{},
	}
}

// Channel returns the (possibly newly created) channel to peer under step.
func (g *Gateway) Channel(peer role.Role, s step.Step) *Channel {
	key := channelKey{peer: peer, step: s.String()}

	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.channels[key]
	if !ok {
		ch = newChannel(g.self, peer, s, g.transport, g.policy)
		g.channels[key] = ch
	}
	return ch
}

// Channel is a bidirectional, record-addressed byte channel to one peer
// under one step (spec §4.2). Sends apply backpressure and go to the
// transport one message at a time, without batching; receives always
// suspend until the peer's message for that record id arrives.
type Channel struct {
	self, peer role.Role
	step       step.Step
	transport  transport.Transport
	policy     BatchPolicy

	outstanding *semaphore.Weighted

	mu      sync.Mutex
	subOnce sync.Once
	inbound <-chan transport.Frame
	waiters map[transport.RecordID]chan transport.Frame
	pending map[transport.RecordID]transport.Frame
}

func newChannel(self, peer role.Role, s step.Step, t transport.Transport, policy BatchPolicy) *Channel {
	return &Channel{
		self:        self,
		peer:        peer,
		step:        s,
		transport:   t,
		policy:      policy,
		outstanding: semaphore.NewWeighted(int64(policy.ItemsInBatch * policy.BatchCount)),
		waiters:     map[transport.RecordID]chan transport.Frame{},
		pending:     map[transport.RecordID]transport.Frame{},
	}
}

// Send enqueues payload at slot recordID on the outbound (self, peer, step)
// channel. It blocks under backpressure once items_in_batch * batch_count
// messages are outstanding (spec §4.2), and returns once the message has
// been accepted into the transport's send path.
func (c *Channel) Send(ctx context.Context, recordID transport.RecordID, payload []byte) error {
	if err := c.outstanding.Acquire(ctx, 1); err != nil {
		return ipaerrors.Wrap(err, "gateway: send backpressure")
	}
	defer c.outstanding.Release(1)

	err := c.transport.Send(ctx, c.peer, c.step.String(), transport.Frame{RecordID: recordID, Payload: payload})
	if err != nil {
		log.WithField("step", c.step.String()).WithField("record_id", recordID).
			WithError(err).Error("send failed")
		return ipaerrors.Wrap(err, "gateway: send")
	}
	return nil
}

// Receive awaits the message the peer posted at slot recordID on this
// channel. Guarantees exactly the payload the peer sent at that
// (step, record_id); returns ipaerrors.ErrPeerUnreachable if the peer
// disconnects (the inbound stream closes) before it arrives.
func (c *Channel) Receive(ctx context.Context, recordID transport.RecordID) ([]byte, error) {
	c.ensureSubscribed(ctx)

	c.mu.Lock()
	if frame, ok := c.pending[recordID]; ok {
		delete(c.pending, recordID)
		c.mu.Unlock()
		return frame.Payload, nil
	}
	wait := make(chan transport.Frame, 1)
	c.waiters[recordID] = wait
	c.mu.Unlock()

	select {
	case frame, ok := <-wait:
		if !ok {
			return nil, ipaerrors.ErrPeerUnreachable
		}
		return frame.Payload, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Channel) ensureSubscribed(ctx context.Context) {
	c.subOnce.Do(func() {
		in, err := c.transport.Subscribe(ctx, c.peer, c.step.String())
		if err != nil {
			log.WithError(err).Error("subscribe failed")
			closed := make(chan transport.Frame)
			close(closed)
			c.inbound = closed
			return
		}
		c.inbound = in
		go c.pump()
	})
}

// pump re-associates every inbound frame by record id (spec §4.2: "the
// gateway re-associates messages by (step, record_id)"; no cross-record
// ordering is assumed).
func (c *Channel) pump() {
	for frame := range c.inbound {
		c.mu.Lock()
		if waiter, ok := c.waiters[frame.RecordID]; ok {
			delete(c.waiters, frame.RecordID)
			c.mu.Unlock()
			waiter <- frame
			continue
		}
		c.pending[frame.RecordID] = frame
		c.mu.Unlock()
	}
	// Inbound closed: wake any still-waiting receivers with disconnection.
	c.mu.Lock()
	for id, waiter := range c.waiters {
		delete(c.waiters, id)
		close(waiter)
	}
	c.mu.Unlock()
}

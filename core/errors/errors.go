// Package errors defines the error kinds surfaced by the protocol runtime
// (see spec §7: Transport, Protocol abort, Resource, Programming) and the
// helpers used to wrap and aggregate them. Programming errors are invariant
// violations that should never occur given a correct caller; the runtime
// panics for those in debug-sensitive spots (step reuse in Context.Narrow) exactly
// as the teacher's Stack and Buffer types panic on capacity violations, and
// returns them as errors only where a caller can plausibly recover.
package errors

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Sentinel errors for the four kinds named in spec §7.
var (
	// ErrPeerUnreachable indicates the transport could not deliver a message.
	ErrPeerUnreachable = errors.New("transport: peer unreachable")
	// ErrMalformedFrame indicates a received frame did not match the expected
	// fixed-size share encoding for the channel.
	ErrMalformedFrame = errors.New("transport: malformed frame")
	// ErrRecordIDReuse indicates two sends (or two receives) were attempted at
	// the same (peer, step, record_id) slot.
	ErrRecordIDReuse = errors.New("transport: record id reuse detected")
	// ErrProtocolAbort indicates a malicious-validator check, or a
	// reveal-to-all agreement check, failed.
	ErrProtocolAbort = errors.New("protocol: abort")
	// ErrBackpressureExceeded indicates the gateway's configured outstanding
	// batch budget was exceeded; this is fatal to the query.
	ErrBackpressureExceeded = errors.New("resource: backpressure exceeded")
	// ErrStepReuse indicates the same step was narrowed twice from the same
	// parent, which would alias two distinct operations onto one message
	// address.
	ErrStepReuse = errors.New("programming: step reused")
	// ErrTotalRecordsAlreadySet indicates SetTotalRecords was called twice on
	// the same context lineage.
	ErrTotalRecordsAlreadySet = errors.New("programming: total records already specified")
	// ErrPRSSReuse indicates the same (step, record_id) pair was used twice
	// to draw PRSS randomness on the same helper.
	ErrPRSSReuse = errors.New("programming: prss (step, record_id) reused")
)

// Wrap attaches a message to err using pkg/errors, preserving the original
// error for errors.Cause / errors.Is.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, msg)
}

// Wrapf is Wrap with formatting.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}

// Aggregate combines multiple independent failures (e.g. MAC mismatches
// discovered across several steps during malicious validation, or
// disagreeing reveal shares from different peers) into a single error.
func Aggregate(errs ...error) error {
	return multierr.Combine(errs...)
}

// QueryAborted is the single user-visible error the out-of-scope
// QueryDriver reports for any core failure (spec §7).
type QueryAborted struct {
	Reason error
}

func (e *QueryAborted) Error() string {
	return fmt.Sprintf("query aborted: %v", e.Reason)
}

func (e *QueryAborted) Unwrap() error {
	return e.Reason
}

// Abort wraps a core failure as the terminal, user-visible error.
func Abort(reason error) error {
	return &QueryAborted{Reason: reason}
}

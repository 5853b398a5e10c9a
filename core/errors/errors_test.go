package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	ipaerrors "github.com/ipa-mpc/core/errors"
)

func TestWrapPreservesCauseForErrorsIs(t *testing.T) {
	wrapped := ipaerrors.Wrap(ipaerrors.ErrStepReuse, "context: narrow")
	require.ErrorIs(t, wrapped, ipaerrors.ErrStepReuse)
}

func TestWrapOfNilIsNil(t *testing.T) {
	require.NoError(t, ipaerrors.Wrap(nil, "no-op"))
}

func TestWrapfFormatsMessage(t *testing.T) {
	wrapped := ipaerrors.Wrapf(ipaerrors.ErrRecordIDReuse, "slot %d", 7)
	require.ErrorIs(t, wrapped, ipaerrors.ErrRecordIDReuse)
	require.Contains(t, wrapped.Error(), "slot 7")
}

func TestAggregateCombinesMultipleErrors(t *testing.T) {
	a := stderrors.New("first")
	b := stderrors.New("second")
	combined := ipaerrors.Aggregate(a, b)
	require.ErrorIs(t, combined, a)
	require.ErrorIs(t, combined, b)
}

func TestAggregateOfNoErrorsIsNil(t *testing.T) {
	require.NoError(t, ipaerrors.Aggregate())
}

func TestAbortWrapsReasonAndUnwraps(t *testing.T) {
	abort := ipaerrors.Abort(ipaerrors.ErrProtocolAbort)
	require.ErrorIs(t, abort, ipaerrors.ErrProtocolAbort)
	require.Contains(t, abort.Error(), "query aborted")
}

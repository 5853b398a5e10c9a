package protocol_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/fixture"
	"github.com/ipa-mpc/core/protocol"
	"github.com/ipa-mpc/core/transport"
)

var _ = Describe("CheckZero", func() {
	It("reports true for a share of zero", func() {
		f := field.Fp31
		m := newTrio(f)

		shares := shareAmong3(f, 0)
		recordID := transport.RecordID(0)

		results, err := fixture.Run3(m, func(ctx ctxpkg.Context) (bool, error) {
			idx := int(ctx.Role())
			return protocol.CheckZero(context.Background(), ctx, recordID, shares[idx])
		})
		Expect(err).NotTo(HaveOccurred())
		for _, ok := range results {
			Expect(ok).To(BeTrue())
		}
	})

	It("reports false for a share of a nonzero value", func() {
		f := field.Fp32BitPrime
		m := newTrio(f)

		shares := shareAmong3(f, 11)
		recordID := transport.RecordID(0)

		results, err := fixture.Run3(m, func(ctx ctxpkg.Context) (bool, error) {
			idx := int(ctx.Role())
			return protocol.CheckZero(context.Background(), ctx, recordID, shares[idx])
		})
		Expect(err).NotTo(HaveOccurred())
		for _, ok := range results {
			Expect(ok).To(BeFalse())
		}
	})
})

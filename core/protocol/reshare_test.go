package protocol_test

import (
	"context"
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	ctxpkg "github.com/ipa-mpc/core/context"
	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/fixture"
	"github.com/ipa-mpc/core/protocol"
	"github.com/ipa-mpc/core/role"
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/transport"
)

var _ = Describe("Reshare", func() {
	It("produces a fresh, independent share of the same secret", func() {
		f := field.Fp31
		m := newTrio(f)

		shares := shareAmong3(f, 17)
		recordID := transport.RecordID(0)

		reshared, err := fixture.Run3(m, func(ctx ctxpkg.Context) (share.Replicated[field.Element], error) {
			idx := int(ctx.Role())
			return protocol.Reshare(context.Background(), ctx, recordID, shares[idx], role.H3)
		})
		Expect(err).NotTo(HaveOccurred())

		changed := false
		for i := range shares {
			if shares[i].Left().Int().Cmp(reshared[i].Left().Int()) != 0 ||
				shares[i].Right().Int().Cmp(reshared[i].Right().Int()) != 0 {
				changed = true
			}
		}
		Expect(changed).To(BeTrue(), "reshare must change at least one coordinate")

		opened, err := fixture.Run3(m, func(ctx ctxpkg.Context) (field.Element, error) {
			idx := int(ctx.Role())
			return protocol.RevealToAll(context.Background(), ctx, transport.RecordID(1), reshared[idx])
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(opened[0].Int()).To(Equal(big.NewInt(17)))
	})

	It("works when the unaware-of-input helper is each of the three roles", func() {
		f := field.Fp31
		m := newTrio(f)

		for ti, target := range role.All() {
			shares := shareAmong3(f, 22)
			recordID := transport.RecordID(10 + ti)

			reshared, err := fixture.Run3(m, func(ctx ctxpkg.Context) (share.Replicated[field.Element], error) {
				idx := int(ctx.Role())
				return protocol.Reshare(context.Background(), ctx, recordID, shares[idx], target)
			})
			Expect(err).NotTo(HaveOccurred())

			opened, err := fixture.Run3(m, func(ctx ctxpkg.Context) (field.Element, error) {
				idx := int(ctx.Role())
				return protocol.RevealToAll(context.Background(), ctx, transport.RecordID(20+ti), reshared[idx])
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(opened[0].Int()).To(Equal(big.NewInt(22)))
		}
	})
})

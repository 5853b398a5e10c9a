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
	"github.com/ipa-mpc/core/transport"
)

var _ = Describe("Reveal", func() {
	It("opens a share to a single designated receiver only", func() {
		f := field.Fp31
		m := newTrio(f)

		shares := shareAmong3(f, 9)
		recordID := transport.RecordID(0)

		opened, err := fixture.Run3(m, func(ctx ctxpkg.Context) (field.Element, error) {
			idx := int(ctx.Role())
			return protocol.Reveal(context.Background(), ctx, recordID, shares[idx], role.H2)
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(opened[role.H2].Int()).To(Equal(big.NewInt(9)))
		Expect(opened[role.H1]).To(BeNil())
		Expect(opened[role.H3]).To(BeNil())
	})
})

var _ = Describe("RevealToAll", func() {
	It("opens a share identically to every helper", func() {
		f := field.Fp31
		m := newTrio(f)

		shares := shareAmong3(f, 5)
		recordID := transport.RecordID(0)

		opened, err := fixture.Run3(m, func(ctx ctxpkg.Context) (field.Element, error) {
			idx := int(ctx.Role())
			return protocol.RevealToAll(context.Background(), ctx, recordID, shares[idx])
		})
		Expect(err).NotTo(HaveOccurred())
		for _, o := range opened {
			Expect(o.Int()).To(Equal(big.NewInt(5)))
		}
	})
})

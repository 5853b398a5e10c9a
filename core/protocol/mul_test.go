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
	"github.com/ipa-mpc/core/share"
	"github.com/ipa-mpc/core/transport"
)

var _ = Describe("SecureMul", func() {
	It("computes the product of two shared values over Fp31", func() {
		f := field.Fp31
		m := newTrio(f)

		cases := []struct{ x, y, want int64 }{
			{2, 3, 6},
			{5, 7, 4}, // 35 mod 31
			{0, 9, 0},
			{30, 30, 1}, // (-1)*(-1) mod 31
		}

		for i, c := range cases {
			xs := shareAmong3(f, c.x)
			ys := shareAmong3(f, c.y)
			recordID := transport.RecordID(i)

			products, err := fixture.Run3(m, func(ctx ctxpkg.Context) (share.Replicated[field.Element], error) {
				idx := int(ctx.Role())
				return protocol.SecureMul(context.Background(), ctx, recordID, xs[idx], ys[idx])
			})
			Expect(err).NotTo(HaveOccurred())

			opened, err := fixture.Run3(m, func(ctx ctxpkg.Context) (field.Element, error) {
				idx := int(ctx.Role())
				return protocol.RevealToAll(context.Background(), ctx, recordID, products[idx])
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(opened[0].Int()).To(Equal(big.NewInt(c.want)))
		}
	})
})

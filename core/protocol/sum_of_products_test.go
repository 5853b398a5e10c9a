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

var _ = Describe("SumOfProducts", func() {
	It("computes the dot product of two vectors of shared values", func() {
		f := field.Fp31
		m := newTrio(f)

		xsVals := []int64{2, 3, 4}
		ysVals := []int64{5, 6, 7}
		want := int64(2*5 + 3*6 + 4*7) // 56 -> 56 mod 31 = 25

		xs := make([][3]share.Replicated[field.Element], len(xsVals))
		ys := make([][3]share.Replicated[field.Element], len(ysVals))
		for i := range xsVals {
			xs[i] = shareAmong3(f, xsVals[i])
			ys[i] = shareAmong3(f, ysVals[i])
		}

		recordID := transport.RecordID(0)
		products, err := fixture.Run3(m, func(ctx ctxpkg.Context) (share.Replicated[field.Element], error) {
			idx := int(ctx.Role())
			xVec := make([]share.Replicated[field.Element], len(xs))
			yVec := make([]share.Replicated[field.Element], len(ys))
			for i := range xs {
				xVec[i] = xs[i][idx]
				yVec[i] = ys[i][idx]
			}
			return protocol.SumOfProducts(context.Background(), ctx, recordID, xVec, yVec)
		})
		Expect(err).NotTo(HaveOccurred())

		opened, err := fixture.Run3(m, func(ctx ctxpkg.Context) (field.Element, error) {
			idx := int(ctx.Role())
			return protocol.RevealToAll(context.Background(), ctx, recordID, products[idx])
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(opened[0].Int()).To(Equal(new(big.Int).Mod(big.NewInt(want), f.Prime())))
	})
})

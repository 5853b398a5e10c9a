package protocol_test

import (
	"math/big"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ipa-mpc/core/field"
	"github.com/ipa-mpc/core/protocol"
	"github.com/ipa-mpc/core/role"
)

var _ = Describe("ShareKnownValue", func() {
	It("splits a public constant so the coordinates sum to it with no communication", func() {
		f := field.Fp31
		c := f.New(12)

		h1 := protocol.ShareKnownValue(f, role.H1, c)
		h2 := protocol.ShareKnownValue(f, role.H2, c)
		h3 := protocol.ShareKnownValue(f, role.H3, c)

		Expect(h1.Left().Int()).To(Equal(big.NewInt(12)))
		Expect(h1.Right().Int()).To(Equal(big.NewInt(0)))
		Expect(h2.Left().Int()).To(Equal(big.NewInt(0)))
		Expect(h2.Right().Int()).To(Equal(big.NewInt(0)))
		Expect(h3.Left().Int()).To(Equal(big.NewInt(0)))
		Expect(h3.Right().Int()).To(Equal(big.NewInt(12)))

		sum := h1.Left().Add(h2.Left()).Add(h3.Left())
		Expect(sum.(field.Element).Int()).To(Equal(big.NewInt(12)))
	})

	It("panics for a role outside the three-helper ring", func() {
		f := field.Fp31
		Expect(func() {
			protocol.ShareKnownValue(f, role.Role(7), f.New(1))
		}).To(Panic())
	})
})

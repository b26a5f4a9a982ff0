package cpu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/z8000emu/z8000/cpu"
)

var _ = Describe("Condition codes", func() {
	DescribeTable("EvalCond",
		func(cc cpu.Cond, fcw uint16, want bool) {
			Expect(cpu.EvalCond(cc, fcw)).To(Equal(want))
		},
		Entry("F is never true", cpu.CondF, cpu.FlagZ|cpu.FlagC|cpu.FlagS|cpu.FlagPV, false),
		Entry("T is always true", cpu.CondT, uint16(0), true),
		Entry("Z reflects the zero flag", cpu.CondZ, cpu.FlagZ, true),
		Entry("NZ is the complement of Z", cpu.CondNZ, cpu.FlagZ, false),
		Entry("C reflects the carry flag", cpu.CondC, cpu.FlagC, true),
		Entry("NC is the complement of C", cpu.CondNC, uint16(0), true),
		Entry("GE is true when S equals PV", cpu.CondGE, uint16(0), true),
		Entry("GE is false when S differs from PV", cpu.CondGE, cpu.FlagS, false),
		Entry("LT is true when S differs from PV", cpu.CondLT, cpu.FlagS, true),
	)

	Describe("MaskReservedFCW", func() {
		It("preserves the reserved bits from the old value", func() {
			old := uint16(0x0703) // every reserved bit set
			written := uint16(0x4000)
			got := cpu.MaskReservedFCW(old, written)
			Expect(got & 0x0703).To(Equal(uint16(0x0703)))
			Expect(got &^ 0x0703).To(Equal(uint16(0x4000)))
		})

		It("never lets a write set the reserved bits even if the operand tried to", func() {
			old := uint16(0x0000)
			written := uint16(0xFFFF)
			got := cpu.MaskReservedFCW(old, written)
			Expect(got & 0x0703).To(Equal(uint16(0)))
		})
	})
})

package cpu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/z8000emu/z8000/cpu"
)

var _ = Describe("ALU flag computation", func() {
	Describe("AddFlags", func() {
		It("computes a plain word addition with no flags set", func() {
			result, c, z, s, pv, _, da := cpu.AddFlags(cpu.SizeWord, 0x1234, 0x5678, false)
			Expect(result).To(Equal(uint64(0x68AC)))
			Expect(c).To(BeFalse())
			Expect(z).To(BeFalse())
			Expect(s).To(BeFalse())
			Expect(pv).To(BeFalse())
			Expect(da).To(BeFalse())
		})

		It("sets Z and C on unsigned overflow (0xFFFF+1)", func() {
			result, c, z, s, pv, _, _ := cpu.AddFlags(cpu.SizeWord, 0xFFFF, 1, false)
			Expect(result).To(Equal(uint64(0)))
			Expect(c).To(BeTrue())
			Expect(z).To(BeTrue())
			Expect(s).To(BeFalse())
			Expect(pv).To(BeFalse())
		})

		It("sets S and PV on signed overflow (0x7FFF+1)", func() {
			result, c, z, s, pv, _, _ := cpu.AddFlags(cpu.SizeWord, 0x7FFF, 1, false)
			Expect(result).To(Equal(uint64(0x8000)))
			Expect(c).To(BeFalse())
			Expect(z).To(BeFalse())
			Expect(s).To(BeTrue())
			Expect(pv).To(BeTrue())
		})

		It("honors an incoming carry", func() {
			result, c, _, _, _, _, _ := cpu.AddFlags(cpu.SizeByte, 0xFF, 0x00, true)
			Expect(result).To(Equal(uint64(0)))
			Expect(c).To(BeTrue())
		})
	})

	Describe("SubFlags", func() {
		It("sets the borrow flag when the minuend is smaller", func() {
			_, c, _, _, _, _, _ := cpu.SubFlags(cpu.SizeWord, 0x0000, 0x0001, false)
			Expect(c).To(BeTrue())
		})

		It("always sets DA, unlike AddFlags", func() {
			_, _, _, _, _, _, da := cpu.SubFlags(cpu.SizeWord, 5, 3, false)
			Expect(da).To(BeTrue())
		})

		It("detects signed overflow on subtraction", func() {
			_, _, _, s, pv, _, _ := cpu.SubFlags(cpu.SizeWord, 0x8000, 1, false)
			Expect(s).To(BeFalse())
			Expect(pv).To(BeTrue())
		})
	})

	Describe("LogicFlags", func() {
		It("computes byte parity for PV, but clears PV for word operations", func() {
			_, _, pvByte := cpu.LogicFlags(cpu.SizeByte, 0x03) // two bits set: even parity
			Expect(pvByte).To(BeTrue())

			_, _, pvWord := cpu.LogicFlags(cpu.SizeWord, 0x0003)
			Expect(pvWord).To(BeFalse())
		})
	})

	Describe("NegFlags", func() {
		It("is the identity on a second application, except at the minimum signed value", func() {
			first, _, _, _, _, _, _ := cpu.NegFlags(cpu.SizeWord, 0x0001)
			Expect(first).To(Equal(uint64(0xFFFF)))
			second, _, _, _, _, _, _ := cpu.NegFlags(cpu.SizeWord, first)
			Expect(second).To(Equal(uint64(0x0001)))
		})

		It("leaves the minimum signed value unchanged and sets PV", func() {
			result, _, _, _, pv, _, _ := cpu.NegFlags(cpu.SizeWord, 0x8000)
			Expect(result).To(Equal(uint64(0x8000)))
			Expect(pv).To(BeTrue())
		})
	})
})

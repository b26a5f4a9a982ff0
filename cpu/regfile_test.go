package cpu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/z8000emu/z8000/cpu"
)

var _ = Describe("RegFile", func() {
	var r cpu.RegFile

	BeforeEach(func() {
		r = cpu.RegFile{}
	})

	It("aliases the high and low byte views onto the word", func() {
		r.SetWord(0, 0x1234)
		Expect(r.Byte(0, true)).To(Equal(uint8(0x12)))
		Expect(r.Byte(0, false)).To(Equal(uint8(0x34)))
	})

	It("write-through: setting a byte updates the word view", func() {
		r.SetWord(3, 0x0000)
		r.SetByte(3, true, 0xAB)
		r.SetByte(3, false, 0xCD)
		Expect(r.Word(3)).To(Equal(uint16(0xABCD)))
	})

	It("aliases a long register onto its two word halves, masking to an even index", func() {
		r.SetWord(4, 0x1111)
		r.SetWord(5, 0x2222)
		Expect(r.Long(4)).To(Equal(uint32(0x11112222)))
		Expect(r.Long(5)).To(Equal(uint32(0x11112222)), "an odd index masks down per invariant 4")
	})

	It("writes both halves of a long register", func() {
		r.SetLong(6, 0xAABBCCDD)
		Expect(r.Word(6)).To(Equal(uint16(0xAABB)))
		Expect(r.Word(7)).To(Equal(uint16(0xCCDD)))
	})

	It("aliases a quad register onto its four word components", func() {
		r.SetWord(8, 0x1111)
		r.SetWord(9, 0x2222)
		r.SetWord(10, 0x3333)
		r.SetWord(11, 0x4444)
		Expect(r.Quad(8)).To(Equal(uint64(0x1111222233334444)))
	})

	It("exposes R15/R14 as the offset/segment stack pointer pair", func() {
		r.SetSP(0x1E00)
		r.SetSegSP(0x0002)
		Expect(r.SP()).To(Equal(uint16(0x1E00)))
		Expect(r.SegSP()).To(Equal(uint16(0x0002)))
		Expect(r.Word(15)).To(Equal(uint16(0x1E00)))
	})
})

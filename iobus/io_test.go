package iobus_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/z8000emu/z8000/cpu"
	"github.com/z8000emu/z8000/iobus"
)

func TestIobus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "IOBus Suite")
}

var _ = Describe("Ports", func() {
	var p *iobus.Ports

	BeforeEach(func() {
		p = iobus.New()
	})

	It("starts the normal-space loopback register at 0x1234", func() {
		Expect(p.ReadWord(0x0000, cpu.IOModeNormal)).To(Equal(uint16(0x1234)))
	})

	It("round trips a write through the normal-space data loopback register", func() {
		p.WriteWord(0x0000, 0x9999, cpu.IOModeNormal)
		Expect(p.ReadWord(0x0000, cpu.IOModeNormal)).To(Equal(uint16(0x9999)))
	})

	It("always reads 0xAA/0xAA00 from the fixed port regardless of writes", func() {
		p.WriteByte(0x0010, 0x00, cpu.IOModeNormal)
		Expect(p.ReadWord(0x0010, cpu.IOModeNormal)).To(Equal(uint16(0xAA00)))
		Expect(p.ReadByte(0x0010, cpu.IOModeNormal)).To(Equal(uint8(0xAA)))
		Expect(p.ReadByte(0x0011, cpu.IOModeNormal)).To(Equal(uint8(0x55)))
	})

	It("returns the undefined-normal-word value for any unmapped normal port", func() {
		Expect(p.ReadWord(0x0100, cpu.IOModeNormal)).To(Equal(uint16(0xDEAD)))
		Expect(p.ReadByte(0x0100, cpu.IOModeNormal)).To(Equal(uint8(0xDE)))
	})

	It("starts the special-space loopback register at 0x5678", func() {
		Expect(p.ReadWord(0x0020, cpu.IOModeSpecial)).To(Equal(uint16(0x5678)))
	})

	It("returns the undefined-special-word value for any unmapped special port", func() {
		Expect(p.ReadWord(0x0100, cpu.IOModeSpecial)).To(Equal(uint16(0xBEEF)))
		Expect(p.ReadByte(0x0100, cpu.IOModeSpecial)).To(Equal(uint8(0xBE)))
	})

	It("keeps normal and special I/O spaces independent at the same port number", func() {
		p.WriteWord(0x0000, 0x1111, cpu.IOModeNormal)
		Expect(p.ReadWord(0x0000, cpu.IOModeSpecial)).To(Equal(uint16(0xBEEF)))
	})

	It("addresses byte lanes within a loopback register", func() {
		p.WriteWord(0x0002, 0xABCD, cpu.IOModeNormal)
		Expect(p.ReadByte(0x0002, cpu.IOModeNormal)).To(Equal(uint8(0xAB)))
		Expect(p.ReadByte(0x0003, cpu.IOModeNormal)).To(Equal(uint8(0xCD)))
	})
})

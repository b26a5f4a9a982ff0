package cpu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/z8000emu/z8000/cpu"
	"github.com/z8000emu/z8000/iobus"
	"github.com/z8000emu/z8000/membus"
)

// word0 builds a first instruction word from this opcode map's shared
// field layout (fields.go): class in bits 15..10, the size bit,
// mode in bits 8..6, the mode-register field in bits 5..2, and the
// two-bit subclass selector.
func word0(class cpu.Class, byteSize bool, mode cpu.AddrMode, regFld uint8, sub uint8) uint16 {
	w := uint16(class) << 10
	if byteSize {
		w |= 0x0200
	}
	w |= uint16(mode&0x7) << 6
	w |= uint16(regFld&0xF) << 2
	w |= uint16(sub & 0x3)
	return w
}

// regWord packs a register number into the low nibble of a mandatory
// extra instruction word (the convention every two-operand class and
// LDCTL/block instruction uses for a register it can't fit in word0).
func regWord(reg uint8) uint16 { return uint16(reg & 0xF) }

// condWord packs a condition code into the low nibble of a mandatory
// extra word, same layout as regWord.
func condWord(cc cpu.Cond) uint16 { return uint16(cc) & 0xF }

func ldImm(dst uint8, imm uint16) []uint16 {
	return []uint16{word0(cpu.ClassLD, false, cpu.AMImmediate, 0, 0), regWord(dst), imm}
}

func addReg(dst, src uint8) []uint16 {
	return []uint16{word0(cpu.ClassAdd, false, cpu.AMRegister, src, 0), regWord(dst)}
}

func haltInstr() []uint16 {
	return []uint16{word0(cpu.ClassHalt, false, cpu.AMRegister, 0, 0)}
}

// assemble writes a sequence of instruction-word groups into mem
// starting at addr, returning the address just past the last word.
func assemble(mem *membus.Region, addr uint32, groups ...[]uint16) uint32 {
	for _, g := range groups {
		for _, w := range g {
			mem.WriteWord(addr, w)
			addr += 2
		}
	}
	return addr
}

// newMachine builds a Z8002 core wired to a fresh memory region and
// I/O space, with the reset vector set to system mode and the given
// entry point, then resets it so PC/FCW come from that vector.
func newMachine(entryPC uint16) (*cpu.CPU, *membus.Region) {
	mem := membus.New(membus.DefaultSize)
	mem.WriteWord(2, 0x4000) // FCW: system mode, interrupts disabled
	mem.WriteWord(4, entryPC)

	c := cpu.NewCPU(cpu.Z8002)
	c.SetProgramMemory(mem)
	c.SetDataMemory(mem)
	c.SetStackMemory(mem)
	c.SetIO(iobus.New())
	c.Reset()
	return c, mem
}

// runUntilHalted drives Step until the core halts or the step budget
// is exhausted, returning the number of steps taken.
func runUntilHalted(c *cpu.CPU, maxSteps int) int {
	for i := 0; i < maxSteps; i++ {
		if c.IsHalted() {
			return i
		}
		_, err := c.Step()
		Expect(err).NotTo(HaveOccurred())
	}
	return maxSteps
}

var _ = Describe("End-to-end scenarios", func() {
	It("reset-and-execute: LD R1,#0x1234; LD R2,#0x5678; ADD R1,R2; HALT", func() {
		c, mem := newMachine(0x0100)
		assemble(mem, 0x0100,
			ldImm(1, 0x1234),
			ldImm(2, 0x5678),
			addReg(1, 2),
			haltInstr(),
		)

		runUntilHalted(c, 20)

		Expect(c.IsHalted()).To(BeTrue())
		Expect(c.GetReg(1)).To(Equal(uint16(0x68AC)))
		Expect(c.GetReg(2)).To(Equal(uint16(0x5678)))
		fcw := c.GetFCW()
		Expect(fcw & cpu.FlagZ).To(BeZero())
		Expect(fcw & cpu.FlagS).To(BeZero())
		Expect(fcw & cpu.FlagC).To(BeZero())
		Expect(fcw & cpu.FlagPV).To(BeZero())
	})

	It("unsigned overflow: LD R3,#0xFFFF; ADD R3,#1; HALT", func() {
		c, mem := newMachine(0x0100)
		addImm := []uint16{word0(cpu.ClassAdd, false, cpu.AMImmediate, 0, 0), regWord(3), 1}
		assemble(mem, 0x0100, ldImm(3, 0xFFFF), addImm, haltInstr())

		runUntilHalted(c, 20)

		Expect(c.GetReg(3)).To(Equal(uint16(0x0000)))
		fcw := c.GetFCW()
		Expect(fcw & cpu.FlagZ).NotTo(BeZero())
		Expect(fcw & cpu.FlagC).NotTo(BeZero())
		Expect(fcw & cpu.FlagS).To(BeZero())
		Expect(fcw & cpu.FlagPV).To(BeZero())
	})

	It("signed overflow: LD R3,#0x7FFF; ADD R3,#1; HALT", func() {
		c, mem := newMachine(0x0100)
		addImm := []uint16{word0(cpu.ClassAdd, false, cpu.AMImmediate, 0, 0), regWord(3), 1}
		assemble(mem, 0x0100, ldImm(3, 0x7FFF), addImm, haltInstr())

		runUntilHalted(c, 20)

		Expect(c.GetReg(3)).To(Equal(uint16(0x8000)))
		fcw := c.GetFCW()
		Expect(fcw & cpu.FlagS).NotTo(BeZero())
		Expect(fcw & cpu.FlagPV).NotTo(BeZero())
		Expect(fcw & cpu.FlagC).To(BeZero())
	})

	It("LDIR moves three words and leaves pointers/count updated", func() {
		c, mem := newMachine(0x0100)

		// R4 = source pointer, R5 = dest pointer, R6 = count.
		instrs := [][]uint16{
			ldImm(4, 0x2000),
			ldImm(5, 0x3000),
			ldImm(6, 3),
			{word0(cpu.ClassBlockLD, false, cpu.AMRegister, 4, 0x2 /* repeat, increment */), regWord(5), regWord(6)},
			haltInstr(),
		}
		assemble(mem, 0x0100, instrs...)

		mem.WriteWord(0x2000, 0x1111)
		mem.WriteWord(0x2002, 0x2222)
		mem.WriteWord(0x2004, 0x3333)
		mem.WriteWord(0x3000, 0)
		mem.WriteWord(0x3002, 0)
		mem.WriteWord(0x3004, 0)

		runUntilHalted(c, 200)

		Expect(mem.ReadWord(0x3000)).To(Equal(uint16(0x1111)))
		Expect(mem.ReadWord(0x3002)).To(Equal(uint16(0x2222)))
		Expect(mem.ReadWord(0x3004)).To(Equal(uint16(0x3333)))
		Expect(c.GetReg(4)).To(Equal(uint16(0x2006)))
		Expect(c.GetReg(5)).To(Equal(uint16(0x3006)))
		Expect(c.GetReg(6)).To(Equal(uint16(0)))
	})

	It("CPIR finds a mid-stream match and stops early", func() {
		c, mem := newMachine(0x0100)

		instrs := [][]uint16{
			ldImm(4, 0x2000), // source pointer
			ldImm(7, 0x3333), // needle
			ldImm(6, 5),      // count
			{word0(cpu.ClassBlockCP, false, cpu.AMRegister, 4, 0x2 /* repeat, increment */), regWord(7), regWord(6), condWord(cpu.CondZ)},
			haltInstr(),
		}
		assemble(mem, 0x0100, instrs...)

		values := []uint16{0x1111, 0x2222, 0x3333, 0x4444, 0x5555}
		for i, v := range values {
			mem.WriteWord(uint32(0x2000+i*2), v)
		}

		runUntilHalted(c, 200)

		Expect(c.GetFCW() & cpu.FlagZ).NotTo(BeZero())
		Expect(c.GetReg(6)).To(Equal(uint16(2)))
		Expect(c.GetReg(4)).To(Equal(uint16(0x2006)))
	})

	It("CALL/RET round trip restores PC and leaves SP unchanged", func() {
		c, mem := newMachine(0x0100)
		c.SetReg(15, 0x1E00) // SP

		callAddr := []uint16{word0(cpu.ClassCall, false, cpu.AMDirect, 0, 0), regWord(0), 0x0200}
		instrs := [][]uint16{
			callAddr,
			haltInstr(),
		}
		assemble(mem, 0x0100, instrs...)

		subroutine := [][]uint16{
			ldImm(6, 0x1234),
			{word0(cpu.ClassRet, false, cpu.AMRegister, uint8(cpu.CondT), 0)},
		}
		assemble(mem, 0x0200, subroutine...)

		runUntilHalted(c, 200)

		Expect(c.GetReg(6)).To(Equal(uint16(0x1234)))
		Expect(c.GetReg(15)).To(Equal(uint16(0x1E00)))
		Expect(c.GetPC()).To(Equal(uint32(0x0108))) // RET lands back on HALT at 0x0106, which then advances PC past itself
	})

	It("PUSH/POP round trip is the identity on the value and restores SP", func() {
		c, mem := newMachine(0x0100)
		c.SetReg(15, 0x1E00)
		c.SetReg(1, 0xBEEF)

		instrs := [][]uint16{
			{word0(cpu.ClassPushPop, false, cpu.AMRegister, 1, 0)}, // PUSH R1
			{word0(cpu.ClassPushPop, false, cpu.AMRegister, 2, 1)}, // POP R2
			haltInstr(),
		}
		assemble(mem, 0x0100, instrs...)

		runUntilHalted(c, 20)

		Expect(c.GetReg(2)).To(Equal(uint16(0xBEEF)))
		Expect(c.GetReg(15)).To(Equal(uint16(0x1E00)))
	})

	It("HALT causes no register mutation beyond cycle accounting while halted", func() {
		c, mem := newMachine(0x0100)
		assemble(mem, 0x0100, haltInstr())
		runUntilHalted(c, 5)

		before := c.GetReg(0)
		beforeCycles := c.GetCycles()
		cycles, err := c.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(cycles).To(BeZero())
		Expect(c.GetReg(0)).To(Equal(before))
		Expect(c.GetCycles()).To(Equal(beforeCycles))
	})
})

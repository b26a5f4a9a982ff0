// Package cpu implements the Z8000 family instruction interpreter:
// register file, ALU flag logic, addressing-mode decode, the
// exception/interrupt entry sequence and the fetch-dispatch-execute
// loop, parameterized over the Z8001 (segmented) and Z8002
// (non-segmented) variants.
package cpu

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
)

// maxOpWords bounds the per-instruction operand-word cache. No
// instruction in this opcode map consumes more than three extra words
// (for example a register word plus a long immediate, or a register
// word plus a long-format segmented direct address), so four leaves
// one spare slot.
const maxOpWords = 4

// CPU is one Z8000-family core: register file, status word, the two
// shadow stack-pointer halves, pending-exception state, the three bus
// ports and the line inputs an external harness drives.
type CPU struct {
	Regs RegFile
	PC   uint32 // full logical address: segment in the high word, offset in the low
	PPC  uint32 // PC at the start of the instruction currently retiring
	FCW  uint16

	// PSAP is the base address of the program status area (vector
	// table). NSP is the non-active stack-pointer pair, packed the
	// same way as PC; setSystemMode/swapSP exchange it with R14:R15
	// on a user-to-system transition (invariant 3).
	PSAP uint32
	NSP  uint32

	IrqReq uint16
	IrqVec uint8

	Halted bool

	// ICount is the remaining cycle budget for the current Run call,
	// set by Run and decremented by Step as instructions retire (§2).
	// It is meaningless outside of an active Run.
	ICount      int64
	TotalCycles uint64

	Variant Variant

	ProgramBus MemoryBus
	DataBus    MemoryBus
	StackBus   MemoryBus
	IO         IOBus

	nmiLine       atomic.Bool
	viLine        atomic.Bool
	nviLine       atomic.Bool
	nmiPrevSample bool

	trace      io.Writer
	traceInstr bool
	traceRegs  bool

	opWords     [maxOpWords]uint16
	opWordCount int
	firstWord   uint16
}

// NewCPU builds a CPU for the given variant, reset to its
// power-on/reset state. The caller must attach buses with
// SetProgramMemory/SetDataMemory/SetStackMemory/SetIO before calling
// Step or Run.
func NewCPU(variant Variant) *CPU {
	c := &CPU{
		Variant: variant,
		trace:   os.Stderr,
	}
	c.Reset()
	return c
}

// Reset returns the core to its post-reset state: PSAP set to zero,
// FCW set to system mode (segmented on the Z8001) with interrupts
// disabled and then, once a program bus is attached, FCW and PC
// loaded from the reset vector at address zero; halted cleared, all
// pending bits except NVI dropped. The register file itself is left
// untouched — real reset does not clear general registers.
func (c *CPU) Reset() {
	c.PSAP = 0
	c.FCW = FlagSN
	if c.Variant.Segmented {
		c.FCW |= FlagSEG
	}
	c.IrqReq &= IrqNVI
	c.Halted = false
	c.NSP = 0
	c.ICount = 0
	c.TotalCycles = 0
	c.opWordCount = 0
	if c.ProgramBus != nil {
		c.doReset()
	}
}

// SetProgramMemory attaches the bus instruction fetches read from.
func (c *CPU) SetProgramMemory(bus MemoryBus) { c.ProgramBus = bus }

// SetDataMemory attaches the bus operand reads/writes go through.
func (c *CPU) SetDataMemory(bus MemoryBus) { c.DataBus = bus }

// SetStackMemory attaches the bus PUSH/POP and trap entry use.
func (c *CPU) SetStackMemory(bus MemoryBus) { c.StackBus = bus }

// SetIO attaches the port space IN/OUT/block-IO instructions use.
func (c *CPU) SetIO(io IOBus) { c.IO = io }

// SetTrace enables or disables per-instruction disassembly tracing
// and redirects it, matching the teacher's plain fmt-to-stderr
// logging convention: no logging library is introduced for what is,
// architecturally, just an optional debug stream.
func (c *CPU) SetTrace(enabled bool, w io.Writer) {
	c.traceInstr = enabled
	if w != nil {
		c.trace = w
	}
}

// SetRegTrace enables or disables the post-instruction register dump.
func (c *CPU) SetRegTrace(enabled bool) { c.traceRegs = enabled }

// SetNMI drives the non-maskable-interrupt line level. NMI is edge
// triggered: a request is latched only on the transition to asserted.
func (c *CPU) SetNMI(asserted bool) { c.nmiLine.Store(asserted) }

// SetVI drives the vectored-interrupt line and, when asserting it,
// the vector byte sampled alongside it. VI is level triggered.
func (c *CPU) SetVI(asserted bool, vector uint8) {
	if asserted {
		c.IrqVec = vector
	}
	c.viLine.Store(asserted)
}

// SetNVI drives the non-vectored-interrupt line. Level triggered.
func (c *CPU) SetNVI(asserted bool) { c.nviLine.Store(asserted) }

// GetReg returns general register n (0..15) as a plain word.
func (c *CPU) GetReg(n uint8) uint16 { return c.Regs.Word(n) }

// SetReg sets general register n (0..15).
func (c *CPU) SetReg(n uint8, v uint16) { c.Regs.SetWord(n, v) }

// GetPC returns the full logical program counter.
func (c *CPU) GetPC() uint32 { return c.PC }

// GetFCW returns the flags and control word.
func (c *CPU) GetFCW() uint16 { return c.FCW }

// IsHalted reports whether the core is in the HALT state (§4.9).
func (c *CPU) IsHalted() bool { return c.Halted }

// GetCycles returns the running cycle-accounting total (§2, §8).
func (c *CPU) GetCycles() uint64 { return c.TotalCycles }

// Step services the highest-priority pending exception and returns
// its cost; if nothing is pending and the core is not halted, it
// instead fetches and executes exactly one instruction (or, for a
// repeat-form block instruction, one element of it). It returns the
// number of cycles the step cost: zero while halted with nothing to
// service.
func (c *CPU) Step() (uint64, error) {
	if c.ProgramBus == nil || c.DataBus == nil || c.StackBus == nil || c.IO == nil {
		return 0, fmt.Errorf("cpu: step: buses not attached")
	}

	if cycles, serviced := c.ServicePending(); serviced {
		c.TotalCycles += cycles
		c.ICount -= int64(cycles)
		return cycles, nil
	}

	if c.Halted {
		return 0, nil
	}

	c.PPC = c.PC
	c.opWordCount = 0

	w0 := c.fetchInstrWord()
	c.firstWord = w0

	entry := dispatchTable[w0]
	if err := entry.Handler(c); err != nil {
		return 0, fmt.Errorf("cpu: execute %s at %#x: %w", entry.Name, c.PPC, err)
	}

	c.TotalCycles += entry.Cycles
	c.ICount -= int64(entry.Cycles)

	if c.traceInstr {
		fmt.Fprintf(c.trace, "%08x: %04x  %-12s\n", c.PPC, w0, entry.Name)
	}
	if c.traceRegs {
		c.dumpRegs()
	}

	return entry.Cycles, nil
}

// Run steps the core until it executes maxCycles worth of work (0
// means unbounded), a Step returns an error, or the core is halted
// with no pending exception to service (a Step returning (0, nil)
// while halted), in which case Run returns nil. A later Run call can
// resume a halted core once an interrupt line has been asserted.
func (c *CPU) Run(maxCycles uint64) error {
	c.ICount = int64(maxCycles)
	bounded := maxCycles != 0
	for !bounded || c.ICount > 0 {
		cycles, err := c.Step()
		if err != nil {
			return err
		}
		if cycles == 0 && c.Halted {
			return nil
		}
	}
	return nil
}

func (c *CPU) dumpRegs() {
	fmt.Fprintf(c.trace, "  fcw=%04x pc=%08x", c.FCW, c.PC)
	for i := 0; i < 16; i++ {
		fmt.Fprintf(c.trace, " r%d=%04x", i, c.Regs.Word(uint8(i)))
	}
	fmt.Fprintln(c.trace)
}

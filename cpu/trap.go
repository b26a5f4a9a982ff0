package cpu

// Pending-exception bits, in priority order highest to lowest
// (§4.8). RESET always wins; internal traps share a priority tier
// and are checked in the listed order; NMI outranks the maskable
// interrupts; VI outranks NVI.
const (
	IrqReset uint16 = 1 << iota
	IrqEPU
	IrqTrap
	IrqSyscall
	IrqSegTrap
	IrqNMI
	IrqVI
	IrqNVI
)

// Vector-table byte offsets from the PSAP base (§4.8).
const (
	VecReset   uint32 = 0x00
	VecEPU     uint32 = 0x08
	VecTrap    uint32 = 0x0C
	VecSyscall uint32 = 0x10
	VecSegTrap uint32 = 0x14
	VecNMI     uint32 = 0x18
	VecNVI     uint32 = 0x1C
	VecVIBase  uint32 = 0x20
)

// vectorAddr resolves a vector-table offset to the FCW word and PC
// word(s) addresses for the current variant's entry layout: 4
// bytes/entry (FCW at V, PC at V+2) on the Z8002, 8 bytes/entry (FCW
// at V+2, segmented PC at V+4, first two bytes reserved) on the
// Z8001.
func (c *CPU) vectorAddr(off uint32) (fcwAddr, pcAddr uint32) {
	base := c.PSAP
	if c.Variant.Segmented {
		return AddOffset(base, int32(off+2)), AddOffset(base, int32(off+4))
	}
	return AddOffset(base, int32(off)), AddOffset(base, int32(off+2))
}

func (c *CPU) loadPCFrom(pcAddr uint32) {
	if c.Variant.Segmented {
		hi := readWordAt(c.ProgramBus, pcAddr)
		lo := readWordAt(c.ProgramBus, AddOffset(pcAddr, 2))
		seg, off := decodeSegPC(hi, lo)
		c.PC = PackAddr(seg, off)
	} else {
		c.PC = uint32(readWordAt(c.ProgramBus, pcAddr))
	}
}

func (c *CPU) loadVector(off uint32) {
	fcwAddr, pcAddr := c.vectorAddr(off)
	c.FCW = readWordAt(c.ProgramBus, fcwAddr)
	c.loadPCFrom(pcAddr)
}

// loadVIVector loads the FCW shared by every vectored interrupt (at
// VI-base) and the PC entry selected by the sampled interrupt-vector
// byte, from the 256-entry PC table that follows it (§4.8: "The VI
// table extends beyond VI-base with 256 PC entries indexed by the
// interrupt-vector byte; FCW for VI is shared at VI-base").
func (c *CPU) loadVIVector(vec uint8) {
	fcwAddr, pcBase := c.vectorAddr(VecVIBase)
	c.FCW = readWordAt(c.ProgramBus, fcwAddr)
	entrySize := uint32(2)
	if c.Variant.Segmented {
		entrySize = 4
	}
	c.loadPCFrom(AddOffset(pcBase, int32(uint32(vec)*entrySize)))
}

// enterVector runs the entry sequence common to every trap and
// interrupt source except RESET (§4.8): force system mode (and
// segmented mode on the Z8001), push the current PC, push the old
// FCW, push an identifier word, then load the new FCW/PC from the
// vector table.
func (c *CPU) enterVector(off uint32, ident uint16) {
	oldFCW := c.FCW
	c.setSystemMode(true)
	c.PushPC(c.PC)
	c.PushWord(oldFCW)
	c.PushWord(ident)
	c.loadVector(off)
}

// enterVI is enterVector specialized for vectored interrupts, whose
// PC comes from the indexed VI table rather than a single fixed slot.
func (c *CPU) enterVI(vec uint8) {
	oldFCW := c.FCW
	c.setSystemMode(true)
	c.PushPC(c.PC)
	c.PushWord(oldFCW)
	c.PushWord(uint16(vec))
	c.loadVIVector(vec)
}

// setSystemMode forces S/N (and, on the Z8001, SEG) and swaps the
// active SP pair with the NSP shadow when the S/N transition actually
// changes mode (invariant 3).
func (c *CPU) setSystemMode(system bool) {
	wasUser := c.FCW&FlagSN == 0
	c.FCW |= FlagSN
	if c.Variant.Segmented {
		c.FCW |= FlagSEG
	}
	if wasUser && system {
		c.swapSP()
	}
}

// swapSP exchanges the active SP pair (R14:R15) with the NSP shadow.
func (c *CPU) swapSP() {
	spSeg, spOff := c.Regs.SegSP(), c.Regs.SP()
	nspSeg, nspOff := SegmentOf(c.NSP), OffsetOf(c.NSP)
	c.Regs.SetSegSP(nspSeg)
	c.Regs.SetSP(nspOff)
	c.NSP = PackAddr(spSeg, spOff)
}

// ServicePending picks the highest-priority pending exception, clears
// it, and runs its entry sequence, returning the cycle cost of
// servicing it and whether anything was serviced.
func (c *CPU) ServicePending() (cycles uint64, serviced bool) {
	c.sampleLines()

	switch {
	case c.IrqReq&IrqReset != 0:
		c.IrqReq &^= IrqReset
		c.doReset()
		return 8, true
	case c.IrqReq&IrqEPU != 0:
		c.IrqReq &^= IrqEPU
		c.enterVector(VecEPU, c.firstWord)
		return 13, true
	case c.IrqReq&IrqTrap != 0:
		c.IrqReq &^= IrqTrap
		c.enterVector(VecTrap, c.firstWord)
		return 13, true
	case c.IrqReq&IrqSyscall != 0:
		c.IrqReq &^= IrqSyscall
		c.enterVector(VecSyscall, c.firstWord)
		return 13, true
	case c.IrqReq&IrqSegTrap != 0:
		c.IrqReq &^= IrqSegTrap
		c.enterVector(VecSegTrap, 0)
		return 13, true
	case c.IrqReq&IrqNMI != 0:
		c.IrqReq &^= IrqNMI
		c.enterVector(VecNMI, 0)
		c.Halted = false
		return 13, true
	case c.IrqReq&IrqVI != 0 && c.FCW&FlagVIE != 0:
		c.IrqReq &^= IrqVI
		c.enterVI(c.IrqVec)
		c.Halted = false
		return 13, true
	case c.IrqReq&IrqNVI != 0 && c.FCW&FlagNVIE != 0:
		c.IrqReq &^= IrqNVI
		c.enterVector(VecNVI, 0)
		c.Halted = false
		return 13, true
	}
	return 0, false
}

// doReset loads FCW/PC directly from the reset vector and clears all
// pending bits except the lowest-priority ones (NVI), matching
// hardware reset behavior described in §4.8. Unlike every other
// vector, the reset vector's own PSAP is fixed at absolute address 0
// (PSAP itself hasn't been established until this runs) and carries
// a 2-byte reserved field before FCW on both variants, which the
// Z8002's other vector entries do not have: bytes 0-1 reserved, 2-3
// FCW, 4-5 PC (Z8002) or 4-7 segmented PC (Z8001).
func (c *CPU) doReset() {
	c.PSAP = 0
	c.FCW = readWordAt(c.ProgramBus, 2)
	c.loadPCFrom(4)
	c.IrqReq &= IrqNVI
	c.Halted = false
}

// sampleLines transfers the externally-set NMI/VI/NVI line state into
// the pending bitmask. Called at the top of every dispatch cycle
// (§5): between samples the core owns every field of its state
// exclusively.
func (c *CPU) sampleLines() {
	if c.nmiLine.Load() && !c.nmiPrevSample {
		c.IrqReq |= IrqNMI
	}
	c.nmiPrevSample = c.nmiLine.Load()

	if c.viLine.Load() {
		c.IrqReq |= IrqVI
	}
	if c.nviLine.Load() {
		c.IrqReq |= IrqNVI
	}
}

// RaiseTrap sets a software-detected trap's pending bit. Instruction
// handlers call this instead of servicing the trap themselves — the
// trap fires the next time ServicePending runs, i.e. before the next
// fetch.
func (c *CPU) RaiseTrap(bit uint16) {
	c.IrqReq |= bit
}

package cpu

// Control registers addressable by LDCTL. Only FCW, PSAP and NSP
// (each pointer as a segment word and an offset word) exist in this
// implementation; a real Z8000 also exposes the refresh register,
// which this core does not model (§ Non-goals: no bus-refresh timing).
const (
	CtrlFCW uint8 = iota
	CtrlPSAPSeg
	CtrlPSAPOff
	CtrlNSPSeg
	CtrlNSPOff
)

// opLdctl implements LDCTL, privileged like every instruction that
// touches system-only state. word0: subField bit 0 selects store
// (ctrl -> register, 1) vs load (register -> ctrl, 0); regField names
// the control register. The extra word's low nibble names the
// general register.
func (c *CPU) opLdctl() error {
	if !c.inSystemMode() {
		c.RaiseTrap(IrqTrap)
		return nil
	}

	w0 := c.firstWord
	isStore := subField(w0)&0x1 != 0
	ctrlReg := regField(w0)
	genReg := c.decodeRegOperand()

	if isStore {
		c.Regs.SetWord(genReg, c.readCtrl(ctrlReg))
		return nil
	}
	c.writeCtrl(ctrlReg, c.Regs.Word(genReg))
	return nil
}

func (c *CPU) readCtrl(ctrl uint8) uint16 {
	switch ctrl {
	case CtrlFCW:
		return c.FCW
	case CtrlPSAPSeg:
		return SegmentOf(c.PSAP)
	case CtrlPSAPOff:
		return OffsetOf(c.PSAP)
	case CtrlNSPSeg:
		return SegmentOf(c.NSP)
	case CtrlNSPOff:
		return OffsetOf(c.NSP)
	default:
		return 0
	}
}

func (c *CPU) writeCtrl(ctrl uint8, v uint16) {
	switch ctrl {
	case CtrlFCW:
		c.FCW = MaskReservedFCW(c.FCW, v)
	case CtrlPSAPSeg:
		c.PSAP = PackAddr(v, OffsetOf(c.PSAP))
	case CtrlPSAPOff:
		c.PSAP = PackAddr(SegmentOf(c.PSAP), v)
	case CtrlNSPSeg:
		c.NSP = PackAddr(v, OffsetOf(c.NSP))
	case CtrlNSPOff:
		c.NSP = PackAddr(SegmentOf(c.NSP), v)
	}
}

func (c *CPU) inSystemMode() bool { return c.FCW&FlagSN != 0 }

// opHalt implements HALT (§4.9): privileged; enters the HALT state,
// from which only RESET, NMI or an enabled vectored/non-vectored
// interrupt can bring the core back out.
func (c *CPU) opHalt() error {
	if !c.inSystemMode() {
		c.RaiseTrap(IrqTrap)
		return nil
	}
	c.Halted = true
	return nil
}

// opSC implements SC (system call): raises the syscall trap, which
// ServicePending takes on the next cycle with the SC instruction's
// own word as the identifier pushed to the system stack.
func (c *CPU) opSC() error {
	c.RaiseTrap(IrqSyscall)
	return nil
}

// opIret implements IRET: pop the identifier (discarded), the saved
// FCW (through the reserved-bit mask) and the saved PC, and reverse
// the system/user stack-pointer swap if control is returning to user
// mode (the mirror image of setSystemMode's swap on entry).
func (c *CPU) opIret() error {
	if !c.inSystemMode() {
		c.RaiseTrap(IrqTrap)
		return nil
	}
	sysFCW := c.FCW
	c.PopWord() // identifier, not otherwise used
	savedFCW := c.PopWord()
	pc := c.PopPC()

	newFCW := MaskReservedFCW(sysFCW, savedFCW)
	returningToUser := sysFCW&FlagSN != 0 && newFCW&FlagSN == 0
	c.FCW = newFCW
	c.PC = pc
	if returningToUser {
		c.swapSP()
	}
	return nil
}

func (c *CPU) opNop() error { return nil }

// opReserved handles any first word whose class code this
// implementation's opcode map leaves unmapped: the extended-
// instruction trap, matching hardware behavior for a reserved opcode.
func (c *CPU) opReserved() error {
	c.RaiseTrap(IrqEPU)
	return nil
}

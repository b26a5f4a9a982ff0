package cpu

// Block instructions execute exactly one element per Step, then
// either fall through (transfer complete or repeat form exhausted
// the count) or roll PC back to re-fetch the same instruction on the
// next Step — the resolved redesign of block-instruction
// interruptibility (SPEC_FULL.md §9): interrupts are sampled between
// every element rather than only between whole block instructions.
//
// word0: size bit selects byte (single-byte element, pointers step by
// 1) vs word (pointers step by 2) form; subField bit 0 selects
// direction (0 increment, 1 decrement), bit 1 selects repeat form (0
// single element, 1 repeat-until-done). Two extra words follow with
// pointer/counter register numbers in their low nibbles.

func ptrStep(sz Size) int32 {
	if sz == SizeByte {
		return 1
	}
	return 2
}

func (c *CPU) opBlockLD() error {
	w0 := c.firstWord
	sz := sizeBit(w0)
	decrement := subField(w0)&0x1 != 0
	repeat := subField(w0)&0x2 != 0

	srcRegField := regField(w0)
	dstRegField := c.decodeRegOperand()
	cntReg := c.decodeRegOperand()

	srcAddr := c.dataAddr(c.ptrRegAddr(srcRegField))
	dstAddr := c.dataAddr(c.ptrRegAddr(dstRegField))

	if sz == SizeByte {
		writeByteAt(c.DataBus, dstAddr, readByteAt(c.DataBus, srcAddr))
	} else {
		writeWordAt(c.DataBus, dstAddr, readWordAt(c.DataBus, srcAddr))
	}

	step := ptrStep(sz)
	delta := step
	if decrement {
		delta = -step
	}
	c.Regs.SetWord(srcRegField, uint16(int32(c.Regs.Word(srcRegField))+delta))
	c.Regs.SetWord(dstRegField, uint16(int32(c.Regs.Word(dstRegField))+delta))

	count := c.Regs.Word(cntReg) - 1
	c.Regs.SetWord(cntReg, count)
	c.FCW = setFlag(c.FCW, FlagZ, count == 0)

	if repeat && count != 0 {
		c.PC = c.PPC
	}
	return nil
}

// opBlockCP implements CPI/CPD/CPIR/CPDR: compare the element pointed
// to by the source register against a register operand, advance the
// pointer, decrement the counter, set C/Z/S/H/DA the way CP does, and
// set PV when the decremented counter is still nonzero. The
// repeat forms additionally stop early once the condition encoded in
// a third extra word (low nibble, a Cond value) is met — real
// CPIR/CPDR semantics generalized to an arbitrary terminating
// condition per §4.6.
func (c *CPU) opBlockCP() error {
	w0 := c.firstWord
	sz := sizeBit(w0)
	decrement := subField(w0)&0x1 != 0
	repeat := subField(w0)&0x2 != 0

	srcRegField := regField(w0)
	cmpReg := c.decodeRegOperand()
	cntReg := c.decodeRegOperand()
	cc := Cond(c.nextOpWord() & 0xF)

	srcAddr := c.dataAddr(c.ptrRegAddr(srcRegField))

	var val, cmp uint64
	if sz == SizeByte {
		idx, high := byteRegSplit(cmpReg)
		val = uint64(readByteAt(c.DataBus, srcAddr))
		cmp = uint64(c.Regs.Byte(idx, high))
	} else {
		val = uint64(readWordAt(c.DataBus, srcAddr))
		cmp = uint64(c.Regs.Word(cmpReg))
	}

	_, cf, zf, sf, pvf, hf, da := SubFlags(sz, cmp, val, false)
	c.setArithFlags(cf, zf, sf, pvf, hf, da)

	step := ptrStep(sz)
	delta := step
	if decrement {
		delta = -step
	}
	c.Regs.SetWord(srcRegField, uint16(int32(c.Regs.Word(srcRegField))+delta))

	count := c.Regs.Word(cntReg) - 1
	c.Regs.SetWord(cntReg, count)
	c.FCW = setFlag(c.FCW, FlagPV, count != 0)

	done := EvalCond(cc, c.FCW)
	if repeat && count != 0 && !done {
		c.PC = c.PPC
	}
	return nil
}

// opBlockIO implements INIR/INDR/OTIR/OTDR: transfer one element
// between a fixed port (held in a register) and memory pointed to by
// another register, advance the pointer, decrement the counter. All
// block I/O is privileged (invariant 2). Here subField bit 1 selects
// the transfer direction instead of the repeat form: 0 input (port ->
// memory), 1 output (memory -> port). Every block-I/O form repeats
// until the counter reaches zero.
func (c *CPU) opBlockIO() error {
	if !c.inSystemMode() {
		c.RaiseTrap(IrqTrap)
		return nil
	}

	w0 := c.firstWord
	sz := sizeBit(w0)
	decrement := subField(w0)&0x1 != 0
	isOutput := subField(w0)&0x2 != 0

	memRegField := regField(w0)
	portReg := c.decodeRegOperand()
	cntReg := c.decodeRegOperand()

	memAddr := c.dataAddr(c.ptrRegAddr(memRegField))
	port := c.Regs.Word(portReg)

	if sz == SizeByte {
		if isOutput {
			c.IO.WriteByte(port, readByteAt(c.DataBus, memAddr), IOModeNormal)
		} else {
			writeByteAt(c.DataBus, memAddr, c.IO.ReadByte(port, IOModeNormal))
		}
	} else {
		if isOutput {
			c.IO.WriteWord(port, readWordAt(c.DataBus, memAddr), IOModeNormal)
		} else {
			writeWordAt(c.DataBus, memAddr, c.IO.ReadWord(port, IOModeNormal))
		}
	}

	step := ptrStep(sz)
	delta := step
	if decrement {
		delta = -step
	}
	c.Regs.SetWord(memRegField, uint16(int32(c.Regs.Word(memRegField))+delta))

	count := c.Regs.Word(cntReg) - 1
	c.Regs.SetWord(cntReg, count)
	c.FCW = setFlag(c.FCW, FlagZ, count == 0)

	if count != 0 {
		c.PC = c.PPC
	}
	return nil
}

package cpu

// opPushPop implements PUSH/POP on any addressable operand. Stack
// operations are always word granular (invariant, §5). word0:
// subField bit 0 selects POP (1) vs PUSH (0); mode+mode-register
// field decode the other operand.
func (c *CPU) opPushPop() error {
	w0 := c.firstWord
	isPop := subField(w0)&0x1 != 0
	mode := modeField(w0)
	regFld := regField(w0)

	op := c.decodeOperand(mode, regFld)
	if isPop {
		val := c.PopWord()
		c.writeOperand(op, SizeWord, uint64(val))
	} else {
		val := c.readOperand(op, SizeWord)
		c.PushWord(uint16(val))
	}
	return nil
}

// opIO implements IN/OUT/SIN/SOUT. Privileged like every instruction
// that touches the I/O bus (invariant 2). word0: subField bit 0
// selects OUT (1) vs IN (0), bit 1 selects special I/O space
// (SIN/SOUT); size bit as usual; regField names the data register.
// The extra word is the literal port address.
func (c *CPU) opIO() error {
	if !c.inSystemMode() {
		c.RaiseTrap(IrqTrap)
		return nil
	}

	w0 := c.firstWord
	isOut := subField(w0)&0x1 != 0
	special := subField(w0)&0x2 != 0
	sz := sizeBit(w0)
	dataReg := regField(w0)
	port := c.nextOpWord()

	mode := IOModeNormal
	if special {
		mode = IOModeSpecial
	}

	if isOut {
		val := readRegOperand(c, dataReg, sz)
		if sz == SizeByte {
			c.IO.WriteByte(port, uint8(val), mode)
		} else {
			c.IO.WriteWord(port, uint16(val), mode)
		}
		return nil
	}

	if sz == SizeByte {
		v := c.IO.ReadByte(port, mode)
		writeRegOperand(c, dataReg, sz, uint64(v))
	} else {
		v := c.IO.ReadWord(port, mode)
		writeRegOperand(c, dataReg, sz, uint64(v))
	}
	return nil
}

package cpu

// opLD implements the LD family: word0 gives size, addressing mode
// and mode-register field as usual; the mandatory extra word's low
// nibble gives the register operand; subField bit 0 selects
// direction (0: register is destination, 1: register is source).
// LD does not touch flags.
func (c *CPU) opLD() error {
	w0 := c.firstWord
	sz := sizeBit(w0)
	mode := modeField(w0)
	otherRegField := regField(w0)
	memToReg := subField(w0)&0x1 == 0

	regNum := c.decodeRegOperand()

	if mode == AMImmediate {
		val := c.fetchImmediate(sz)
		writeRegOperand(c, regNum, sz, val)
		return nil
	}

	op := c.decodeOperand(mode, otherRegField)

	if memToReg {
		val := c.readOperand(op, sz)
		writeRegOperand(c, regNum, sz, val)
	} else {
		val := readRegOperand(c, regNum, sz)
		c.writeOperand(op, sz, val)
	}
	return nil
}

func readRegOperand(c *CPU, regNum uint8, sz Size) uint64 {
	if sz == SizeByte {
		idx, high := byteRegSplit(regNum)
		return uint64(c.Regs.Byte(idx, high))
	}
	if sz == SizeLong {
		return uint64(c.Regs.Long(regNum))
	}
	return uint64(c.Regs.Word(regNum))
}

func writeRegOperand(c *CPU, regNum uint8, sz Size, val uint64) {
	if sz == SizeByte {
		idx, high := byteRegSplit(regNum)
		c.Regs.SetByte(idx, high, uint8(val))
		return
	}
	if sz == SizeLong {
		c.Regs.SetLong(regNum, uint32(val))
		return
	}
	c.Regs.SetWord(regNum, uint16(val))
}

package cpu

// opIncDec implements INC/DEC on a register or memory operand.
// word0: size, mode, mode-register field, subField bit 0 selects
// INC (0) vs DEC (1). The extra word's low nibble carries count-1
// (count 1..16), matching real INC/DEC's small immediate step.
func (c *CPU) opIncDec() error {
	w0 := c.firstWord
	sz := sizeBit(w0)
	mode := modeField(w0)
	regFld := regField(w0)
	isDec := subField(w0)&0x1 != 0

	countWord := c.nextOpWord()
	count := uint64(countWord&0xF) + 1

	op := c.decodeOperand(mode, regFld)
	val := c.readOperand(op, sz)

	var result uint64
	var cf, zf, sf, pvf, hf bool
	if isDec {
		result, cf, zf, sf, pvf, hf, _ = SubFlags(sz, val, count, false)
	} else {
		result, cf, zf, sf, pvf, hf, _ = AddFlags(sz, val, count, false)
	}
	// INC/DEC leave carry unaffected (§4.5); only Z/S/PV/H update.
	_ = cf
	c.FCW = setFlag(c.FCW, FlagZ, zf)
	c.FCW = setFlag(c.FCW, FlagS, sf)
	c.FCW = setFlag(c.FCW, FlagPV, pvf)
	c.FCW = setFlag(c.FCW, FlagH, hf)

	c.writeOperand(op, sz, result)
	return nil
}

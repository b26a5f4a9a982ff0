package cpu

// opUnary implements NEG, COM and TEST on a single operand. word0:
// size, mode, mode-register field, subField selects the operation
// (0 NEG, 1 COM, 2 TEST, 3 reserved).
func (c *CPU) opUnary() error {
	w0 := c.firstWord
	sz := sizeBit(w0)
	mode := modeField(w0)
	regFld := regField(w0)
	sub := subField(w0)

	op := c.decodeOperand(mode, regFld)
	val := c.readOperand(op, sz)

	switch sub {
	case 0: // NEG
		result, cf, zf, sf, pvf, hf, da := NegFlags(sz, val)
		c.setArithFlags(cf, zf, sf, pvf, hf, da)
		c.writeOperand(op, sz, result)
	case 1: // COM
		result := applySizeMask(sz, ^val)
		zf, sf, pvf := LogicFlags(sz, result)
		c.setLogicFlags(zf, sf, pvf)
		c.writeOperand(op, sz, result)
	case 2: // TEST
		zf, sf, pvf := LogicFlags(sz, val)
		c.setLogicFlags(zf, sf, pvf)
	default:
		return c.raiseEPU()
	}
	return nil
}

// raiseEPU marks the current opcode as an extended-instruction trap
// (reserved bit pattern within a mapped class) and lets the servicing
// loop take it on the next cycle rather than aborting execution.
func (c *CPU) raiseEPU() error {
	c.RaiseTrap(IrqEPU)
	return nil
}

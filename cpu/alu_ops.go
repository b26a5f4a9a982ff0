package cpu

// Arithmetic and logic instruction handlers. Each is a thin wrapper
// around twoOperandArith supplying the compute function and the flag
// update that follows it; the flag math itself lives in alu.go and is
// grounded on the three worked ADD scenarios and the flag table.

func (c *CPU) opAdd() error {
	return c.twoOperandArith(true, func(sz Size, reg, other uint64) uint64 {
		result, cf, zf, sf, pvf, hf, da := AddFlags(sz, reg, other, false)
		c.setArithFlags(cf, zf, sf, pvf, hf, da)
		return result
	})
}

func (c *CPU) opAdc() error {
	carryIn := c.FCW&FlagC != 0
	return c.twoOperandArith(true, func(sz Size, reg, other uint64) uint64 {
		result, cf, zf, sf, pvf, hf, da := AddFlags(sz, reg, other, carryIn)
		c.setArithFlags(cf, zf, sf, pvf, hf, da)
		return result
	})
}

func (c *CPU) opSub() error {
	return c.twoOperandArith(true, func(sz Size, reg, other uint64) uint64 {
		result, cf, zf, sf, pvf, hf, da := SubFlags(sz, reg, other, false)
		c.setArithFlags(cf, zf, sf, pvf, hf, da)
		return result
	})
}

func (c *CPU) opSbc() error {
	borrowIn := c.FCW&FlagC != 0
	return c.twoOperandArith(true, func(sz Size, reg, other uint64) uint64 {
		result, cf, zf, sf, pvf, hf, da := SubFlags(sz, reg, other, borrowIn)
		c.setArithFlags(cf, zf, sf, pvf, hf, da)
		return result
	})
}

func (c *CPU) opAnd() error {
	return c.twoOperandArith(true, func(sz Size, reg, other uint64) uint64 {
		result := applySizeMask(sz, reg&other)
		zf, sf, pvf := LogicFlags(sz, result)
		c.setLogicFlags(zf, sf, pvf)
		return result
	})
}

func (c *CPU) opOr() error {
	return c.twoOperandArith(true, func(sz Size, reg, other uint64) uint64 {
		result := applySizeMask(sz, reg|other)
		zf, sf, pvf := LogicFlags(sz, result)
		c.setLogicFlags(zf, sf, pvf)
		return result
	})
}

func (c *CPU) opXor() error {
	return c.twoOperandArith(true, func(sz Size, reg, other uint64) uint64 {
		result := applySizeMask(sz, reg^other)
		zf, sf, pvf := LogicFlags(sz, result)
		c.setLogicFlags(zf, sf, pvf)
		return result
	})
}

func (c *CPU) opCp() error {
	return c.twoOperandArith(false, func(sz Size, reg, other uint64) uint64 {
		result, cf, zf, sf, pvf, hf, da := SubFlags(sz, reg, other, false)
		c.setArithFlags(cf, zf, sf, pvf, hf, da)
		return result
	})
}

func applySizeMask(sz Size, v uint64) uint64 {
	mask, _, _ := sizeMasks(sz)
	return v & mask
}

// setArithFlags updates C/Z/S/PV/H/DA after an ADD/ADC/SUB/SBC/CP/NEG.
func (c *CPU) setArithFlags(cf, zf, sf, pvf, hf, da bool) {
	c.FCW = setFlag(c.FCW, FlagC, cf)
	c.FCW = setFlag(c.FCW, FlagZ, zf)
	c.FCW = setFlag(c.FCW, FlagS, sf)
	c.FCW = setFlag(c.FCW, FlagPV, pvf)
	c.FCW = setFlag(c.FCW, FlagH, hf)
	c.FCW = setFlag(c.FCW, FlagDA, da)
}

// setShiftFlags updates C/Z/S/PV after a shift or rotate. DA and H
// are architecturally untouched by these instructions.
func (c *CPU) setShiftFlags(cf, zf, sf, pvf bool) {
	c.FCW = setFlag(c.FCW, FlagC, cf)
	c.FCW = setFlag(c.FCW, FlagZ, zf)
	c.FCW = setFlag(c.FCW, FlagS, sf)
	c.FCW = setFlag(c.FCW, FlagPV, pvf)
}

// setLogicFlags updates Z/S/PV after AND/OR/XOR/TEST; C and H are
// unaffected by logical operations (§4.5).
func (c *CPU) setLogicFlags(zf, sf, pvf bool) {
	c.FCW = setFlag(c.FCW, FlagZ, zf)
	c.FCW = setFlag(c.FCW, FlagS, sf)
	c.FCW = setFlag(c.FCW, FlagPV, pvf)
}

func setFlag(fcw, bit uint16, set bool) uint16 {
	if set {
		return fcw | bit
	}
	return fcw &^ bit
}

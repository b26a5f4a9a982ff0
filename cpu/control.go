package cpu

// Control-transfer handlers. Jump/call targets are full logical
// addresses computed the same way any memory operand is (operand.go)
// but never pass through dataAddr's non-seg substitution — code
// addresses are never subject to the data-segment rule (§4.4).

// opJump implements JP cc,addr. word0: regField carries the
// condition code, modeField the target's addressing mode; a
// mandatory extra word's low nibble carries the register that mode
// needs (pointer/index/base register, unused for AMDirect).
func (c *CPU) opJump() error {
	w0 := c.firstWord
	cc := Cond(regField(w0))
	mode := modeField(w0)
	regFld := c.decodeRegOperand()

	op := c.decodeOperand(mode, regFld)
	if EvalCond(cc, c.FCW) {
		c.PC = op.Addr
	}
	return nil
}

// opJR implements JR cc,disp: an 8-bit signed displacement, held in
// the low byte of the extra word and doubled, relative to the address
// of the following instruction.
func (c *CPU) opJR() error {
	w0 := c.firstWord
	cc := Cond(regField(w0))
	disp8 := int8(c.nextOpWord() & 0xFF)
	disp := int32(disp8) * 2

	if EvalCond(cc, c.FCW) {
		c.PC = AddOffset(c.PC, disp)
	}
	return nil
}

// opCall implements CALL addr: push the return PC (the address of
// the instruction after CALL) then transfer control unconditionally.
func (c *CPU) opCall() error {
	w0 := c.firstWord
	mode := modeField(w0)
	regFld := c.decodeRegOperand()

	op := c.decodeOperand(mode, regFld)
	ret := c.PC
	c.PushPC(ret)
	c.PC = op.Addr
	return nil
}

// opCalr implements CALR disp: PC-relative call.
func (c *CPU) opCalr() error {
	disp := int32(int16(c.nextOpWord()))
	ret := c.PC
	c.PushPC(ret)
	c.PC = AddOffset(c.PC, disp)
	return nil
}

// opRet implements RET cc: pop and load PC if the condition holds.
func (c *CPU) opRet() error {
	w0 := c.firstWord
	cc := Cond(regField(w0))
	if EvalCond(cc, c.FCW) {
		c.PC = c.PopPC()
	}
	return nil
}

// opDjnz implements DJNZ r,disp: decrement r, jump if still nonzero.
func (c *CPU) opDjnz() error {
	w0 := c.firstWord
	reg := regField(w0)
	disp := int32(int16(c.nextOpWord()))

	v := c.Regs.Word(reg) - 1
	c.Regs.SetWord(reg, v)
	if v != 0 {
		c.PC = AddOffset(c.PC, disp)
	}
	return nil
}

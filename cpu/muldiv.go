package cpu

import "fmt"

// opMulDiv implements MULT, MULTL, DIV, DIVL, all signed per §4.5.
// word0's size bit is ignored (operand widths are fixed per the
// sub-selected form); mode+mode-register field decode the operand
// read from memory or a register; the extra word's low nibble gives
// the accumulator register (word pair for MULT/DIV, long pair for
// MULTL/DIVL; DIV/DIVL leave the remainder in the high half, Rn or
// RRn, and the quotient in the low half, Rn+1 or RRn+2). subField
// selects: 0 MULT, 1
// MULTL, 2 DIV, 3 DIVL.
func (c *CPU) opMulDiv() error {
	w0 := c.firstWord
	mode := modeField(w0)
	regFld := regField(w0)
	sub := subField(w0)

	accReg := c.decodeRegOperand()

	switch sub {
	case 0: // MULT: R(n+1):Rn (16x16->32, signed) *= operand (word)
		op := c.decodeOperand(mode, regFld)
		operand := int16(uint16(c.readOperand(op, SizeWord)))
		acc := int16(c.Regs.Word(accReg))
		product := int32(acc) * int32(operand)
		c.Regs.SetLong(accReg, uint32(product))
		fits := product == int32(int16(product))
		c.setMulFlags(product == 0, product < 0, !fits)
	case 1: // MULTL: 32x32->64, signed
		op := c.decodeOperand(mode, regFld)
		operand := int32(uint32(c.readOperand(op, SizeLong)))
		acc := int32(c.Regs.Long(accReg))
		product := int64(acc) * int64(operand)
		c.Regs.SetQuad(accReg, uint64(product))
		fits := product == int64(int32(product))
		c.setMulFlags(product == 0, product < 0, !fits)
	case 2: // DIV: 32/16 -> remainder:quotient in Rn:R(n+1), signed
		op := c.decodeOperand(mode, regFld)
		divisor := int16(uint16(c.readOperand(op, SizeWord)))
		if divisor == 0 {
			c.RaiseTrap(IrqEPU)
			return nil
		}
		dividend := int32(c.Regs.Long(accReg))
		q := dividend / int32(divisor)
		r := dividend % int32(divisor)
		if q > 32767 || q < -32768 {
			c.RaiseTrap(IrqEPU)
			return nil
		}
		c.Regs.SetWord(accReg, uint16(int16(r)))
		c.Regs.SetWord(accReg+1, uint16(int16(q)))
		c.setMulFlags(q == 0, q < 0, false)
	case 3: // DIVL: 64/32 -> remainder:quotient in a quad pair, signed
		op := c.decodeOperand(mode, regFld)
		divisor := int32(uint32(c.readOperand(op, SizeLong)))
		if divisor == 0 {
			c.RaiseTrap(IrqEPU)
			return nil
		}
		dividend := int64(c.Regs.Quad(accReg))
		q := dividend / int64(divisor)
		r := dividend % int64(divisor)
		if q > 2147483647 || q < -2147483648 {
			c.RaiseTrap(IrqEPU)
			return nil
		}
		c.Regs.SetLong(accReg, uint32(int32(r)))
		c.Regs.SetLong(accReg+2, uint32(int32(q)))
		c.setMulFlags(q == 0, q < 0, false)
	default:
		return fmt.Errorf("cpu: opMulDiv: unreachable sub %d", sub)
	}
	return nil
}

// setMulFlags updates Z/S/C/PV after MULT/MULTL/DIV/DIVL. C carries
// the doesn't-fit indicator for MULT/MULTL (PV is always cleared for
// multiply, per §4.5); DIV/DIVL pass false for carry since a
// quotient that doesn't fit traps instead of reaching this point.
func (c *CPU) setMulFlags(zf, sf, carry bool) {
	c.FCW = setFlag(c.FCW, FlagZ, zf)
	c.FCW = setFlag(c.FCW, FlagS, sf)
	c.FCW = setFlag(c.FCW, FlagC, carry)
	c.FCW = setFlag(c.FCW, FlagPV, false)
}

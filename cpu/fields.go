package cpu

// Shared first-word field layout, bits 15..10 the class code decoded
// in dispatch.go, for the classes below it:
//
//	bit 9      size bit: 0 = word, 1 = byte
//	bits 8..6  addressing mode (AddrMode) of the non-register operand
//	bits 5..2  register field the addressing mode consumes: the
//	           register itself for AMRegister, the pointer/index/base
//	           register for the memory modes; unused for AMImmediate
//	bits 1..0  subclass selector (shift/rotate kind, block-instruction
//	           direction/repeat, INC/DEC, NEG/COM/TEST, ...)
//
// Two-operand instructions (LD, the arithmetic/logic classes) always
// carry the register operand's number in the low nibble of one
// mandatory extra instruction word rather than stealing bits from
// word0 — this implementation's own encoding choice, made to keep
// every class's word0 layout identical rather
// than special-casing bit widths per class.
//
// This is this implementation's own opcode map; see operand.go and
// dispatch.go for why the literal bit pattern isn't part of the
// architectural contract.

func sizeBit(w uint16) Size {
	if w&0x0200 != 0 {
		return SizeByte
	}
	return SizeWord
}

func modeField(w uint16) AddrMode { return AddrMode((w >> 6) & 0x7) }
func regField(w uint16) uint8     { return uint8((w >> 2) & 0xF) }
func subField(w uint16) uint8     { return uint8(w & 0x3) }

// arithSize is sizeBit generalized with a long form: the arithmetic
// and logic classes (ADD/ADC/SUB/SBC/AND/OR/XOR/CP) don't otherwise
// use subField, so its low bit doubles as the byte/word-vs-long
// selector needed for ADDL/ADCL/SUBL/SBCL/ANDL/ORL/XORL/CPL (§4.5).
func arithSize(w uint16) Size {
	if subField(w)&0x1 != 0 {
		return SizeLong
	}
	return sizeBit(w)
}

// decodeRegOperand reads the mandatory extra register word every
// two-operand instruction carries and returns the register number in
// its low nibble.
func (c *CPU) decodeRegOperand() uint8 {
	return uint8(c.nextOpWord() & 0xF)
}

// twoOperandArith implements the shared shape of every arithmetic and
// logic class: a register operand (from the extra word) and a
// mode-decoded operand (from word0's mode+reg fields), combined by
// compute and written back to the register operand unless writeback
// is false (CP).
func (c *CPU) twoOperandArith(writeback bool, compute func(sz Size, reg, other uint64) uint64) error {
	w0 := c.firstWord
	sz := arithSize(w0)
	mode := modeField(w0)
	otherRegField := regField(w0)

	regNum := c.decodeRegOperand()

	var other uint64
	if mode == AMImmediate {
		other = c.fetchImmediate(sz)
	} else {
		op := c.decodeOperand(mode, otherRegField)
		other = c.readOperand(op, sz)
	}

	regOp := Operand{Reg: regNum}
	regVal := c.readOperand(regOp, sz)

	result := compute(sz, regVal, other)

	if writeback {
		c.writeOperand(regOp, sz, result)
	}
	return nil
}

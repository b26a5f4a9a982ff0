package cpu

// AddrMode selects how an instruction's operand-specifier field is
// interpreted, following the operand kinds enumerated in §4.3. The
// field layout the dispatch table generator assigns to each mode
// (mode nibble + register nibble, extra words consumed from the
// instruction stream for the non-register forms) is this
// implementation's own opcode map, in the spirit of PDP-11's
// `aget`-style mode+register decode adapted to the Z8000 operand set.
type AddrMode uint8

const (
	AMRegister AddrMode = iota
	AMImmediate
	AMIndirect
	AMDirect
	AMIndexed
	AMBased
	AMBaseIndexed
)

// Operand is a decoded operand: either a register number or a
// logical memory address, ready to be read/written at a given Size.
type Operand struct {
	IsMem bool
	Reg   uint8
	Addr  uint32
}

// ptrRegAddr reads a register as a memory pointer: a plain 16-bit
// offset in non-segmented mode, or a segmented long-register pointer
// (high word = 7-bit segment, low word = offset) in segmented mode —
// "the register bank is also the indirect-operand space" (§4.1).
func (c *CPU) ptrRegAddr(reg uint8) uint32 {
	if c.Variant.Segmented {
		v := c.Regs.Long(reg)
		return PackAddr(uint16(v>>16)&0x7F, uint16(v))
	}
	return uint32(c.Regs.Word(reg))
}

// fetchDirectAddr consumes the direct-address form from the
// instruction stream: one word in non-segmented mode; in segmented
// mode, one word whose bit 15 selects long format (seg in bits 8..14,
// full 16-bit offset in a second word) or short format (seg in bits
// 8..14, 8-bit offset packed in the same word) — §4.4.
func (c *CPU) fetchDirectAddr() uint32 {
	if !c.Variant.Segmented {
		return uint32(c.nextOpWord())
	}
	w0 := c.nextOpWord()
	seg := (w0 >> 8) & 0x7F
	if w0&0x8000 != 0 {
		off := c.nextOpWord()
		return PackAddr(seg, off)
	}
	return PackAddr(seg, uint16(w0&0xFF))
}

// decodeOperand resolves an addressing-mode field plus register
// field into an Operand, consuming whatever extra instruction-stream
// words that mode requires.
func (c *CPU) decodeOperand(am AddrMode, reg uint8) Operand {
	switch am {
	case AMImmediate:
		return Operand{Reg: reg} // caller reads the immediate directly via fetchImmediate
	case AMIndirect:
		return Operand{IsMem: true, Addr: c.ptrRegAddr(reg)}
	case AMDirect:
		return Operand{IsMem: true, Addr: c.fetchDirectAddr()}
	case AMIndexed:
		base := c.fetchDirectAddr()
		idx := int32(c.Regs.Word(reg))
		return Operand{IsMem: true, Addr: AddOffset(base, idx)}
	case AMBased:
		base := c.ptrRegAddr(reg)
		disp := int32(int16(c.nextOpWord()))
		return Operand{IsMem: true, Addr: AddOffset(base, disp)}
	case AMBaseIndexed:
		base := c.ptrRegAddr(reg)
		idxReg := uint8(c.nextOpWord() & 0xF)
		idx := int32(c.Regs.Word(idxReg))
		return Operand{IsMem: true, Addr: AddOffset(base, idx)}
	default: // AMRegister
		return Operand{Reg: reg}
	}
}

// fetchImmediate consumes an in-stream immediate of the given size.
func (c *CPU) fetchImmediate(sz Size) uint64 {
	switch sz {
	case SizeByte:
		return uint64(c.nextOpWord() & 0xFF)
	case SizeLong:
		hi := c.nextOpWord()
		lo := c.nextOpWord()
		return uint64(hi)<<16 | uint64(lo)
	default: // SizeWord
		return uint64(c.nextOpWord())
	}
}

// readOperand reads an Operand's value at the given size.
func (c *CPU) readOperand(op Operand, sz Size) uint64 {
	if !op.IsMem {
		switch sz {
		case SizeByte:
			idx, high := byteRegSplit(op.Reg)
			return uint64(c.Regs.Byte(idx, high))
		case SizeLong:
			return uint64(c.Regs.Long(op.Reg))
		default:
			return uint64(c.Regs.Word(op.Reg))
		}
	}
	addr := c.dataAddr(op.Addr)
	switch sz {
	case SizeByte:
		return uint64(readByteAt(c.DataBus, addr))
	case SizeLong:
		hi := readWordAt(c.DataBus, addr)
		lo := readWordAt(c.DataBus, AddOffset(addr, 2))
		return uint64(hi)<<16 | uint64(lo)
	default:
		return uint64(readWordAt(c.DataBus, addr))
	}
}

// writeOperand writes val into an Operand at the given size.
func (c *CPU) writeOperand(op Operand, sz Size, val uint64) {
	if !op.IsMem {
		switch sz {
		case SizeByte:
			idx, high := byteRegSplit(op.Reg)
			c.Regs.SetByte(idx, high, uint8(val))
		case SizeLong:
			c.Regs.SetLong(op.Reg, uint32(val))
		default:
			c.Regs.SetWord(op.Reg, uint16(val))
		}
		return
	}
	addr := c.dataAddr(op.Addr)
	switch sz {
	case SizeByte:
		writeByteAt(c.DataBus, addr, uint8(val))
	case SizeLong:
		writeWordAt(c.DataBus, addr, uint16(val>>16))
		writeWordAt(c.DataBus, AddOffset(addr, 2), uint16(val))
	default:
		writeWordAt(c.DataBus, addr, uint16(val))
	}
}

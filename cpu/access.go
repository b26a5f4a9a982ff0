package cpu

// Word- and byte-granular bus helpers shared by operand decode,
// PUSH/POP and the trap entry sequence. These enforce invariants 5
// and 6: word accesses are naturally aligned (the low address bit is
// forced to zero), and a byte write only disturbs the targeted byte
// of the word it lives in.

func readWordAt(bus MemoryBus, addr uint32) uint16 {
	return bus.ReadWord(addr &^ 1)
}

func writeWordAt(bus MemoryBus, addr uint32, val uint16) {
	bus.WriteWord(addr&^1, val)
}

func readByteAt(bus MemoryBus, addr uint32) uint8 {
	w := bus.ReadWord(addr &^ 1)
	if addr&1 == 0 {
		return uint8(w >> 8)
	}
	return uint8(w)
}

func writeByteAt(bus MemoryBus, addr uint32, val uint8) {
	wordAddr := addr &^ 1
	if addr&1 == 0 {
		bus.WriteWordMasked(wordAddr, uint16(val)<<8, 0xFF00)
	} else {
		bus.WriteWordMasked(wordAddr, uint16(val), 0x00FF)
	}
}

// byteRegSplit maps a 4-bit byte-operand register field onto a word
// register index plus which half of it to use. This implementation's
// convention: fields 0..7 select the high byte (RH0..RH7), fields
// 8..15 select the low byte of R(n-8) (RL0..RL7) — RH8..RL15 do not
// exist on real hardware, so only R0..R7 are ever addressed this way.
func byteRegSplit(field uint8) (idx uint8, high bool) {
	if field < 8 {
		return field, true
	}
	return field - 8, false
}

// PushWord decrements the active stack pointer by 2 and writes v —
// decrement-then-write, per §5's ordering rule for pushes.
func (c *CPU) PushWord(v uint16) {
	c.Regs.SetSP(c.Regs.SP() - 2)
	writeWordAt(c.StackBus, c.stackAddr(), v)
}

// PopWord reads the word at the active stack pointer then increments
// it by 2 — read-then-increment, per §5's ordering rule for pops.
func (c *CPU) PopWord() uint16 {
	v := readWordAt(c.StackBus, c.stackAddr())
	c.Regs.SetSP(c.Regs.SP() + 2)
	return v
}

func (c *CPU) stackAddr() uint32 {
	if c.Variant.Segmented {
		return PackAddr(c.Regs.SegSP(), c.Regs.SP())
	}
	return uint32(c.Regs.SP())
}

// encodeSegPC and decodeSegPC implement the long-format segmented-PC
// word pair used uniformly by the reset vector, CALL/trap PC pushes
// and long-format direct addresses: high word has bit 15 set (long
// format marker) with the 7-bit segment in bits 8..14; low word is
// the full 16-bit offset.
func encodeSegPC(seg, off uint16) (hi, lo uint16) {
	return 0x8000 | (seg&0x7F)<<8, off
}

func decodeSegPC(hi, lo uint16) (seg, off uint16) {
	return (hi >> 8) & 0x7F, lo
}

// PushPC pushes the given logical address as a return/saved PC: one
// word in non-segmented mode, two (seg, then offset) in segmented
// mode, per §4.8 and §6.
func (c *CPU) PushPC(pc uint32) {
	if c.Variant.Segmented {
		hi, lo := encodeSegPC(SegmentOf(pc), OffsetOf(pc))
		c.PushWord(hi)
		c.PushWord(lo)
		return
	}
	c.PushWord(uint16(pc))
}

// PopPC reverses PushPC: PushPC pushes hi then lo, so lo is on top of
// stack and must be popped first.
func (c *CPU) PopPC() uint32 {
	if c.Variant.Segmented {
		lo := c.PopWord()
		hi := c.PopWord()
		seg, off := decodeSegPC(hi, lo)
		return PackAddr(seg, off)
	}
	return uint32(c.PopWord())
}

// dataAddr applies the "non-seg data" rule (invariant 7): on the
// Z8001, while FCW.SEG is clear, a data address's segment half is
// replaced with the high 7 bits of the current PC. Instruction
// fetches never go through this — they always use the full PC — and
// neither do stack accesses, which use R14:R15 as stackAddr forms it.
func (c *CPU) dataAddr(logical uint32) uint32 {
	if c.Variant.Segmented && c.FCW&FlagSEG == 0 {
		return PackAddr(SegmentOf(c.PC), OffsetOf(logical))
	}
	return logical
}

// fetchInstrWord reads one word from the program bus at PC (full PC,
// never substituted) and advances PC by 2, wrapping the offset half
// only (§4.4).
func (c *CPU) fetchInstrWord() uint16 {
	w := readWordAt(c.ProgramBus, c.PC)
	c.PC = AddOffset(c.PC, 2)
	return w
}

// nextOpWord fetches the next operand word from the instruction
// stream, recording it in this instruction's operand-word cache
// (§4.3). Handlers decode operands in a fixed left-to-right order,
// so a simple append-only cache satisfies "repeated reads of the
// same operand index return the same word."
func (c *CPU) nextOpWord() uint16 {
	w := c.fetchInstrWord()
	if c.opWordCount < len(c.opWords) {
		c.opWords[c.opWordCount] = w
		c.opWordCount++
	}
	return w
}

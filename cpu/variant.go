package cpu

// Variant carries the handful of facts that differ between the
// segmented Z8001 and the non-segmented Z8002, so a single
// interpreter type serves both (§9: "a single interpreter
// parameterized by a small capability"). FCW.SEG already carries
// the segmented/non-segmented distinction at runtime; Variant
// supplies the facts that don't live in a status register.
type Variant struct {
	// Name identifies the variant for diagnostics.
	Name string
	// Segmented is true for the Z8001.
	Segmented bool
	// AddrMask bounds a logical address: 0xFFFF for the Z8002's
	// 16-bit space, 0x7FFFFF for the Z8001's 23-bit space.
	AddrMask uint32
	// VectorEntrySize is the byte size of one FCW+PC vector-table
	// entry: 4 for Z8002, 8 for Z8001 (first two bytes reserved).
	VectorEntrySize uint32
	// PCPushWords is how many words CALL/trap entry push for the
	// return/saved PC: 1 for Z8002, 2 (segmented) for Z8001.
	PCPushWords int
}

// Z8002 is the non-segmented 16-bit-address variant.
var Z8002 = Variant{
	Name:            "Z8002",
	Segmented:       false,
	AddrMask:        0xFFFF,
	VectorEntrySize: 4,
	PCPushWords:     1,
}

// Z8001 is the segmented 23-bit-address variant.
var Z8001 = Variant{
	Name:            "Z8001",
	Segmented:       true,
	AddrMask:        0x7FFFFF,
	VectorEntrySize: 8,
	PCPushWords:     2,
}

// PackAddr forms a 32-bit logical address from a segment and offset
// the way the Z8001 does: (seg<<16)|offset. On the Z8002 the segment
// is always zero and this is the identity on offset.
func PackAddr(seg, offset uint16) uint32 {
	return uint32(seg)<<16 | uint32(offset)
}

// SegmentOf and OffsetOf split a packed logical address back apart.
func SegmentOf(addr uint32) uint16 { return uint16(addr >> 16) }
func OffsetOf(addr uint32) uint16  { return uint16(addr) }

// AddOffset adds a signed delta to the offset half of a logical
// address, wrapping modulo 65536 without disturbing the segment
// half — the uniform rule for block-move increments, PUSH/POP SP
// updates and effective-address displacement (§4.4).
func AddOffset(addr uint32, delta int32) uint32 {
	off := uint16(int32(OffsetOf(addr)) + delta)
	return PackAddr(SegmentOf(addr), off)
}

package cpu

// RegFile represents the Z8000 general-purpose register file.
// The sixteen word registers R0..R15 share storage with three
// overlapping views: byte (RH0..RH7, RL0..RL7), long (RR0, RR2, ...,
// RR14) and quad (RQ0, RQ4, RQ8, RQ12). All views are write-through:
// mutating one mutates the others that overlap it.
type RegFile struct {
	// R holds the sixteen word registers R0..R15.
	R [16]uint16
}

// Word reads register Rn as a 16-bit value.
func (r *RegFile) Word(n uint8) uint16 {
	return r.R[n&0xF]
}

// SetWord writes register Rn as a 16-bit value.
func (r *RegFile) SetWord(n uint8, v uint16) {
	r.R[n&0xF] = v
}

// Byte reads the high or low byte of Rn. Only R0..R7 have byte
// views (RH0..RH7, RL0..RL7); RH8..RL15 do not exist and this
// masks the index into range the same way the hardware does.
func (r *RegFile) Byte(n uint8, high bool) uint8 {
	w := r.R[n&0x7]
	if high {
		return uint8(w >> 8)
	}
	return uint8(w)
}

// SetByte writes the high or low byte of Rn, preserving the other byte.
func (r *RegFile) SetByte(n uint8, high bool, v uint8) {
	idx := n & 0x7
	if high {
		r.R[idx] = (r.R[idx] & 0x00FF) | uint16(v)<<8
	} else {
		r.R[idx] = (r.R[idx] & 0xFF00) | uint16(v)
	}
}

// LongIndex masks a register index to the nearest valid long-pair
// index (even). Per invariant 4, an odd index used as a long operand
// is undefined at the hardware level; this implementation reproduces
// the low-bit-masked behavior rather than trapping.
func LongIndex(n uint8) uint8 {
	return n &^ 1
}

// QuadIndex masks a register index to the nearest valid quad-group
// index ({0,4,8,12}).
func QuadIndex(n uint8) uint8 {
	return n &^ 3
}

// Long reads the 32-bit pair RRn = (Rn<<16)|Rn+1. n is masked to an
// even index first.
func (r *RegFile) Long(n uint8) uint32 {
	n = LongIndex(n)
	return uint32(r.R[n])<<16 | uint32(r.R[n+1])
}

// SetLong writes both halves of RRn in one logical update.
func (r *RegFile) SetLong(n uint8, v uint32) {
	n = LongIndex(n)
	r.R[n] = uint16(v >> 16)
	r.R[n+1] = uint16(v)
}

// Quad reads the 64-bit group RQn = (RRn<<32)|RRn+2. n is masked to
// a {0,4,8,12} index first.
func (r *RegFile) Quad(n uint8) uint64 {
	n = QuadIndex(n)
	return uint64(r.Long(n))<<32 | uint64(r.Long(n+2))
}

// SetQuad writes both long halves of RQn in one logical update.
func (r *RegFile) SetQuad(n uint8, v uint64) {
	n = QuadIndex(n)
	r.SetLong(n, uint32(v>>32))
	r.SetLong(n+2, uint32(v))
}

// SPIndex is the register index backing the current stack pointer (R15).
const SPIndex uint8 = 15

// SP reads the offset half of the active stack pointer (R15). In
// segmented mode the segment half lives in R14; callers that need
// the full segmented pointer use SegSP.
func (r *RegFile) SP() uint16 {
	return r.R[SPIndex]
}

// SetSP writes the offset half of the active stack pointer.
func (r *RegFile) SetSP(v uint16) {
	r.R[SPIndex] = v
}

// SegSP reads R14 (the stack segment register in segmented mode).
func (r *RegFile) SegSP() uint16 {
	return r.R[14]
}

// SetSegSP writes R14.
func (r *RegFile) SetSegSP(v uint16) {
	r.R[14] = v
}

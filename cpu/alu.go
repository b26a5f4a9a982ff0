package cpu

// Size is the operand width an arithmetic/logical routine operates on.
type Size uint8

const (
	SizeByte Size = iota
	SizeWord
	SizeLong
)

func sizeMasks(sz Size) (mask, top, half uint64) {
	switch sz {
	case SizeByte:
		return 0xFF, 0x80, 0x0F
	case SizeLong:
		return 0xFFFFFFFF, 0x80000000, 0x0FFF_FFFF
	default:
		return 0xFFFF, 0x8000, 0x0FFF
	}
}

// parityTable is the 256-entry even-parity table used by logical
// byte operations to compute PV (§4.5: "PV is computed from a
// 256-entry parity table for byte operations").
var parityTable = buildParityTable()

func buildParityTable() [256]bool {
	var t [256]bool
	for i := 0; i < 256; i++ {
		bits := 0
		for v := i; v != 0; v >>= 1 {
			bits += v & 1
		}
		t[i] = bits%2 == 0
	}
	return t
}

// AddFlags computes the unsigned sum of a and b (plus an optional
// incoming carry) at the given size and returns the result together
// with the flags ADD/ADC sets: C, Z, S, PV, H, DA. DA is always false
// for additive operations per §4.5.
func AddFlags(sz Size, a, b uint64, carryIn bool) (result uint64, c, z, s, pv, h, da bool) {
	mask, top, half := sizeMasks(sz)
	sum := a + b
	if carryIn {
		sum++
	}
	result = sum & mask
	c = sum > mask
	z = result == 0
	s = result&top != 0
	aTop, bTop := a&top != 0, b&top != 0
	pv = aTop == bTop && aTop != s

	hsum := (a & half) + (b & half)
	if carryIn {
		hsum++
	}
	h = hsum > half
	da = false
	return
}

// SubFlags computes a-b (minus an optional incoming borrow) at the
// given size and returns the result together with the flags
// SUB/SBC/CP set: C (borrow), Z, S, PV, H, DA. DA is always true for
// subtractive operations per §4.5.
func SubFlags(sz Size, a, b uint64, borrowIn bool) (result uint64, c, z, s, pv, h, da bool) {
	mask, top, half := sizeMasks(sz)
	bi := uint64(0)
	if borrowIn {
		bi = 1
	}
	diff := int64(a) - int64(b) - int64(bi)
	result = uint64(diff) & mask
	c = diff < 0
	z = result == 0
	s = result&top != 0
	aTop, bTop := a&top != 0, b&top != 0
	pv = aTop != bTop && bTop == s

	ha, hb := a&half, b&half
	h = ha < hb+bi
	da = true
	return
}

// LogicFlags computes the flags AND/OR/XOR set: Z, S and, for byte
// operations, PV from the parity table (word logical operations
// clear PV per §4.5). C is not touched by the caller; DA and H are
// left alone.
func LogicFlags(sz Size, result uint64) (z, s, pv bool) {
	_, top, _ := sizeMasks(sz)
	z = result == 0
	s = result&top != 0
	if sz == SizeByte {
		pv = parityTable[result&0xFF]
	}
	return
}

// NegFlags computes 0-operand with SUB semantics: C is set unless
// the operand was zero, PV is set if the operand was the minimum
// signed value for its size, DA is set like any subtractive operation.
func NegFlags(sz Size, operand uint64) (result uint64, c, z, s, pv, h, da bool) {
	result, c, z, s, _, h, da = SubFlags(sz, 0, operand, false)
	_, top, _ := sizeMasks(sz)
	pv = operand == top
	return
}

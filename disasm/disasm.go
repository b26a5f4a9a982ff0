// Package disasm renders a decoded instruction word as a short
// mnemonic line for trace output, ambient tooling the CPU package
// itself doesn't need at execution time.
package disasm

import (
	"fmt"

	"github.com/z8000emu/z8000/cpu"
)

// Line formats one trace line with the fields cpu.CPU's own
// instruction trace prints (address, raw first word, class mnemonic,
// here padded to 14 columns) followed by the cycle count. It exists as a
// standalone package so a caller can post-process a captured
// (address, word) stream — e.g. from a memory dump — without running
// the core.
func Line(addr uint32, word uint16, cycles uint64) string {
	name := cpu.ClassName(word)
	return fmt.Sprintf("%08x: %04x  %-14s (%d cyc)", addr, word, name, cycles)
}

// RegLine formats a register-dump trace line matching cpu.CPU's own
// SetRegTrace output, for callers rendering a captured register
// snapshot rather than a live core.
func RegLine(fcw uint16, pc uint32, regs [16]uint16) string {
	out := fmt.Sprintf("  fcw=%04x pc=%08x", fcw, pc)
	for i, r := range regs {
		out += fmt.Sprintf(" r%d=%04x", i, r)
	}
	return out
}

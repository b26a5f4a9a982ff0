// Package loader loads a raw Z8000 binary image — a flat memory
// image including its own reset vector — the way the standalone
// reference driver's command-line tool does (SPEC_FULL.md §4.10).
package loader

import (
	"fmt"
	"os"
)

// Reset vector layout, absolute address 0 regardless of variant: two
// reserved bytes, FCW, then a 16-bit PC (Z8002) or a segmented PC
// pair (Z8001, long format: 0x8000|seg<<8 then a 16-bit offset).
const (
	resetFCWOffset = 2
	resetPCOffset  = 4

	// fcwSystemMode and fcwSegmentedSystemMode are written into the
	// reset vector's FCW word when Image sets an entry point override
	// and the caller hasn't already put a nonzero FCW there.
	fcwSystemMode          uint16 = 0x4000
	fcwSegmentedSystemMode uint16 = 0xC000
)

// Image is a loaded binary ready to copy into a membus.Region: the
// raw bytes, the address they load at, and whether it targets the
// segmented Z8001, which decides the reset-vector PC layout that
// ApplyEntryOverride writes.
type Image struct {
	Data      []byte
	BaseAddr  uint32
	Segmented bool
}

// Load reads a raw binary file from disk. The file's own bytes are
// expected to already contain a reset vector at the offset
// corresponding to baseAddr 0; a nonzero baseAddr is for loading a
// program above a fixed low-memory reset area maintained separately.
func Load(path string, baseAddr uint32, segmented bool) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return &Image{Data: data, BaseAddr: baseAddr, Segmented: segmented}, nil
}

// MemWriter is the minimal interface Image.ApplyEntryOverride and
// Image.CopyInto need from a memory region — membus.Region satisfies
// it, and tests can supply a fake.
type MemWriter interface {
	Load(addr uint32, data []byte) error
	ReadWord(addr uint32) uint16
	WriteWord(addr uint32, val uint16)
}

// CopyInto copies the image's bytes into mem at BaseAddr.
func (img *Image) CopyInto(mem MemWriter) error {
	return mem.Load(img.BaseAddr, img.Data)
}

// ApplyEntryOverride writes entryAddr into the reset vector's PC
// field, encoding it as a segmented long-format pointer when the
// image targets the Z8001, and sets FCW to a sane system-mode default
// if the loaded image left it zero — matching the reference driver's
// -entry flag (SPEC_FULL.md §4.10).
func (img *Image) ApplyEntryOverride(mem MemWriter, entryAddr uint32) {
	if img.Segmented {
		seg := uint16(entryAddr>>16) & 0x7F
		off := uint16(entryAddr)
		mem.WriteWord(resetPCOffset, 0x8000|(seg<<8))
		mem.WriteWord(resetPCOffset+2, off)
		if mem.ReadWord(resetFCWOffset) == 0 {
			mem.WriteWord(resetFCWOffset, fcwSegmentedSystemMode)
		}
		return
	}
	mem.WriteWord(resetPCOffset, uint16(entryAddr))
	if mem.ReadWord(resetFCWOffset) == 0 {
		mem.WriteWord(resetFCWOffset, fcwSystemMode)
	}
}

// Package main provides the entry point for z8000run, a standalone
// Z8000/Z8001/Z8002 instruction-set emulator driver.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/z8000emu/z8000/cpu"
	"github.com/z8000emu/z8000/iobus"
	"github.com/z8000emu/z8000/loader"
	"github.com/z8000emu/z8000/membus"
)

var (
	segmented = flag.Bool("segmented", false, "Use Z8001 segmented mode (default: Z8002 non-segmented)")
	base      = flag.String("base", "0x0000", "Load address in hex")
	entry     = flag.String("entry", "", "Override entry point in hex (writes to the reset vector)")
	trace     = flag.Bool("trace", false, "Enable instruction tracing")
	regTrace  = flag.Bool("regtrace", false, "Enable register tracing (dump after each instruction)")
	cycles    = flag.Uint64("cycles", 0, "Max cycles to execute (0: unlimited)")
	dump      = flag.Bool("dump", false, "Dump memory after execution")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: z8000run [options] <binary-file>\n\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	baseAddr, err := parseHex(*base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: bad -base value: %v\n", err)
		os.Exit(1)
	}

	variant := cpu.Z8002
	if *segmented {
		variant = cpu.Z8001
	}

	img, err := loader.Load(flag.Arg(0), baseAddr, *segmented)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	memSize := membus.DefaultSize
	if *segmented {
		memSize = 0x800000
	}
	mem := membus.New(memSize)
	mem.SetName("MEM")

	if err := img.CopyInto(mem); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	io := iobus.New()

	fmt.Println("Z8000 Standalone Emulator")
	fmt.Println("=========================")
	fmt.Printf("CPU: %s\n", variant.Name)
	fmt.Printf("Loaded: %s\n", flag.Arg(0))
	fmt.Printf("Base address: 0x%04X\n", baseAddr)

	if *entry != "" {
		entryAddr, err := parseHex(*entry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: bad -entry value: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Overriding entry point: 0x%04X\n", entryAddr)
		img.ApplyEntryOverride(mem, entryAddr)
	}

	c := cpu.NewCPU(variant)
	c.SetProgramMemory(mem)
	c.SetDataMemory(mem)
	c.SetStackMemory(mem)
	c.SetIO(io)
	c.SetTrace(*trace, os.Stdout)
	c.SetRegTrace(*regTrace)
	c.Reset()

	fmt.Printf("Reset vector: FCW=0x%04X PC=0x%08X\n", c.GetFCW(), c.GetPC())

	fmt.Println("\nStarting execution...")
	if *trace {
		fmt.Println("---")
	}

	if err := c.Run(*cycles); err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	if *trace {
		fmt.Println("---")
	}

	fmt.Println()
	dumpRegs(c)
	fmt.Printf("\nTotal cycles: %d\n", c.GetCycles())
	fmt.Printf("Halted: %v\n", c.IsHalted())

	if *dump {
		fmt.Println("\n=== Memory Dump (first 256 bytes from load address) ===")
		fmt.Print(mem.Dump(baseAddr, 256))
	}
}

func dumpRegs(c *cpu.CPU) {
	fmt.Printf("fcw=%04x pc=%08x\n", c.GetFCW(), c.GetPC())
	for i := 0; i < 16; i++ {
		fmt.Printf("r%-2d=%04x ", i, c.GetReg(uint8(i)))
		if i%8 == 7 {
			fmt.Println()
		}
	}
}

func parseHex(s string) (uint32, error) {
	s = trimHexPrefix(s)
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func trimHexPrefix(s string) string {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

package cpu

// Class is the 6-bit instruction-class field occupying bits 15..10
// of every first instruction word in this implementation's opcode
// map. The map itself — which bit pattern names which class — is
// this implementation's own generated table (the spec treats the
// literal encoding as build-time-generated data, not part of the
// architectural contract; see DESIGN.md); the operand kinds, flag
// effects, addressing modes and register-field positions it dispatches
// to are the architectural contract, and those match §4 exactly.
type Class uint8

const (
	ClassReserved Class = iota
	ClassLD
	ClassAdd
	ClassAdc
	ClassSub
	ClassSbc
	ClassAnd
	ClassOr
	ClassXor
	ClassCp
	ClassIncDec
	ClassUnary
	ClassShift
	ClassRotate
	ClassMulDiv
	ClassBit
	ClassBlockLD
	ClassBlockCP
	ClassBlockIO
	ClassJump
	ClassJR
	ClassCall
	ClassCalr
	ClassRet
	ClassDjnz
	ClassPushPop
	ClassIO
	ClassLdctl
	ClassHalt
	ClassSC
	ClassIret
	ClassNop
	classCount
)

// OpEntry is one dispatch-table row: the handler for this class, its
// static cycle cost (§2: "cycle counts are accumulated per-instruction
// from a static table"), and a name for tracing.
type OpEntry struct {
	Handler func(*CPU) error
	Cycles  uint64
	Name    string
}

// ClassName returns the trace mnemonic for a first instruction word,
// for external tooling (disasm) that wants to render a captured word
// stream without driving a live CPU.
func ClassName(w uint16) string {
	return dispatchTable[w].Name
}

// classField extracts the 6-bit class code from a first instruction word.
func classField(w uint16) Class {
	c := Class(w >> 10)
	if c >= classCount {
		return ClassReserved
	}
	return c
}

// dispatchTable is built once and shared by every CPU instance: it
// is pure data (a class code maps to a fixed handler+cost+name) with
// no per-CPU state, so there is no reason to rebuild it per instance.
var dispatchTable = buildDispatchTable()

func buildDispatchTable() [65536]OpEntry {
	classes := classInfos()
	var t [65536]OpEntry
	for w := 0; w < 65536; w++ {
		t[w] = classes[classField(uint16(w))]
	}
	return t
}

// classInfos is the compact generator table §9 describes: one row
// per instruction class, expanded into the full 65536-entry table by
// buildDispatchTable. Handlers re-decode the remaining bits of the
// first word themselves; unmapped classes fall back to opReserved,
// which raises the extended-instruction (EPU) trap — exactly what
// real hardware does for an opcode in the EPU reserved range.
func classInfos() [classCount]OpEntry {
	return [classCount]OpEntry{
		ClassReserved: {(*CPU).opReserved, 7, "reserved"},
		ClassLD:       {(*CPU).opLD, 7, "LD"},
		ClassAdd:      {(*CPU).opAdd, 7, "ADD/ADDL"},
		ClassAdc:      {(*CPU).opAdc, 7, "ADC/ADCL"},
		ClassSub:      {(*CPU).opSub, 7, "SUB/SUBL"},
		ClassSbc:      {(*CPU).opSbc, 7, "SBC/SBCL"},
		ClassAnd:      {(*CPU).opAnd, 7, "AND/ANDL"},
		ClassOr:       {(*CPU).opOr, 7, "OR/ORL"},
		ClassXor:      {(*CPU).opXor, 7, "XOR/XORL"},
		ClassCp:       {(*CPU).opCp, 7, "CP/CPL"},
		ClassIncDec:   {(*CPU).opIncDec, 6, "INC/DEC"},
		ClassUnary:    {(*CPU).opUnary, 6, "NEG/COM/TEST"},
		ClassShift:    {(*CPU).opShift, 5, "SLA/SRA/SLL/SRL"},
		ClassRotate:   {(*CPU).opRotate, 5, "RL/RR/RLC/RRC"},
		ClassMulDiv:   {(*CPU).opMulDiv, 70, "MULT/DIV"},
		ClassBit:      {(*CPU).opBit, 6, "BIT/SET/RES"},
		ClassBlockLD:  {(*CPU).opBlockLD, 9, "LDx"},
		ClassBlockCP:  {(*CPU).opBlockCP, 9, "CPx"},
		ClassBlockIO:  {(*CPU).opBlockIO, 10, "xTIR/xDIR"},
		ClassJump:     {(*CPU).opJump, 7, "JP"},
		ClassJR:       {(*CPU).opJR, 6, "JR"},
		ClassCall:     {(*CPU).opCall, 10, "CALL"},
		ClassCalr:     {(*CPU).opCalr, 10, "CALR"},
		ClassRet:      {(*CPU).opRet, 7, "RET"},
		ClassDjnz:     {(*CPU).opDjnz, 11, "DJNZ"},
		ClassPushPop:  {(*CPU).opPushPop, 8, "PUSH/POP"},
		ClassIO:       {(*CPU).opIO, 8, "IN/OUT"},
		ClassLdctl:    {(*CPU).opLdctl, 5, "LDCTL"},
		ClassHalt:     {(*CPU).opHalt, 7, "HALT"},
		ClassSC:       {(*CPU).opSC, 13, "SC"},
		ClassIret:     {(*CPU).opIret, 14, "IRET"},
		ClassNop:      {(*CPU).opNop, 3, "NOP"},
	}
}

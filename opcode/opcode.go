// Package opcode defines the Orion instruction set: the 4-bit opcodes,
// the per-mnemonic operand requirements, and the word formats the code
// generator encodes into.
package opcode

import "strings"

// Opcodes of the Orion 16-register machine. The word layout is
// opcode:4 | reg1:4 | reg2:4 | reg3:4 | imm16.
const (
	NOP     uint8 = 0x0
	LOAD    uint8 = 0x1
	STORE   uint8 = 0x2
	ADD     uint8 = 0x3
	SUB     uint8 = 0x4
	AND     uint8 = 0x5
	OR      uint8 = 0x6
	XOR     uint8 = 0x7
	JUMP    uint8 = 0x8
	JZ      uint8 = 0x9
	CALL    uint8 = 0xA
	RET     uint8 = 0xB
	MOV     uint8 = 0xC
	SYSCALL uint8 = 0xE
	HALT    uint8 = 0xF
)

// Machine limits.
const (
	NumRegisters = 16
	WordSize     = 4 // bytes per instruction

	// Immediate operands are 16 bits wide; both the signed and the
	// unsigned interpretation are accepted in source.
	ImmediateMin = -32768
	ImmediateMax = 65535

	SyscallMax = 255
)

// OperandKind is the operand type required at one operand position.
type OperandKind int

const (
	KindRegister OperandKind = iota
	KindImmediate
	KindAddress
	KindMemory
)

var operandKindNames = map[OperandKind]string{
	KindRegister:  "register",
	KindImmediate: "immediate",
	KindAddress:   "address",
	KindMemory:    "memory",
}

func (k OperandKind) String() string {
	if name, ok := operandKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Format selects how parsed operands map into the instruction word.
type Format int

const (
	FormatNone    Format = iota // HALT, RET, NOP
	FormatRegImm                // LOAD Rd, imm
	FormatMemReg                // STORE [Rb, off], Rs
	FormatRegReg                // ADD Rd, Rs
	FormatAddr                  // JUMP addr, CALL addr
	FormatRegAddr               // JZ Rc, addr
	FormatImm                   // SYSCALL n
)

// Check names the per-mnemonic semantic validation rule the parser runs
// after operand parsing. Most instructions have no constraint beyond the
// generic operand-count and operand-type checks.
type Check int

const (
	CheckNone Check = iota
	CheckSyscallRange
)

// Spec is the static specification of one mnemonic.
type Spec struct {
	Mnemonic string
	Opcode   uint8
	Format   Format
	Operands []OperandKind
	Check    Check
}

// OperandCount returns the declared arity of the instruction.
func (s Spec) OperandCount() int {
	return len(s.Operands)
}

var specs = map[string]Spec{
	"NOP":     {Mnemonic: "NOP", Opcode: NOP, Format: FormatNone},
	"LOAD":    {Mnemonic: "LOAD", Opcode: LOAD, Format: FormatRegImm, Operands: []OperandKind{KindRegister, KindImmediate}},
	"STORE":   {Mnemonic: "STORE", Opcode: STORE, Format: FormatMemReg, Operands: []OperandKind{KindMemory, KindRegister}},
	"ADD":     {Mnemonic: "ADD", Opcode: ADD, Format: FormatRegReg, Operands: []OperandKind{KindRegister, KindRegister}},
	"SUB":     {Mnemonic: "SUB", Opcode: SUB, Format: FormatRegReg, Operands: []OperandKind{KindRegister, KindRegister}},
	"AND":     {Mnemonic: "AND", Opcode: AND, Format: FormatRegReg, Operands: []OperandKind{KindRegister, KindRegister}},
	"OR":      {Mnemonic: "OR", Opcode: OR, Format: FormatRegReg, Operands: []OperandKind{KindRegister, KindRegister}},
	"XOR":     {Mnemonic: "XOR", Opcode: XOR, Format: FormatRegReg, Operands: []OperandKind{KindRegister, KindRegister}},
	"JUMP":    {Mnemonic: "JUMP", Opcode: JUMP, Format: FormatAddr, Operands: []OperandKind{KindAddress}},
	"JZ":      {Mnemonic: "JZ", Opcode: JZ, Format: FormatRegAddr, Operands: []OperandKind{KindRegister, KindAddress}},
	"CALL":    {Mnemonic: "CALL", Opcode: CALL, Format: FormatAddr, Operands: []OperandKind{KindAddress}},
	"RET":     {Mnemonic: "RET", Opcode: RET, Format: FormatNone},
	"MOV":     {Mnemonic: "MOV", Opcode: MOV, Format: FormatRegReg, Operands: []OperandKind{KindRegister, KindRegister}},
	"SYSCALL": {Mnemonic: "SYSCALL", Opcode: SYSCALL, Format: FormatImm, Operands: []OperandKind{KindImmediate}, Check: CheckSyscallRange},
	"HALT":    {Mnemonic: "HALT", Opcode: HALT, Format: FormatNone},
}

// Lookup returns the specification for a mnemonic. Matching is
// case-insensitive.
func Lookup(mnemonic string) (Spec, bool) {
	spec, ok := specs[strings.ToUpper(mnemonic)]
	return spec, ok
}

// IsMnemonic reports whether the identifier names an instruction.
func IsMnemonic(ident string) bool {
	_, ok := specs[strings.ToUpper(ident)]
	return ok
}

// Mnemonics returns all known mnemonics in unspecified order.
func Mnemonics() []string {
	out := make([]string, 0, len(specs))
	for m := range specs {
		out = append(out, m)
	}
	return out
}

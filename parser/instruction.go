package parser

import (
	"strings"

	"github.com/orionrisc/orion-asm/opcode"
)

// Instruction is one parsed statement. It is created by the parser and
// mutated in exactly two ways afterwards: AddError flips Valid to false,
// and label resolution swaps unresolved address operands for resolved
// ones.
type Instruction struct {
	Mnemonic string
	Opcode   uint8
	Format   opcode.Format
	Operands []Operand
	Address  uint32
	Size     uint32 // bytes occupied; always one machine word
	Line     int
	Valid    bool
	Errors   []*Error
	Warnings []*Error
}

func newInstruction(spec opcode.Spec, line int) *Instruction {
	return &Instruction{
		Mnemonic: spec.Mnemonic,
		Opcode:   spec.Opcode,
		Format:   spec.Format,
		Size:     opcode.WordSize,
		Line:     line,
		Valid:    true,
	}
}

// AddError attaches a diagnostic and marks the instruction invalid.
func (ins *Instruction) AddError(err *Error) {
	ins.Errors = append(ins.Errors, err)
	ins.Valid = false
}

// AddWarning attaches a non-fatal diagnostic.
func (ins *Instruction) AddWarning(err *Error) {
	ins.Warnings = append(ins.Warnings, err)
}

func (ins *Instruction) String() string {
	if len(ins.Operands) == 0 {
		return ins.Mnemonic
	}
	parts := make([]string, len(ins.Operands))
	for i, op := range ins.Operands {
		parts[i] = op.String()
	}
	return ins.Mnemonic + " " + strings.Join(parts, ", ")
}

// Package codegen encodes parsed Orion instructions into 32-bit machine
// words. Encoding is best-effort: statements the parser already flagged
// still occupy their word so addresses stay stable, and an address whose
// label never resolved encodes as zero rather than failing the batch (the
// resolver has already reported it).
package codegen

import (
	"fmt"

	"github.com/orionrisc/orion-asm/memory"
	"github.com/orionrisc/orion-asm/opcode"
	"github.com/orionrisc/orion-asm/parser"
)

// EncodedInstruction is one finished machine word.
type EncodedInstruction struct {
	Address uint32
	Word    uint32
	Size    uint32
}

// Statistics counts what a generation run produced.
type Statistics struct {
	InstructionsGenerated int
	BytesGenerated        int
	RelocationsApplied    int
	OptimizationsApplied  int
}

// Validation is the post-encode consistency check over the output.
type Validation struct {
	Valid  bool
	Issues []string
}

// Result aggregates one generation run. An empty input is a valid,
// successful, zero-instruction result.
type Result struct {
	Success      bool
	Instructions []EncodedInstruction
	Errors       []*Error
	Warnings     []*Error
	Statistics   Statistics
	Validation   Validation
}

// Generator encodes instruction lists. The zero value is ready to use.
type Generator struct {
	// ElideNOPs enables the dead-NOP pre-pass: runs of consecutive NOP
	// instructions collapse to a single one and addresses are assigned
	// anew. Semantics of non-NOP instructions are untouched.
	ElideNOPs bool
}

// NewGenerator returns a generator with optimization disabled.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate encodes the instruction list at the given base address.
func (g *Generator) Generate(instructions []*parser.Instruction, base uint32) *Result {
	result := &Result{Success: true, Validation: Validation{Valid: true}}

	if g.ElideNOPs {
		instructions = elideNOPs(instructions, &result.Statistics)
	}

	addr := base
	for _, ins := range instructions {
		if ins == nil {
			result.Errors = append(result.Errors, newError(InvalidAstNode, 0, "nil instruction in input"))
			result.Success = false
			continue
		}
		// Pass 1 may have placed the instruction elsewhere (.org). Its
		// placement wins, forward or backward, so pass-1 and pass-2
		// addresses agree; validate reports any overlap that results.
		// A zero address means unassigned.
		if ins.Address != 0 {
			addr = ins.Address
		}
		ins.Address = addr

		word := g.encodeWord(ins, result)
		result.Instructions = append(result.Instructions, EncodedInstruction{
			Address: addr,
			Word:    word,
			Size:    ins.Size,
		})
		result.Statistics.InstructionsGenerated++
		result.Statistics.BytesGenerated += int(ins.Size)
		addr += ins.Size
	}

	g.validate(result)
	return result
}

// encodeWord maps the instruction's operands into the
// opcode:4|reg1:4|reg2:4|reg3:4|imm16 layout. Missing operands encode as
// zero fields; the parser has already reported why they are missing.
func (g *Generator) encodeWord(ins *parser.Instruction, result *Result) uint32 {
	word := uint32(ins.Opcode&0xF) << 28

	reg := func(i int, shift uint) {
		if i < len(ins.Operands) {
			word |= uint32(ins.Operands[i].Register&0xF) << shift
		}
	}
	imm := func(i int) {
		if i < len(ins.Operands) {
			word |= uint32(uint16(ins.Operands[i].Value))
		}
	}
	addrField := func(i int) {
		if i >= len(ins.Operands) {
			return
		}
		op := ins.Operands[i]
		if op.Unresolved() {
			// Reported by the resolver; emit a zero placeholder here.
			result.Warnings = append(result.Warnings, newError(SymbolNotFound, ins.Line,
				"address of %q unresolved, encoding zero", op.Label))
			return
		}
		word |= uint32(uint16(op.Value))
		if op.Label != "" {
			result.Statistics.RelocationsApplied++
		}
	}

	switch ins.Format {
	case opcode.FormatNone:
	case opcode.FormatRegImm:
		reg(0, 24)
		imm(1)
	case opcode.FormatMemReg:
		reg(0, 24) // memory base register
		reg(1, 20) // source register
		imm(0)     // memory offset rides in the low 16 bits
	case opcode.FormatRegReg:
		reg(0, 24)
		reg(1, 20)
	case opcode.FormatAddr:
		addrField(0)
	case opcode.FormatRegAddr:
		reg(0, 24)
		addrField(1)
	case opcode.FormatImm:
		imm(0)
	default:
		result.Errors = append(result.Errors, newError(UnsupportedOperation, ins.Line,
			"no encoding for %s", ins.Mnemonic))
		result.Success = false
	}
	return word
}

// validate checks the output invariant: addresses must advance by at
// least the instruction size, so no two words overlap.
func (g *Generator) validate(result *Result) {
	for i := 1; i < len(result.Instructions); i++ {
		prev, curr := result.Instructions[i-1], result.Instructions[i]
		if curr.Address < prev.Address+prev.Size {
			result.Validation.Valid = false
			result.Validation.Issues = append(result.Validation.Issues,
				fmt.Sprintf("address 0x%X overlaps 0x%X+%d", curr.Address, prev.Address, prev.Size))
		}
	}
	if !result.Validation.Valid {
		result.Success = false
	}
}

// elideNOPs collapses each run of consecutive NOPs into a single one.
// Survivor addresses are cleared so the encode loop renumbers the whole
// region from the base address.
func elideNOPs(instructions []*parser.Instruction, stats *Statistics) []*parser.Instruction {
	out := make([]*parser.Instruction, 0, len(instructions))
	inRun := false
	for _, ins := range instructions {
		if ins != nil && ins.Opcode == opcode.NOP && ins.Valid {
			if inRun {
				stats.OptimizationsApplied++
				continue
			}
			inRun = true
		} else {
			inRun = false
		}
		if ins != nil {
			ins.Address = 0
		}
		out = append(out, ins)
	}
	return out
}

// WriteTo materializes the encoded words into the memory sink.
func (r *Result) WriteTo(mem memory.Memory) error {
	for _, ins := range r.Instructions {
		if err := mem.WriteWord(ins.Address, ins.Word); err != nil {
			return fmt.Errorf("writing instruction at 0x%X: %w", ins.Address, err)
		}
	}
	return nil
}

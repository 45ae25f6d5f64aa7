package parser

import (
	"fmt"

	"github.com/orionrisc/orion-asm/opcode"
	"github.com/orionrisc/orion-asm/token"
)

// Operand is one typed instruction operand. The Kind field discriminates
// which of the remaining fields are meaningful:
//
//	KindRegister:  Register
//	KindImmediate: Value, Radix
//	KindAddress:   Value once Resolved; Label names the referenced symbol
//	KindMemory:    Register (base), Value (offset)
//
// Operands are never mutated after construction; label resolution produces
// a new resolved operand via Resolve.
type Operand struct {
	Kind     opcode.OperandKind
	Register uint8
	Value    int64
	Radix    token.Radix
	Label    string
	Resolved bool
}

// RegisterOperand builds a register operand.
func RegisterOperand(num uint8) Operand {
	return Operand{Kind: opcode.KindRegister, Register: num}
}

// ImmediateOperand builds an immediate operand preserving the source radix.
func ImmediateOperand(value int64, radix token.Radix) Operand {
	return Operand{Kind: opcode.KindImmediate, Value: value, Radix: radix}
}

// AddressOperand builds an already-resolved numeric address operand.
func AddressOperand(value uint32) Operand {
	return Operand{Kind: opcode.KindAddress, Value: int64(value), Resolved: true}
}

// LabelOperand builds an unresolved address operand referencing a symbol.
func LabelOperand(name string) Operand {
	return Operand{Kind: opcode.KindAddress, Label: name}
}

// MemoryOperand builds a base-register-plus-offset memory operand.
func MemoryOperand(base uint8, offset int32) Operand {
	return Operand{Kind: opcode.KindMemory, Register: base, Value: int64(offset)}
}

// Unresolved reports whether the operand is an address still awaiting
// label resolution.
func (o Operand) Unresolved() bool {
	return o.Kind == opcode.KindAddress && !o.Resolved
}

// Resolve returns a copy of an address operand with its final value. The
// symbol name is retained for diagnostics and relocation accounting.
// Resolving an already-resolved operand is a no-op.
func (o Operand) Resolve(value uint32) Operand {
	if o.Resolved {
		return o
	}
	o.Value = int64(value)
	o.Resolved = true
	return o
}

func (o Operand) String() string {
	switch o.Kind {
	case opcode.KindRegister:
		return fmt.Sprintf("R%d", o.Register)
	case opcode.KindImmediate:
		if o.Radix == token.Hex {
			return fmt.Sprintf("0x%X", o.Value)
		}
		return fmt.Sprintf("%d", o.Value)
	case opcode.KindAddress:
		if !o.Resolved {
			return o.Label
		}
		if o.Label != "" {
			return fmt.Sprintf("%s<0x%X>", o.Label, o.Value)
		}
		return fmt.Sprintf("0x%X", o.Value)
	case opcode.KindMemory:
		if o.Value != 0 {
			return fmt.Sprintf("[R%d, %d]", o.Register, o.Value)
		}
		return fmt.Sprintf("[R%d]", o.Register)
	}
	return "?"
}

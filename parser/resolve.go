package parser

import (
	"github.com/orionrisc/orion-asm/symtab"
	"github.com/orionrisc/orion-asm/token"
)

// ResolveLabels replaces every unresolved address operand with its final
// value out of the symbol table. An undefined symbol attaches a semantic
// error to the owning instruction and fails the pass as a whole, but
// resolution keeps going so every undefined symbol surfaces in one run.
// It returns the number of operands resolved and whether the pass
// succeeded. Already-resolved operands are left untouched, so the pass is
// idempotent.
func ResolveLabels(instructions []*Instruction, table *symtab.Table) (resolved int, ok bool) {
	ok = true
	for _, ins := range instructions {
		for i, op := range ins.Operands {
			if !op.Unresolved() {
				continue
			}
			value, found := table.Resolve(op.Label)
			if !found {
				ins.AddError(newError(SemanticError, token.Position{Line: ins.Line},
					"undefined label %q", op.Label))
				ok = false
				continue
			}
			ins.Operands[i] = op.Resolve(value)
			resolved++
		}
	}
	return resolved, ok
}

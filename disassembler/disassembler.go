// Package disassembler decodes Orion machine words back into assembly
// text. It is the inverse of codegen and is used for listings where the
// parsed source form is not available.
package disassembler

import (
	"fmt"

	"github.com/orionrisc/orion-asm/opcode"
)

var mnemonicByOpcode = func() map[uint8]opcode.Spec {
	m := make(map[uint8]opcode.Spec)
	for _, name := range opcode.Mnemonics() {
		spec, _ := opcode.Lookup(name)
		m[spec.Opcode] = spec
	}
	return m
}()

// Disassemble renders one machine word as an assembly statement. Unknown
// opcodes come back as a raw word directive.
func Disassemble(word uint32) string {
	op := uint8(word >> 28)
	spec, ok := mnemonicByOpcode[op]
	if !ok {
		return fmt.Sprintf(".word 0x%08X", word)
	}

	reg1 := (word >> 24) & 0xF
	reg2 := (word >> 20) & 0xF
	imm := word & 0xFFFF

	switch spec.Format {
	case opcode.FormatNone:
		return spec.Mnemonic
	case opcode.FormatRegImm:
		return fmt.Sprintf("%s R%d, %d", spec.Mnemonic, reg1, int16(imm))
	case opcode.FormatMemReg:
		if off := int16(imm); off != 0 {
			return fmt.Sprintf("%s [R%d, %d], R%d", spec.Mnemonic, reg1, off, reg2)
		}
		return fmt.Sprintf("%s [R%d], R%d", spec.Mnemonic, reg1, reg2)
	case opcode.FormatRegReg:
		return fmt.Sprintf("%s R%d, R%d", spec.Mnemonic, reg1, reg2)
	case opcode.FormatAddr:
		return fmt.Sprintf("%s 0x%X", spec.Mnemonic, imm)
	case opcode.FormatRegAddr:
		return fmt.Sprintf("%s R%d, 0x%X", spec.Mnemonic, reg1, imm)
	case opcode.FormatImm:
		return fmt.Sprintf("%s %d", spec.Mnemonic, imm)
	}
	return fmt.Sprintf(".word 0x%08X", word)
}

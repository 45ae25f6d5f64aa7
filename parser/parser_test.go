package parser

import (
	"testing"

	"github.com/orionrisc/orion-asm/lexer"
	"github.com/orionrisc/orion-asm/opcode"
	"github.com/orionrisc/orion-asm/symtab"
	"github.com/orionrisc/orion-asm/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenize(t *testing.T, source string) *token.Stream {
	t.Helper()
	tokens, errs := lexer.Tokenize(source)
	require.Empty(t, errs)
	return token.NewStream(tokens)
}

func parseOne(t *testing.T, source string) *Instruction {
	t.Helper()
	stream := tokenize(t, source)
	ins := New().ParseInstruction(stream)
	require.NotNil(t, ins)
	return ins
}

func TestParseWellFormedStatements(t *testing.T) {
	cases := []struct {
		source   string
		mnemonic string
	}{
		{"NOP", "NOP"},
		{"LOAD R1, 7", "LOAD"},
		{"STORE [R2], R3", "STORE"},
		{"ADD R0, R1", "ADD"},
		{"SUB R4, R5", "SUB"},
		{"AND R6, R7", "AND"},
		{"OR R8, R9", "OR"},
		{"XOR R10, R11", "XOR"},
		{"JUMP 0x2000", "JUMP"},
		{"JZ R1, 0x2000", "JZ"},
		{"CALL start", "CALL"},
		{"RET", "RET"},
		{"MOV R1, R2", "MOV"},
		{"SYSCALL 5", "SYSCALL"},
		{"HALT", "HALT"},
	}
	for _, tc := range cases {
		t.Run(tc.source, func(t *testing.T) {
			spec, known := opcode.Lookup(tc.mnemonic)
			require.True(t, known)

			ins := parseOne(t, tc.source)
			assert.True(t, ins.Valid, "errors: %v", ins.Errors)
			assert.Empty(t, ins.Errors)
			assert.Equal(t, spec.Opcode, ins.Opcode)
			assert.Equal(t, spec.OperandCount(), len(ins.Operands))
		})
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	ins := parseOne(t, "load r0, 42")
	assert.True(t, ins.Valid)
	assert.Equal(t, opcode.LOAD, ins.Opcode)
}

func TestUnknownMnemonic(t *testing.T) {
	stream := tokenize(t, "BOGUS R0, R1\nHALT")
	p := New()

	ins := p.ParseInstruction(stream)
	assert.False(t, ins.Valid)
	require.Len(t, ins.Errors, 1)
	assert.Equal(t, InvalidInstruction, ins.Errors[0].Kind)

	// Recovery leaves the stream at the next statement.
	next, ok := stream.SkipComments()
	require.True(t, ok)
	assert.Equal(t, "HALT", next.Text)
}

func TestInvalidRegister(t *testing.T) {
	// R16 does not lex as a register on a 16-register machine.
	ins := parseOne(t, "ADD R0, R16")
	assert.False(t, ins.Valid)
	require.Len(t, ins.Errors, 1)
	assert.Equal(t, InvalidRegister, ins.Errors[0].Kind)

	// An external tokenizer may still hand over an out-of-range register
	// token; the parser bounds-checks it regardless.
	stream := token.NewStream([]token.Token{
		{Kind: token.Instruction, Text: "ADD"},
		{Kind: token.Register, Text: "R16", Value: 16},
		{Kind: token.Separator, Sub: ","},
		{Kind: token.Register, Text: "R1", Value: 1},
		{Kind: token.End},
	})
	ins = New().ParseInstruction(stream)
	assert.False(t, ins.Valid)
	require.NotEmpty(t, ins.Errors)
	assert.Equal(t, InvalidRegister, ins.Errors[0].Kind)
}

func TestImmediateRange(t *testing.T) {
	for _, source := range []string{"LOAD R0, 65536", "LOAD R0, -32769"} {
		ins := parseOne(t, source)
		assert.False(t, ins.Valid, source)
		require.NotEmpty(t, ins.Errors, source)
		assert.Equal(t, InvalidImmediate, ins.Errors[0].Kind, source)
	}
	for _, source := range []string{"LOAD R0, 65535", "LOAD R0, -32768"} {
		ins := parseOne(t, source)
		assert.True(t, ins.Valid, source)
	}
}

func TestAddressOperandForms(t *testing.T) {
	ins := parseOne(t, "JUMP main")
	require.True(t, len(ins.Operands) == 1)
	assert.True(t, ins.Operands[0].Unresolved())
	assert.Equal(t, "main", ins.Operands[0].Label)

	ins = parseOne(t, "JUMP 0x2000")
	require.True(t, len(ins.Operands) == 1)
	assert.False(t, ins.Operands[0].Unresolved())
	assert.Equal(t, int64(0x2000), ins.Operands[0].Value)

	ins = parseOne(t, "JUMP R3")
	assert.False(t, ins.Valid)
	require.NotEmpty(t, ins.Errors)
	assert.Equal(t, InvalidAddress, ins.Errors[0].Kind)
}

func TestMemoryOperand(t *testing.T) {
	ins := parseOne(t, "STORE [R2], R3")
	require.True(t, ins.Valid, "errors: %v", ins.Errors)
	mem := ins.Operands[0]
	assert.Equal(t, opcode.KindMemory, mem.Kind)
	assert.Equal(t, uint8(2), mem.Register)
	assert.Equal(t, int64(0), mem.Value)

	ins = parseOne(t, "STORE [R2, -4], R3")
	require.True(t, ins.Valid, "errors: %v", ins.Errors)
	assert.Equal(t, int64(-4), ins.Operands[0].Value)

	ins = parseOne(t, "STORE R2, R3")
	assert.False(t, ins.Valid)
	assert.Equal(t, SyntaxError, ins.Errors[0].Kind)

	ins = parseOne(t, "STORE [42], R3")
	assert.False(t, ins.Valid)
	assert.Equal(t, InvalidRegister, ins.Errors[0].Kind)

	ins = parseOne(t, "STORE [R2, R3], R4")
	assert.False(t, ins.Valid)
	assert.Equal(t, InvalidImmediate, ins.Errors[0].Kind)
}

func TestMissingOperand(t *testing.T) {
	ins := parseOne(t, "ADD R0")
	assert.False(t, ins.Valid)
	require.NotEmpty(t, ins.Errors)
	assert.Equal(t, MissingOperand, ins.Errors[0].Kind)
	// The partial operand list is retained.
	assert.Len(t, ins.Operands, 1)
}

func TestMissingSeparator(t *testing.T) {
	ins := parseOne(t, "ADD R0 R1")
	assert.False(t, ins.Valid)
	require.NotEmpty(t, ins.Errors)
	assert.Equal(t, SyntaxError, ins.Errors[0].Kind)
}

func TestExtraOperandWarning(t *testing.T) {
	ins := parseOne(t, "HALT 5")
	assert.True(t, ins.Valid)
	assert.Empty(t, ins.Errors)
	require.Len(t, ins.Warnings, 1)
	assert.Equal(t, ExtraOperand, ins.Warnings[0].Kind)

	ins = parseOne(t, "ADD R0, R1, R2")
	assert.True(t, ins.Valid)
	require.Len(t, ins.Warnings, 1)
}

func TestSyscallRange(t *testing.T) {
	ins := parseOne(t, "SYSCALL 5")
	assert.True(t, ins.Valid)

	ins = parseOne(t, "SYSCALL 255")
	assert.True(t, ins.Valid)

	// Out of range still yields a parsed instruction, just an invalid one.
	ins = parseOne(t, "SYSCALL 300")
	assert.Equal(t, "SYSCALL", ins.Mnemonic)
	assert.False(t, ins.Valid)
	require.Len(t, ins.Errors, 1)
	assert.Equal(t, InvalidImmediate, ins.Errors[0].Kind)
}

func TestCommentsSkippedInsideStatement(t *testing.T) {
	ins := parseOne(t, "LOAD R0, 42 ; the answer")
	assert.True(t, ins.Valid)
	assert.Empty(t, ins.Warnings)
}

func TestBoundedRecovery(t *testing.T) {
	// A malformed statement longer than the skip bound must not hang and
	// must not consume more than the bound.
	tokens := []token.Token{{Kind: token.Instruction, Text: "BOGUS"}}
	for i := 0; i < 500; i++ {
		tokens = append(tokens, token.Token{Kind: token.Label, Text: "x"})
	}
	stream := token.NewStream(tokens)

	p := &Parser{MaxRecoverySkip: 10}
	ins := p.ParseInstruction(stream)
	assert.False(t, ins.Valid)
	assert.LessOrEqual(t, stream.Pos(), 11)
}

func TestResolveLabels(t *testing.T) {
	table := symtab.New()
	table.Add("main", symtab.KindLabel, 0x1000)

	jump := parseOne(t, "JUMP main")
	call := parseOne(t, "CALL missing")

	resolved, ok := ResolveLabels([]*Instruction{jump, call}, table)
	assert.False(t, ok)
	assert.Equal(t, 1, resolved)

	assert.True(t, jump.Valid)
	assert.False(t, jump.Operands[0].Unresolved())
	assert.Equal(t, int64(0x1000), jump.Operands[0].Value)
	// The symbol name is kept for diagnostics.
	assert.Equal(t, "main", jump.Operands[0].Label)

	assert.False(t, call.Valid)
	require.Len(t, call.Errors, 1)
	assert.Equal(t, SemanticError, call.Errors[0].Kind)
	assert.Contains(t, call.Errors[0].Error(), "missing")
}

func TestResolveLabelsIsIdempotent(t *testing.T) {
	table := symtab.New()
	table.Add("main", symtab.KindLabel, 0x1000)

	jump := parseOne(t, "JUMP main")
	ResolveLabels([]*Instruction{jump}, table)
	first := jump.Operands[0]

	resolved, ok := ResolveLabels([]*Instruction{jump}, table)
	assert.True(t, ok)
	assert.Equal(t, 0, resolved)
	assert.Equal(t, first, jump.Operands[0])
}

func TestOperandString(t *testing.T) {
	assert.Equal(t, "R3", RegisterOperand(3).String())
	assert.Equal(t, "42", ImmediateOperand(42, token.Decimal).String())
	assert.Equal(t, "0x2A", ImmediateOperand(42, token.Hex).String())
	assert.Equal(t, "main", LabelOperand("main").String())
	assert.Equal(t, "[R2, -4]", MemoryOperand(2, -4).String())
	assert.Equal(t, "[R2]", MemoryOperand(2, 0).String())
}

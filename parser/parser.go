// Package parser implements the recursive-descent instruction parser of
// the Orion assembler. It consumes a token stream statement by statement,
// validating each instruction against the static specification table in
// the opcode package and recovering locally from malformed input so one
// bad line never aborts a run.
package parser

import (
	"github.com/orionrisc/orion-asm/opcode"
	"github.com/orionrisc/orion-asm/token"
)

// DefaultMaxRecoverySkip bounds how many tokens error recovery may
// consume while searching for the end of a malformed statement. The bound
// is what guarantees termination on arbitrarily broken input.
const DefaultMaxRecoverySkip = 64

// Parser turns instruction statements into Instruction values.
type Parser struct {
	// MaxRecoverySkip overrides DefaultMaxRecoverySkip when positive.
	MaxRecoverySkip int
}

// New returns a parser with default configuration.
func New() *Parser {
	return &Parser{}
}

func (p *Parser) maxSkip() int {
	if p.MaxRecoverySkip > 0 {
		return p.MaxRecoverySkip
	}
	return DefaultMaxRecoverySkip
}

// ParseInstruction parses one instruction statement starting at the
// current stream position and consumes the stream through the statement's
// End token. It always returns an instruction; malformed statements come
// back with Valid == false and the diagnostics attached. A panic while
// parsing is converted into a statement-local syntax error.
func (p *Parser) ParseInstruction(s *token.Stream) (ins *Instruction) {
	mnemonicTok, ok := s.Read()
	if !ok {
		ins = &Instruction{Size: opcode.WordSize, Valid: true}
		ins.AddError(newError(UnexpectedToken, token.Position{}, "statement expected"))
		return ins
	}

	defer func() {
		if r := recover(); r != nil {
			if ins == nil {
				ins = &Instruction{Mnemonic: mnemonicTok.Text, Size: opcode.WordSize, Line: mnemonicTok.Pos.Line, Valid: true}
			}
			ins.AddError(newError(SyntaxError, mnemonicTok.Pos, "internal parse failure: %v", r))
			p.SkipToEnd(s)
		}
	}()

	// A Label token here is an identifier that did not lex as a known
	// mnemonic; it goes through the same lookup so it reports as an
	// unknown instruction rather than a generic token mismatch.
	if mnemonicTok.Kind != token.Instruction && mnemonicTok.Kind != token.Label {
		ins = &Instruction{Mnemonic: mnemonicTok.Text, Size: opcode.WordSize, Line: mnemonicTok.Pos.Line, Valid: true}
		ins.AddError(newTokenError(UnexpectedToken, mnemonicTok, "expected instruction, found %s", mnemonicTok.Kind))
		p.SkipToEnd(s)
		return ins
	}

	spec, known := opcode.Lookup(mnemonicTok.Text)
	if !known {
		ins = &Instruction{Mnemonic: mnemonicTok.Text, Size: opcode.WordSize, Line: mnemonicTok.Pos.Line, Valid: true}
		ins.AddError(newTokenError(InvalidInstruction, mnemonicTok, "unknown mnemonic %q", mnemonicTok.Text))
		p.SkipToEnd(s)
		return ins
	}

	ins = newInstruction(spec, mnemonicTok.Pos.Line)
	p.parseOperands(s, ins, spec)

	// Anything left before the statement end is surplus. Skipped without a
	// warning when operand parsing already failed: the leftovers are part
	// of the malformed statement, not extra operands.
	if tok, ok := s.SkipComments(); ok && tok.Kind != token.End && ins.Valid {
		ins.AddWarning(newTokenError(ExtraOperand, tok, "surplus operand %q", tok.Text))
	}
	p.SkipToEnd(s)

	p.validate(ins, spec)
	return ins
}

// parseOperands reads exactly the declared operand list, comma-separated.
// The first failure aborts operand parsing for the statement; the partial
// operand list collected so far is retained on the instruction.
func (p *Parser) parseOperands(s *token.Stream, ins *Instruction, spec opcode.Spec) {
	for i, kind := range spec.Operands {
		if i > 0 {
			tok, ok := s.SkipComments()
			if !ok || tok.Kind == token.End {
				ins.AddError(newError(MissingOperand, tok.Pos, "%s expects %d operands, found %d", spec.Mnemonic, spec.OperandCount(), i))
				return
			}
			if !tok.IsSeparator(",") {
				ins.AddError(newTokenError(SyntaxError, tok, "expected ',' between operands"))
				return
			}
			s.Read()
		}

		tok, ok := s.SkipComments()
		if !ok || tok.Kind == token.End {
			ins.AddError(newError(MissingOperand, tok.Pos, "%s expects %d operands, found %d", spec.Mnemonic, spec.OperandCount(), i))
			return
		}

		operand, err := p.parseOperand(s, kind)
		if err != nil {
			ins.AddError(err)
			return
		}
		ins.Operands = append(ins.Operands, operand)
	}
}

// parseOperand parses a single operand of the required kind.
func (p *Parser) parseOperand(s *token.Stream, kind opcode.OperandKind) (Operand, *Error) {
	switch kind {
	case opcode.KindRegister:
		return p.parseRegister(s)
	case opcode.KindImmediate:
		return p.parseImmediate(s)
	case opcode.KindAddress:
		return p.parseAddress(s)
	case opcode.KindMemory:
		return p.parseMemory(s)
	}
	tok, _ := s.Peek(0)
	return Operand{}, newTokenError(InvalidOperand, tok, "unsupported operand kind")
}

func (p *Parser) parseRegister(s *token.Stream) (Operand, *Error) {
	tok, _ := s.Read()
	if tok.Kind != token.Register {
		return Operand{}, newTokenError(InvalidRegister, tok, "expected register, found %s", tok.Kind)
	}
	if tok.Value < 0 || tok.Value >= opcode.NumRegisters {
		return Operand{}, newTokenError(InvalidRegister, tok, "register R%d out of range 0..%d", tok.Value, opcode.NumRegisters-1)
	}
	return RegisterOperand(uint8(tok.Value)), nil
}

func (p *Parser) parseImmediate(s *token.Stream) (Operand, *Error) {
	tok, _ := s.Read()
	if tok.Kind != token.Immediate {
		return Operand{}, newTokenError(InvalidImmediate, tok, "expected immediate, found %s", tok.Kind)
	}
	if tok.Value < opcode.ImmediateMin || tok.Value > opcode.ImmediateMax {
		return Operand{}, newTokenError(InvalidImmediate, tok, "immediate %d outside %d..%d", tok.Value, opcode.ImmediateMin, opcode.ImmediateMax)
	}
	return ImmediateOperand(tok.Value, tok.Radix), nil
}

// parseAddress accepts either a label reference or a numeric literal.
func (p *Parser) parseAddress(s *token.Stream) (Operand, *Error) {
	tok, _ := s.Read()
	switch tok.Kind {
	case token.Label:
		return LabelOperand(tok.Text), nil
	case token.Immediate:
		if tok.Value < 0 {
			return Operand{}, newTokenError(InvalidAddress, tok, "address cannot be negative")
		}
		return AddressOperand(uint32(tok.Value)), nil
	default:
		return Operand{}, newTokenError(InvalidAddress, tok, "expected label or numeric address, found %s", tok.Kind)
	}
}

// parseMemory parses '[' register (',' immediate)? ']'.
func (p *Parser) parseMemory(s *token.Stream) (Operand, *Error) {
	tok, _ := s.Read()
	if !tok.IsSeparator("[") {
		return Operand{}, newTokenError(SyntaxError, tok, "expected '[' to open memory operand")
	}

	base, err := p.parseRegister(s)
	if err != nil {
		return Operand{}, err
	}

	var offset int32
	tok, ok := s.Peek(0)
	if ok && tok.IsSeparator(",") {
		s.Read()
		imm, err := p.parseImmediate(s)
		if err != nil {
			return Operand{}, err
		}
		offset = int32(imm.Value)
	}

	tok, _ = s.Read()
	if !tok.IsSeparator("]") {
		return Operand{}, newTokenError(SyntaxError, tok, "expected ']' to close memory operand")
	}
	return MemoryOperand(base.Register, offset), nil
}

// validate runs the generic operand-count check plus the mnemonic's named
// validation rule.
func (p *Parser) validate(ins *Instruction, spec opcode.Spec) {
	if ins.Valid && len(ins.Operands) != spec.OperandCount() {
		ins.AddError(newError(MissingOperand, token.Position{Line: ins.Line},
			"%s expects %d operands, found %d", spec.Mnemonic, spec.OperandCount(), len(ins.Operands)))
	}

	switch spec.Check {
	case opcode.CheckSyscallRange:
		if len(ins.Operands) == 1 {
			if n := ins.Operands[0].Value; n < 0 || n > opcode.SyscallMax {
				ins.AddError(newError(InvalidImmediate, token.Position{Line: ins.Line},
					"syscall number %d outside 0..%d", n, opcode.SyscallMax))
			}
		}
	case opcode.CheckNone:
	}
}

// SkipToEnd consumes tokens through the next statement End, bounded by
// the configured recovery skip so a malformed stream cannot loop forever.
// Statement-level consumers recover past input the parser never saw, such
// as malformed directives, through the same bound.
func (p *Parser) SkipToEnd(s *token.Stream) {
	for skipped := 0; skipped < p.maxSkip(); skipped++ {
		tok, ok := s.Read()
		if !ok || tok.Kind == token.End {
			return
		}
	}
}

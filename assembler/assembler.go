// Package assembler orchestrates the two passes of the Orion assembler.
// Pass 1 walks the token sequence once, collecting label and equate
// definitions into the symbol table while the instruction parser validates
// each statement. Pass 2 resolves label references against the completed
// table and hands the instruction list to the code generator.
package assembler

import (
	"fmt"
	"time"

	"github.com/orionrisc/orion-asm/codegen"
	"github.com/orionrisc/orion-asm/lexer"
	"github.com/orionrisc/orion-asm/memory"
	"github.com/orionrisc/orion-asm/opcode"
	"github.com/orionrisc/orion-asm/parser"
	"github.com/orionrisc/orion-asm/profile"
	"github.com/orionrisc/orion-asm/symtab"
	"github.com/orionrisc/orion-asm/token"
)

// Statistics aggregates counters and timing for one assembly run.
type Statistics struct {
	Pass1Time             time.Duration
	Pass2Time             time.Duration
	TotalTime             time.Duration
	SourceLines           int
	InstructionsGenerated int
	SymbolsFound          int
	BytesGenerated        int
	RelocationsApplied    int
	OptimizationsApplied  int
}

// Result is the outcome of one assembly run: the union of pass 1 and
// pass 2 diagnostics plus everything that was produced.
type Result struct {
	Success      bool
	Errors       []error
	Warnings     []error
	Parsed       []*parser.Instruction
	Instructions []codegen.EncodedInstruction
	Symbols      []symtab.Entry
	Statistics   Statistics
}

// WriteTo materializes the generated words into the memory sink.
func (r *Result) WriteTo(mem memory.Memory) error {
	for _, ins := range r.Instructions {
		if err := mem.WriteWord(ins.Address, ins.Word); err != nil {
			return err
		}
	}
	return nil
}

// Assembler is a single-use-per-call two-pass assembler. One instance may
// be reused across runs; each run owns its own stream, table and lists.
type Assembler struct {
	profile *profile.MachineProfile
	parser  *parser.Parser
}

// New returns an assembler for the given machine profile. A nil profile
// selects the default machine.
func New(prof *profile.MachineProfile) *Assembler {
	if prof == nil {
		prof = profile.Default()
	}
	return &Assembler{profile: prof, parser: parser.New()}
}

// Assemble tokenizes the source text and assembles it at the base
// address. A zero base selects the profile's base address.
func (a *Assembler) Assemble(source string, base uint32) *Result {
	tokens, lexErrs := lexer.Tokenize(source)
	result := a.AssembleTokens(tokens, base)
	if len(lexErrs) > 0 {
		result.Errors = append(lexErrs, result.Errors...)
		result.Success = false
	}
	return result
}

// AssembleTokens assembles an already-produced token sequence.
func (a *Assembler) AssembleTokens(tokens []token.Token, base uint32) *Result {
	if base == 0 {
		base = a.profile.BaseAddress
	}

	start := time.Now()
	result := &Result{}
	table := symtab.New()
	for _, t := range tokens {
		if t.Kind == token.End {
			result.Statistics.SourceLines++
		}
	}

	instructions := a.pass1(tokens, base, table, result)
	result.Statistics.Pass1Time = time.Since(start)

	pass2Start := time.Now()
	relocations, resolveOK := parser.ResolveLabels(instructions, table)

	gen := codegen.NewGenerator()
	gen.ElideNOPs = a.profile.ElideNOPs
	genResult := gen.Generate(instructions, base)
	result.Statistics.Pass2Time = time.Since(pass2Start)

	result.Parsed = instructions
	result.Instructions = genResult.Instructions
	result.Symbols = table.Entries()

	for _, ins := range instructions {
		for _, err := range ins.Errors {
			result.Errors = append(result.Errors, err)
		}
		for _, warn := range ins.Warnings {
			result.Warnings = append(result.Warnings, warn)
		}
	}
	for _, err := range genResult.Errors {
		result.Errors = append(result.Errors, err)
	}
	for _, warn := range genResult.Warnings {
		result.Warnings = append(result.Warnings, warn)
	}
	for _, issue := range genResult.Validation.Issues {
		result.Errors = append(result.Errors, fmt.Errorf("invalid image: %s", issue))
	}

	result.Statistics.TotalTime = time.Since(start)
	result.Statistics.SymbolsFound = table.Len()
	result.Statistics.InstructionsGenerated = genResult.Statistics.InstructionsGenerated
	result.Statistics.BytesGenerated = genResult.Statistics.BytesGenerated
	result.Statistics.RelocationsApplied = relocations
	result.Statistics.OptimizationsApplied = genResult.Statistics.OptimizationsApplied

	result.Success = len(result.Errors) == 0 && resolveOK && genResult.Success
	return result
}

// pass1 walks the token stream once, populating the symbol table and
// parsing instruction statements. The location counter advances by one
// word for every instruction statement regardless of whether its operands
// parsed, so addresses stay stable for pass 2.
func (a *Assembler) pass1(tokens []token.Token, base uint32, table *symtab.Table, result *Result) []*parser.Instruction {
	var instructions []*parser.Instruction
	stream := token.NewStream(tokens)
	counter := base

	for !stream.IsEnd() {
		tok, ok := stream.SkipComments()
		if !ok {
			break
		}

		switch tok.Kind {
		case token.End:
			stream.Read()

		case token.Label:
			// A label followed by ':' is a definition at the current
			// location counter; anything else is a stray identifier the
			// parser will reject and recover from.
			if next, ok := stream.Peek(1); ok && next.IsSeparator(":") {
				stream.Read()
				stream.Read()
				if !table.Add(tok.Text, symtab.KindLabel, counter) {
					result.Errors = append(result.Errors,
						&parser.Error{Kind: parser.SemanticError, Pos: tok.Pos,
							Message: "duplicate symbol " + tok.Text})
				}
				continue
			}
			instructions = append(instructions, a.parseStatement(stream, &counter))

		case token.Directive:
			a.directive(stream, tok, table, &counter, result)

		case token.Instruction:
			instructions = append(instructions, a.parseStatement(stream, &counter))

		default:
			// Statement starting with something that can never begin one;
			// the parser reports and recovers.
			instructions = append(instructions, a.parseStatement(stream, &counter))
		}
	}
	return instructions
}

func (a *Assembler) parseStatement(stream *token.Stream, counter *uint32) *parser.Instruction {
	ins := a.parser.ParseInstruction(stream)
	ins.Address = *counter
	*counter += opcode.WordSize
	return ins
}

// directive handles the assembler directives pass 1 owns: .equ defines a
// compile-time constant and .org moves the location counter.
func (a *Assembler) directive(stream *token.Stream, tok token.Token, table *symtab.Table, counter *uint32, result *Result) {
	stream.Read()

	fail := func(kind parser.ErrorKind, msg string) {
		result.Errors = append(result.Errors, &parser.Error{Kind: kind, Pos: tok.Pos, Message: msg})
		a.parser.SkipToEnd(stream)
	}

	switch tok.Sub {
	case "equ":
		name, ok := stream.Read()
		if !ok || name.Kind != token.Label {
			fail(parser.SyntaxError, ".equ expects a symbol name")
			return
		}
		value, ok := stream.Read()
		if !ok || value.Kind != token.Immediate || value.Value < 0 {
			fail(parser.SyntaxError, ".equ expects a non-negative value")
			return
		}
		if !table.Add(name.Text, symtab.KindEquate, uint32(value.Value)) {
			fail(parser.SemanticError, "duplicate symbol "+name.Text)
			return
		}
	case "org":
		value, ok := stream.Read()
		if !ok || value.Kind != token.Immediate || value.Value < 0 {
			fail(parser.SyntaxError, ".org expects a non-negative address")
			return
		}
		*counter = uint32(value.Value)
	default:
		fail(parser.SyntaxError, "unknown directive "+tok.Text)
		return
	}
	a.parser.SkipToEnd(stream)
}

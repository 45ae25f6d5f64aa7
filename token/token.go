// Package token defines the lexical tokens of Orion assembly and the
// stream abstraction the parser consumes them through.
package token

import "fmt"

// Kind classifies a lexical token.
type Kind int

const (
	Instruction Kind = iota // mnemonic such as LOAD or JUMP
	Register                // R0..R15
	Immediate               // numeric literal, decimal or hex
	Label                   // identifier, definition or reference
	Directive               // .equ, .org, ...
	Separator               // ',' '[' ']' ':'
	Comment                 // ; to end of line
	End                     // end of statement (newline or EOF)
)

var kindNames = map[Kind]string{
	Instruction: "instruction",
	Register:    "register",
	Immediate:   "immediate",
	Label:       "label",
	Directive:   "directive",
	Separator:   "separator",
	Comment:     "comment",
	End:         "end",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Radix records how an immediate literal was written in the source.
type Radix int

const (
	Decimal Radix = iota
	Hex
)

// Position locates a token in the source text. Lines and columns are
// 1-based; a zero Position means the location is unknown.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexical unit produced by the tokenizer. Tokens are
// immutable once produced.
type Token struct {
	Kind  Kind
	Text  string   // source spelling
	Value int64    // numeric value for Immediate and Register tokens
	Radix Radix    // literal radix for Immediate tokens
	Sub   string   // subtype, e.g. the separator character or directive name
	Pos   Position // source position
}

// IsSeparator reports whether the token is the given separator character.
func (t Token) IsSeparator(s string) bool {
	return t.Kind == Separator && t.Sub == s
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
}

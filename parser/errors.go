package parser

import (
	"fmt"

	"github.com/orionrisc/orion-asm/token"
)

// ErrorKind classifies a parser-level diagnostic.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	InvalidInstruction
	InvalidOperand
	MissingOperand
	ExtraOperand
	InvalidRegister
	InvalidImmediate
	InvalidAddress
	SyntaxError
	SemanticError
)

var errorKindNames = map[ErrorKind]string{
	UnexpectedToken:    "unexpected token",
	InvalidInstruction: "invalid instruction",
	InvalidOperand:     "invalid operand",
	MissingOperand:     "missing operand",
	ExtraOperand:       "extra operand",
	InvalidRegister:    "invalid register",
	InvalidImmediate:   "invalid immediate",
	InvalidAddress:     "invalid address",
	SyntaxError:        "syntax error",
	SemanticError:      "semantic error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// Error is one structured diagnostic attached to a statement. Token is
// the offending token when one is known.
type Error struct {
	Kind    ErrorKind
	Pos     token.Position
	Message string
	Token   *token.Token
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Message)
}

func newError(kind ErrorKind, pos token.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func newTokenError(kind ErrorKind, tok token.Token, format string, args ...any) *Error {
	t := tok
	return &Error{Kind: kind, Pos: tok.Pos, Message: fmt.Sprintf(format, args...), Token: &t}
}

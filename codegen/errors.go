package codegen

import "fmt"

// ErrorKind classifies a code-generation diagnostic. The set is shared
// with the wider Orion toolchain; the assembler itself only emits
// SymbolNotFound, UnsupportedOperation and MemoryAllocationFailed.
type ErrorKind int

const (
	InvalidAstNode ErrorKind = iota
	SymbolNotFound
	RegisterExhausted
	MemoryAllocationFailed
	UnsupportedOperation
	StackOverflow
	InvalidFunctionCall
	TypeGenerationError
)

var errorKindNames = map[ErrorKind]string{
	InvalidAstNode:         "invalid node",
	SymbolNotFound:         "symbol not found",
	RegisterExhausted:      "registers exhausted",
	MemoryAllocationFailed: "memory allocation failed",
	UnsupportedOperation:   "unsupported operation",
	StackOverflow:          "stack overflow",
	InvalidFunctionCall:    "invalid function call",
	TypeGenerationError:    "type generation error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("error(%d)", int(k))
}

// Error is one structured code-generation diagnostic.
type Error struct {
	Kind    ErrorKind
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

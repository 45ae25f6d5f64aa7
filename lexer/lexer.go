// Package lexer turns Orion assembly source text into the ordered token
// sequence the parser consumes. It is deliberately thin: classification
// beyond the lexical level (operand typing, arity, ranges) belongs to the
// parser.
package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/orionrisc/orion-asm/opcode"
	"github.com/orionrisc/orion-asm/token"
)

var registerNames = func() map[string]int64 {
	m := make(map[string]int64, opcode.NumRegisters)
	for i := 0; i < opcode.NumRegisters; i++ {
		m[fmt.Sprintf("R%d", i)] = int64(i)
	}
	return m
}()

// Tokenize scans the whole source and returns the token sequence plus any
// lexical errors. Scanning continues past errors so every problem is
// reported in one run; the offending character is dropped. An End token is
// emitted for every statement boundary, including the final one.
func Tokenize(source string) ([]token.Token, []error) {
	var tokens []token.Token
	var errs []error

	lines := strings.Split(source, "\n")
	for i, line := range lines {
		toks, lineErrs := tokenizeLine(line, i+1)
		tokens = append(tokens, toks...)
		errs = append(errs, lineErrs...)
		tokens = append(tokens, token.Token{
			Kind: token.End,
			Pos:  token.Position{Line: i + 1, Column: len(line) + 1},
		})
	}
	return tokens, errs
}

func tokenizeLine(line string, lineNum int) ([]token.Token, []error) {
	var tokens []token.Token
	var errs []error

	runes := []rune(line)
	col := 0
	for col < len(runes) {
		ch := runes[col]
		pos := token.Position{Line: lineNum, Column: col + 1}

		switch {
		case unicode.IsSpace(ch):
			col++

		case ch == ';':
			tokens = append(tokens, token.Token{
				Kind: token.Comment,
				Text: string(runes[col:]),
				Pos:  pos,
			})
			col = len(runes)

		case ch == ',' || ch == '[' || ch == ']' || ch == ':':
			tokens = append(tokens, token.Token{
				Kind: token.Separator,
				Text: string(ch),
				Sub:  string(ch),
				Pos:  pos,
			})
			col++

		case ch == '.':
			start := col
			col++
			for col < len(runes) && isIdentRune(runes[col]) {
				col++
			}
			text := string(runes[start:col])
			if len(text) == 1 {
				errs = append(errs, fmt.Errorf("%s: bare '.' is not a directive", pos))
				continue
			}
			tokens = append(tokens, token.Token{
				Kind: token.Directive,
				Text: text,
				Sub:  strings.ToLower(text[1:]),
				Pos:  pos,
			})

		case ch == '-' || unicode.IsDigit(ch):
			tok, next, err := scanNumber(runes, col, pos)
			if err != nil {
				errs = append(errs, err)
				col = next
				continue
			}
			tokens = append(tokens, tok)
			col = next

		case unicode.IsLetter(ch) || ch == '_':
			start := col
			for col < len(runes) && isIdentRune(runes[col]) {
				col++
			}
			text := string(runes[start:col])
			tokens = append(tokens, classifyIdent(text, pos))

		default:
			errs = append(errs, fmt.Errorf("%s: unexpected character %q", pos, ch))
			col++
		}
	}
	return tokens, errs
}

func isIdentRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

// classifyIdent decides between register, mnemonic and label identifiers.
func classifyIdent(text string, pos token.Position) token.Token {
	if num, ok := registerNames[strings.ToUpper(text)]; ok {
		return token.Token{Kind: token.Register, Text: text, Value: num, Pos: pos}
	}
	if opcode.IsMnemonic(text) {
		return token.Token{Kind: token.Instruction, Text: text, Pos: pos}
	}
	return token.Token{Kind: token.Label, Text: text, Pos: pos}
}

func scanNumber(runes []rune, col int, pos token.Position) (token.Token, int, error) {
	start := col
	if runes[col] == '-' {
		col++
		if col >= len(runes) || !unicode.IsDigit(runes[col]) {
			return token.Token{}, col, fmt.Errorf("%s: '-' must start a numeric literal", pos)
		}
	}

	radix := token.Decimal
	base := 10
	if col+1 < len(runes) && runes[col] == '0' && (runes[col+1] == 'x' || runes[col+1] == 'X') {
		radix = token.Hex
		base = 16
		col += 2
	}
	digitStart := col
	for col < len(runes) && isNumRune(runes[col], base) {
		col++
	}
	if col == digitStart && radix == token.Hex {
		return token.Token{}, col, fmt.Errorf("%s: hex literal without digits", pos)
	}
	text := string(runes[start:col])

	digits := text
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}
	if radix == token.Hex {
		digits = digits[2:]
	}
	value, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return token.Token{}, col, fmt.Errorf("%s: invalid numeric literal %q", pos, text)
	}
	if negative {
		value = -value
	}
	return token.Token{
		Kind:  token.Immediate,
		Text:  text,
		Value: value,
		Radix: radix,
		Pos:   pos,
	}, col, nil
}

func isNumRune(ch rune, base int) bool {
	if base == 16 {
		return unicode.IsDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
	}
	return unicode.IsDigit(ch)
}

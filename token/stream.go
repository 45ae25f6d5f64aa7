package token

// Stream is a sequential reader over an ordered token sequence with
// arbitrary lookahead. The position is the only mutable state; saving and
// restoring it gives the parser bounded backtracking. Out-of-range access
// never panics.
type Stream struct {
	tokens []Token
	pos    int
}

// NewStream wraps an already-produced token sequence.
func NewStream(tokens []Token) *Stream {
	return &Stream{tokens: tokens}
}

// Peek returns the token at the given offset from the current position
// without consuming anything.
func (s *Stream) Peek(offset int) (Token, bool) {
	idx := s.pos + offset
	if idx < 0 || idx >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[idx], true
}

// Read consumes and returns the next token.
func (s *Stream) Read() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}

// IsEnd reports whether the stream is exhausted.
func (s *Stream) IsEnd() bool {
	return s.pos >= len(s.tokens)
}

// Lookahead returns up to n upcoming tokens without consuming them.
func (s *Stream) Lookahead(n int) []Token {
	if n <= 0 || s.pos >= len(s.tokens) {
		return nil
	}
	end := s.pos + n
	if end > len(s.tokens) {
		end = len(s.tokens)
	}
	out := make([]Token, end-s.pos)
	copy(out, s.tokens[s.pos:end])
	return out
}

// SkipComments consumes Comment tokens and returns the next meaningful
// token without consuming it.
func (s *Stream) SkipComments() (Token, bool) {
	for {
		tok, ok := s.Peek(0)
		if !ok {
			return Token{}, false
		}
		if tok.Kind != Comment {
			return tok, true
		}
		s.pos++
	}
}

// Pos returns the current stream position.
func (s *Stream) Pos() int {
	return s.pos
}

// SetPos restores a previously saved position. Values outside the valid
// range are clamped.
func (s *Stream) SetPos(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(s.tokens) {
		pos = len(s.tokens)
	}
	s.pos = pos
}

// Len returns the total number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.tokens)
}

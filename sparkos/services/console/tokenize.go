package console

import "bytes"

// Span is a bounded view into a line.
type Span struct {
	Off int
	Len int
}

// Of returns the bytes of line covered by s.
func (s Span) Of(line []byte) []byte {
	return line[s.Off : s.Off+s.Len : s.Off+s.Len]
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool { return s.Len == 0 }

// NextToken returns the token starting at cursor and the cursor for the
// following token. Tokens are separated by a single space; consecutive
// spaces produce empty tokens. The line is never modified.
//
// When no space follows, the token runs to the end of the line and the
// returned cursor is len(line).
func NextToken(line []byte, cursor int) (tok Span, next int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(line) {
		cursor = len(line)
	}

	i := bytes.IndexByte(line[cursor:], ' ')
	if i < 0 {
		return Span{Off: cursor, Len: len(line) - cursor}, len(line)
	}
	return Span{Off: cursor, Len: i}, cursor + i + 1
}

// Split tokenizes line once and returns the command token and the remainder.
func Split(line []byte) (cmd, rest []byte) {
	tok, next := NextToken(line, 0)
	return tok.Of(line), line[next:]
}

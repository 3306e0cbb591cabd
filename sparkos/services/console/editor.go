package console

import "io"

// LineCapacity is the size of the edit buffer. One slot stays reserved, so a
// line holds at most LineCapacity-1 characters.
const LineCapacity = 64

const (
	keyBEL = 0x07
	keyBS  = 0x08
	keyDEL = 0x7f
)

// eraseSeq moves the cursor left, blanks the cell, and moves left again.
const eraseSeq = "\x08 \x08"

// Input is the receive side of the serial line.
type Input interface {
	// Buffered reports how many bytes can be read without blocking.
	Buffered() int
	ReadByte() (byte, error)
}

// Editor assembles a line from single characters with destructive backspace.
//
// The buffer survives between polls; it is emptied after every completed line.
type Editor struct {
	in  Input
	out io.Writer

	buf [LineCapacity]byte
	n   int
}

// NewEditor returns an editor reading from in and echoing to out.
func NewEditor(in Input, out io.Writer) *Editor {
	return &Editor{in: in, out: out}
}

// Len returns the number of characters in the edit buffer.
func (e *Editor) Len() int { return e.n }

// Poll consumes at most one character. It returns the completed line when
// that character is a line terminator.
//
// The returned slice aliases the edit buffer and is valid until the next call
// to Poll. An empty line is a valid completed line.
func (e *Editor) Poll() ([]byte, bool) {
	if e.in == nil || e.in.Buffered() == 0 {
		return nil, false
	}
	c, err := e.in.ReadByte()
	if err != nil {
		return nil, false
	}

	switch c {
	case keyDEL, keyBS:
		if e.n > 0 {
			e.n--
			e.writeString(eraseSeq)
		}
	case keyBEL:
	case '\n', '\r':
		line := e.buf[:e.n:e.n]
		e.writeString("\n")
		e.n = 0
		return line, true
	default:
		if e.n < LineCapacity-1 {
			e.buf[e.n] = c
			e.n++
			e.write(e.buf[e.n-1 : e.n])
		}
	}
	return nil, false
}

func (e *Editor) write(b []byte) {
	if e.out == nil {
		return
	}
	_, _ = e.out.Write(b)
}

func (e *Editor) writeString(s string) {
	if e.out == nil {
		return
	}
	_, _ = io.WriteString(e.out, s)
}

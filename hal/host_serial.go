//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/creack/pty"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// SerialMode selects where the host UART is attached.
type SerialMode string

const (
	// SerialStdio attaches the UART to the process's stdin/stdout.
	SerialStdio SerialMode = "stdio"
	// SerialPTY allocates a pseudo terminal; attach with screen/picocom.
	SerialPTY SerialMode = "pty"
)

const hostRxFIFO = 256

var errRxEmpty = errors.New("serial: rx fifo empty")

type hostSerial struct {
	rx chan byte

	mu    sync.Mutex
	w     io.Writer
	onlcr bool
	wbuf  []byte

	intr      chan struct{}
	intrOnce  sync.Once
	catchIntr bool

	closers []func() error
}

func newStreamSerial(r io.Reader, w io.Writer, onlcr bool) *hostSerial {
	s := &hostSerial{
		rx:    make(chan byte, hostRxFIFO),
		w:     w,
		onlcr: onlcr,
		intr:  make(chan struct{}),
	}
	if r != nil {
		go s.readLoop(r)
	}
	return s
}

// openStdioSerial attaches the UART to stdin/stdout, switching a terminal to
// raw mode so the console sees every keystroke and does its own echo.
func openStdioSerial(raw bool, log Logger) (*hostSerial, error) {
	fd := os.Stdin.Fd()
	tty := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if !tty || !raw {
		return newStreamSerial(os.Stdin, os.Stdout, false), nil
	}

	old, err := term.MakeRaw(int(fd))
	if err != nil {
		return nil, fmt.Errorf("serial: raw mode: %w", err)
	}
	s := newStreamSerial(os.Stdin, os.Stdout, true)
	s.catchIntr = true
	s.closers = append(s.closers, func() error {
		return term.Restore(int(fd), old)
	})
	if log != nil {
		log.WriteLineString("serial: stdio (raw, ctrl-c quits)")
	}
	return s, nil
}

// openPTYSerial allocates a pseudo terminal and returns the UART attached to
// its controlling side plus the path of the terminal side.
func openPTYSerial(log Logger) (*hostSerial, string, error) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		return nil, "", fmt.Errorf("serial: open pty: %w", err)
	}
	// The terminal side stays open so reads on ptmx do not fail with EIO
	// while no client is attached.
	if _, err := term.MakeRaw(int(tty.Fd())); err != nil {
		_ = ptmx.Close()
		_ = tty.Close()
		return nil, "", fmt.Errorf("serial: pty raw mode: %w", err)
	}

	s := newStreamSerial(ptmx, ptmx, true)
	s.closers = append(s.closers, tty.Close, ptmx.Close)
	if log != nil {
		log.WriteLineString("serial: pty at " + tty.Name())
	}
	return s, tty.Name(), nil
}

func (s *hostSerial) readLoop(r io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if s.catchIntr && b == 0x03 {
				s.interrupt()
				continue
			}
			s.rx <- b
		}
		if err != nil {
			return
		}
	}
}

// inject feeds a byte into the receive FIFO as if it arrived on the wire.
// It drops the byte when the FIFO is full, like a UART overrun.
func (s *hostSerial) inject(b byte) {
	select {
	case s.rx <- b:
	default:
	}
}

// drain discards everything waiting in the receive FIFO, as a UART reset
// does.
func (s *hostSerial) drain() {
	for {
		select {
		case <-s.rx:
		default:
			return
		}
	}
}

func (s *hostSerial) interrupt() {
	s.intrOnce.Do(func() { close(s.intr) })
}

// Interrupted is closed when the operator presses ctrl-c on a raw terminal.
func (s *hostSerial) Interrupted() <-chan struct{} { return s.intr }

func (s *hostSerial) Buffered() int { return len(s.rx) }

func (s *hostSerial) ReadByte() (byte, error) {
	select {
	case b := <-s.rx:
		return b, nil
	default:
		return 0, errRxEmpty
	}
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.onlcr {
		return s.w.Write(p)
	}

	// Raw terminals have output post-processing disabled.
	s.wbuf = s.wbuf[:0]
	for _, b := range p {
		if b == '\n' {
			s.wbuf = append(s.wbuf, '\r')
		}
		s.wbuf = append(s.wbuf, b)
	}
	if _, err := s.w.Write(s.wbuf); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *hostSerial) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}

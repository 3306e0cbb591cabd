package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// ErrReset is the panic value used by host backends to unwind out of a
// reset request. Runners recover it and boot the system again.
var ErrReset = errors.New("hal: system reset")

// Serial is the console UART.
//
// Buffered reports how many received bytes can be read without blocking;
// ReadByte is only called when Buffered is non-zero. Write never appends a
// newline of its own.
type Serial interface {
	Buffered() int
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
}

// Resetter triggers a full system reset. Reset does not return.
type Resetter interface {
	Reset()
}

// Interrupts is implemented by HALs on CPUs with an interrupt controller
// that must be enabled explicitly at boot.
type Interrupts interface {
	EnableInterrupts()
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream.
//
// The tick duration is platform-defined (1ms on every backend in this tree).
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the console and the board.
type HAL interface {
	Logger() Logger
	LED() LED
	GPIO() GPIO
	Display() Display
	Time() Time
	Serial() Serial
	Resetter() Resetter
}

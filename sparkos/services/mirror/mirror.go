// Package mirror renders the console byte stream on the board display.
package mirror

import (
	"tinycon/hal"
	"tinycon/sparkos/kernel"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

const (
	fontHeight = 10
	fontOffset = 6

	// DefaultInterval is the minimum number of ticks between presents.
	DefaultInterval = 16
)

// cursorLeft is the VT100 sequence tinyterm understands for a
// non-destructive backspace.
const cursorLeft = "\x1b[D"

// Config controls the mirror.
type Config struct {
	// Interval is the minimum number of ticks between two presents.
	Interval uint64
}

// Mirror is an io.Writer that draws everything written to it on a
// framebuffer through tinyterm, and a kernel task that presents the result.
//
// Write only marks the screen dirty; Step pushes it to the panel at most
// once per Interval ticks so echo never waits on the display bus.
type Mirror struct {
	fb hal.Framebuffer
	d  *fbDisplay
	t  *tinyterm.Terminal

	interval    uint64
	dirty       bool
	presented   bool
	lastPresent uint64

	scratch []byte
}

// New returns a mirror drawing on fb. A nil framebuffer yields a mirror that
// discards its input.
func New(fb hal.Framebuffer, cfg Config) *Mirror {
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	m := &Mirror{fb: fb, interval: cfg.Interval}
	if fb != nil {
		m.d = newFBDisplay(fb)
		m.Reset()
	}
	return m
}

// Reset clears the screen and homes the cursor.
func (m *Mirror) Reset() {
	if m.fb == nil {
		return
	}
	m.t = tinyterm.NewTerminal(m.d)
	m.t.Configure(&tinyterm.Config{
		Font:              &proggy.TinySZ8pt7b,
		FontHeight:        fontHeight,
		FontOffset:        fontOffset,
		UseSoftwareScroll: true,
	})
	m.fb.ClearRGB(0, 0, 0)
	m.dirty = true
}

// Write draws p. It never fails and always reports len(p).
func (m *Mirror) Write(p []byte) (int, error) {
	if m.t == nil || len(p) == 0 {
		return len(p), nil
	}
	m.scratch = translate(m.scratch[:0], p)
	if len(m.scratch) > 0 {
		_, _ = m.t.Write(m.scratch)
		m.dirty = true
	}
	return len(p), nil
}

// Dirty reports whether drawn output is waiting to be presented.
func (m *Mirror) Dirty() bool { return m.dirty }

// Flush presents pending output immediately.
func (m *Mirror) Flush() error {
	if m.t == nil || !m.dirty {
		return nil
	}
	m.dirty = false
	return m.d.Display()
}

// Step implements kernel.Task.
func (m *Mirror) Step(ctx *kernel.Context) {
	if !m.dirty {
		return
	}
	now := ctx.NowTick()
	if m.presented && now-m.lastPresent < m.interval {
		return
	}
	m.presented = true
	m.lastPresent = now
	_ = m.Flush()
}

// translate maps the console stream onto what tinyterm can draw: backspace
// becomes a cursor-left sequence and other C0 controls are dropped.
func translate(dst, p []byte) []byte {
	for _, b := range p {
		switch {
		case b == 0x08:
			dst = append(dst, cursorLeft...)
		case b == '\n', b == '\r', b == 0x1b:
			dst = append(dst, b)
		case b < 0x20, b == 0x7f:
		default:
			dst = append(dst, b)
		}
	}
	return dst
}

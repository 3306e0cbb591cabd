//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// HostConfig selects the host simulator backends.
type HostConfig struct {
	Serial SerialMode
	// Raw puts an interactive stdin into raw mode (stdio serial only).
	Raw bool
	Log HostLogConfig

	Width  int
	Height int
}

// HostLogConfig controls where host log lines go. An empty File logs to stderr.
type HostLogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type hostHAL struct {
	logger *hostLogger
	led    *hostLED
	ledPin *ledPin
	gpio   GPIO
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	t      *hostTime
	serial *hostSerial
}

// NewHost returns a host HAL implementation. Close it to restore the terminal.
func NewHost(cfg HostConfig) (HAL, error) {
	return newHostHAL(cfg)
}

func newHostHAL(cfg HostConfig) (*hostHAL, error) {
	if cfg.Width <= 0 {
		cfg.Width = 320
	}
	if cfg.Height <= 0 {
		cfg.Height = 320
	}
	if cfg.Serial == "" {
		cfg.Serial = SerialStdio
	}

	logger := newHostLogger(cfg.Log)

	h := &hostHAL{
		logger: logger,
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		t:      newHostTime(),
	}

	switch cfg.Serial {
	case SerialStdio:
		s, err := openStdioSerial(cfg.Raw, logger)
		if err != nil {
			return nil, err
		}
		h.serial = s
		// Raw mode disables output post-processing on stderr as well.
		logger.crlf = s.catchIntr && cfg.Log.File == ""
	case SerialPTY:
		s, _, err := openPTYSerial(logger)
		if err != nil {
			return nil, err
		}
		h.serial = s
	default:
		return nil, fmt.Errorf("hal: unknown serial mode %q", cfg.Serial)
	}

	h.kbd = newHostKeyboard(h.serial)
	h.led = &hostLED{logger: logger}
	h.ledPin = newLEDPin(LEDPinName, h.led)
	h.gpio = newPinTable(h.ledPin)
	return h, nil
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) LED() LED           { return h.led }
func (h *hostHAL) GPIO() GPIO         { return h.gpio }
func (h *hostHAL) Display() Display   { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time         { return h.t }
func (h *hostHAL) Serial() Serial     { return h.serial }
func (h *hostHAL) Resetter() Resetter { return hostReset{h: h} }

// Close restores the terminal and flushes the log.
func (h *hostHAL) Close() error {
	var first error
	if h.serial != nil {
		first = h.serial.Close()
	}
	if err := h.logger.Close(); err != nil && first == nil {
		first = err
	}
	return first
}

// resetDevices puts board peripherals back to their power-on state.
func (h *hostHAL) resetDevices() {
	_ = h.ledPin.Write(false)
	h.fb.ClearRGB(0, 0, 0)
	if h.serial != nil {
		h.serial.drain()
	}
}

type hostReset struct {
	h *hostHAL
}

func (r hostReset) Reset() {
	r.h.logger.WriteLineString("reset: requested")
	r.h.resetDevices()
	panic(ErrReset)
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
	crlf   bool
}

func newHostLogger(cfg HostLogConfig) *hostLogger {
	if cfg.File == "" {
		return &hostLogger{w: os.Stderr}
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
	}
	return &hostLogger{w: lj, closer: lj}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, s)
	l.eol()
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.eol()
}

func (l *hostLogger) eol() {
	if l.crlf {
		l.w.Write([]byte{'\r', '\n'})
		return
	}
	l.w.Write([]byte{'\n'})
}

func (l *hostLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// hostLED has no state of its own; the level is latched by ledPin.
type hostLED struct {
	logger *hostLogger
}

func (l *hostLED) High() { l.logger.WriteLineString("led: HIGH") }
func (l *hostLED) Low()  { l.logger.WriteLineString("led: LOW") }

//go:build tinygo && baremetal

package hal

import (
	"machine"
	"time"
)

// tinyGoHAL is shared by every board; board files differ in the display.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1. Log lines go to USB CDC so
// the UART carries only console traffic.
type tinyGoHAL struct {
	logger *usbLogger
	led    *pinLED
	gpio   GPIO
	fb     Framebuffer
	t      *tinyGoTime
	serial *uartSerial
}

func newTinyGoHAL(fb Framebuffer) *tinyGoHAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	led := &pinLED{pin: ledPin}
	pin := newLEDPin(LEDPinName, led)
	_ = pin.Write(false)

	return &tinyGoHAL{
		logger: &usbLogger{},
		led:    led,
		gpio:   newPinTable(pin),
		fb:     fb,
		t:      newTinyGoTime(),
		serial: &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) LED() LED           { return h.led }
func (h *tinyGoHAL) GPIO() GPIO         { return h.gpio }
func (h *tinyGoHAL) Display() Display   { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time         { return h.t }
func (h *tinyGoHAL) Serial() Serial     { return h.serial }
func (h *tinyGoHAL) Resetter() Resetter { return tinyGoReset{logger: h.logger} }

type tinyGoDisplay struct {
	fb Framebuffer
}

func (d tinyGoDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoTime struct {
	ch  chan uint64
	seq uint64
}

func newTinyGoTime() *tinyGoTime {
	t := &tinyGoTime{ch: make(chan uint64, 16)}
	go func() {
		ticker := time.NewTicker(1 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			t.seq++
			select {
			case t.ch <- t.seq:
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoTime) Ticks() <-chan uint64 { return t.ch }

type usbLogger struct{}

func (l *usbLogger) WriteLineString(s string) {
	usb := machine.USBCDC
	if usb == nil {
		return
	}
	_, _ = usb.Write([]byte(s))
	_, _ = usb.Write([]byte{'\r', '\n'})
}

func (l *usbLogger) WriteLineBytes(b []byte) {
	usb := machine.USBCDC
	if usb == nil {
		return
	}
	_, _ = usb.Write(b)
	_, _ = usb.Write([]byte{'\r', '\n'})
}

type pinLED struct {
	pin machine.Pin
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

// uartSerial adds CR before LF on output, like a terminal line discipline.
type uartSerial struct {
	uart *machine.UART
}

func (s *uartSerial) Buffered() int {
	if s.uart == nil {
		return 0
	}
	return s.uart.Buffered()
}

func (s *uartSerial) ReadByte() (byte, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	return s.uart.ReadByte()
}

func (s *uartSerial) Write(p []byte) (int, error) {
	if s.uart == nil {
		return 0, ErrNotImplemented
	}
	for i, b := range p {
		if b == '\n' {
			if err := s.uart.WriteByte('\r'); err != nil {
				return i, err
			}
		}
		if err := s.uart.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

package app

import (
	"bytes"
	"strings"
	"testing"

	"tinycon/hal"
	"tinycon/sparkos/kernel"
	"tinycon/sparkos/services/console"
)

type fakeSerial struct {
	rx  []byte
	out bytes.Buffer
}

func (s *fakeSerial) Buffered() int { return len(s.rx) }

func (s *fakeSerial) ReadByte() (byte, error) {
	b := s.rx[0]
	s.rx = s.rx[1:]
	return b, nil
}

func (s *fakeSerial) Write(p []byte) (int, error) { return s.out.Write(p) }

type fakePin struct {
	level      bool
	configured bool
}

func (p *fakePin) Name() string                               { return hal.LEDPinName }
func (p *fakePin) Read() (bool, error)                        { return p.level, nil }
func (p *fakePin) Write(level bool) error                     { p.level = level; return nil }
func (p *fakePin) Configure(hal.GPIOMode, hal.GPIOPull) error { p.configured = true; return nil }

type fakeGPIO struct{ pin *fakePin }

func (g fakeGPIO) PinCount() int          { return 1 }
func (g fakeGPIO) Pin(id int) hal.GPIOPin { return g.pin }

type fakeFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newFakeFB(w, h int) *fakeFB { return &fakeFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *fakeFB) Width() int              { return f.w }
func (f *fakeFB) Height() int             { return f.h }
func (f *fakeFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *fakeFB) StrideBytes() int        { return f.w * 2 }
func (f *fakeFB) Buffer() []byte          { return f.buf }
func (f *fakeFB) Present() error          { f.presents++; return nil }

func (f *fakeFB) ClearRGB(r, g, b uint8) {
	v := byte(0)
	if r|g|b != 0 {
		v = 0xff
	}
	for i := range f.buf {
		f.buf[i] = v
	}
}

type fakeDisplay struct{ fb hal.Framebuffer }

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type fakeTime struct{ ch chan uint64 }

func (t fakeTime) Ticks() <-chan uint64 { return t.ch }

type fakeReset struct{ calls int }

func (r *fakeReset) Reset() { r.calls++ }

type memLogger struct{ lines []string }

func (l *memLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *memLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type fakeHAL struct {
	log    *memLogger
	serial *fakeSerial
	pin    *fakePin
	fb     *fakeFB
	t      fakeTime
	reset  *fakeReset

	irqEnabled bool
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		log:    &memLogger{},
		serial: &fakeSerial{},
		pin:    &fakePin{},
		fb:     newFakeFB(64, 40),
		t:      fakeTime{ch: make(chan uint64, 16)},
		reset:  &fakeReset{},
	}
}

func (h *fakeHAL) Logger() hal.Logger     { return h.log }
func (h *fakeHAL) LED() hal.LED           { return nil }
func (h *fakeHAL) GPIO() hal.GPIO         { return fakeGPIO{pin: h.pin} }
func (h *fakeHAL) Display() hal.Display   { return fakeDisplay{fb: h.fb} }
func (h *fakeHAL) Time() hal.Time         { return h.t }
func (h *fakeHAL) Serial() hal.Serial     { return h.serial }
func (h *fakeHAL) Resetter() hal.Resetter { return h.reset }
func (h *fakeHAL) EnableInterrupts()      { h.irqEnabled = true }

func runSteps(t *testing.T, step func() error, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
}

func TestBootWritesBannerAndPrompt(t *testing.T) {
	h := newFakeHAL()
	_ = New(h, DefaultConfig())

	out := h.serial.out.String()
	if !strings.HasPrefix(out, "\nSoftware de Teste do Sistema - Compilado em ") {
		t.Fatalf("banner missing: %q", out)
	}
	if !strings.Contains(out, "Bem-vindo ao Console!\n"+console.HelpText()) {
		t.Fatalf("welcome/help missing: %q", out)
	}
	if !strings.HasSuffix(out, console.Prompt) {
		t.Fatalf("boot does not end with prompt: %q", out)
	}
	if !h.irqEnabled {
		t.Fatal("interrupts not enabled at boot")
	}
	if !h.pin.configured {
		t.Fatal("LED pin not configured")
	}
}

func TestLEDCommandTogglesPin(t *testing.T) {
	h := newFakeHAL()
	step := New(h, DefaultConfig())
	h.serial.out.Reset()

	h.serial.rx = append(h.serial.rx, "led_cmd\r"...)
	runSteps(t, step, 32)
	if !h.pin.level {
		t.Fatal("LED not on after led_cmd")
	}
	if !strings.Contains(h.serial.out.String(), "Alternando o estado do LED...\n"+console.Prompt) {
		t.Fatalf("unexpected output %q", h.serial.out.String())
	}

	h.serial.rx = append(h.serial.rx, "led_cmd\r"...)
	runSteps(t, step, 32)
	if h.pin.level {
		t.Fatal("LED not off after second led_cmd")
	}
}

func TestResetCommandCallsResetter(t *testing.T) {
	h := newFakeHAL()
	step := New(h, DefaultConfig())

	h.serial.rx = append(h.serial.rx, "reset\n"...)
	runSteps(t, step, 32)
	if h.reset.calls != 1 {
		t.Fatalf("reset calls = %d; want 1", h.reset.calls)
	}
}

func TestMirrorPresentsConsoleOutput(t *testing.T) {
	h := newFakeHAL()
	step := New(h, DefaultConfig())
	runSteps(t, step, 4)
	if h.fb.presents == 0 {
		t.Fatal("mirror never presented the boot screen")
	}

	h2 := newFakeHAL()
	step2 := New(h2, Config{})
	runSteps(t, step2, 4)
	if h2.fb.presents != 0 {
		t.Fatalf("presents = %d with mirror disabled; want 0", h2.fb.presents)
	}
}

func TestStepPumpsTicks(t *testing.T) {
	h := newFakeHAL()
	s := newSystem(h, Config{})
	h.t.ch <- 3
	h.t.ch <- 7
	if err := s.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(h.t.ch) != 0 {
		t.Fatalf("%d ticks left in channel", len(h.t.ch))
	}

	var got uint64
	probe := taskFunc(func(ctx *kernel.Context) { got = ctx.NowTick() })
	s.k.AddTask(probe)
	runSteps(t, s.step, 2)
	if got != 7 {
		t.Fatalf("NowTick = %d; want 7", got)
	}
}

type taskFunc func(*kernel.Context)

func (f taskFunc) Step(ctx *kernel.Context) { f(ctx) }

func TestBootWithoutPeripherals(t *testing.T) {
	h := &bareHAL{log: &memLogger{}}
	step := New(h, DefaultConfig())
	runSteps(t, step, 4)

	if len(h.log.lines) == 0 {
		t.Fatal("missing peripherals were not logged")
	}
}

type bareHAL struct{ log *memLogger }

func (h *bareHAL) Logger() hal.Logger     { return h.log }
func (h *bareHAL) LED() hal.LED           { return nil }
func (h *bareHAL) GPIO() hal.GPIO         { return nil }
func (h *bareHAL) Display() hal.Display   { return nil }
func (h *bareHAL) Time() hal.Time         { return nil }
func (h *bareHAL) Serial() hal.Serial     { return nil }
func (h *bareHAL) Resetter() hal.Resetter { return nil }

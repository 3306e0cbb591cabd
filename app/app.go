package app

import (
	"io"
	"runtime"

	"tinycon/hal"
	"tinycon/internal/buildinfo"
	"tinycon/sparkos/kernel"
	"tinycon/sparkos/services/console"
	"tinycon/sparkos/services/mirror"
)

type system struct {
	k     *kernel.Kernel
	ticks <-chan uint64

	con *console.Service
	mir *mirror.Mirror
}

type Config struct {
	// Mirror draws the console on the board display as well as the UART.
	Mirror bool
	// MirrorInterval is the minimum number of ticks between display updates.
	MirrorInterval uint64
}

// DefaultConfig is what the board firmware boots with.
func DefaultConfig() Config {
	return Config{Mirror: true, MirrorInterval: mirror.DefaultInterval}
}

// New boots the console and returns its step function. Each call runs one
// kernel step; the returned error is always nil on a healthy system.
func New(h hal.HAL, cfg Config) func() error {
	s := newSystem(h, cfg)
	return s.step
}

// Run boots the console and steps it forever (TinyGo entrypoint).
func Run(h hal.HAL, cfg Config) {
	step := New(h, cfg)
	for {
		_ = step()
		// Let the tick goroutine in.
		runtime.Gosched()
	}
}

func newSystem(h hal.HAL, cfg Config) *system {
	if ir, ok := h.(hal.Interrupts); ok {
		ir.EnableInterrupts()
	}
	installPanicHandler(h)

	log := h.Logger()
	s := &system{k: kernel.New()}

	var out io.Writer
	var in console.Input
	if ser := h.Serial(); ser != nil {
		out = ser
		in = ser
	} else if log != nil {
		log.WriteLineString("app: no serial port")
	}

	if cfg.Mirror {
		if disp := h.Display(); disp != nil {
			if fb := disp.Framebuffer(); fb != nil {
				s.mir = mirror.New(fb, mirror.Config{Interval: cfg.MirrorInterval})
				if out != nil {
					out = io.MultiWriter(out, s.mir)
				} else {
					out = s.mir
				}
			}
		}
	}

	var led console.LED
	if pin := hal.PinByName(h.GPIO(), hal.LEDPinName); pin != nil {
		if err := pin.Configure(hal.GPIOModeOutput, hal.GPIOPullNone); err != nil && log != nil {
			log.WriteLineString("app: led configure: " + err.Error())
		}
		led = pin
	} else if log != nil {
		log.WriteLineString("app: no LED pin")
	}

	var rst console.Resetter
	if r := h.Resetter(); r != nil {
		rst = r
	}

	s.con = console.New(console.Config{
		In:     in,
		Out:    out,
		LED:    led,
		Reset:  rst,
		Logger: log,
		Stamp:  buildinfo.Stamp(),
	})
	s.k.AddTask(s.con)
	if s.mir != nil {
		s.k.AddTask(s.mir)
	}

	if ht := h.Time(); ht != nil {
		s.ticks = ht.Ticks()
	}

	if log != nil {
		log.WriteLineString("app: boot " + buildinfo.Short())
	}
	s.con.Boot()
	return s
}

// step drains pending ticks into the kernel and runs one task.
//
// Ticks are pumped here rather than from a goroutine: a host reset reboots
// the system on the same HAL, and a leftover goroutine would keep consuming
// the shared tick channel.
func (s *system) step() error {
	s.pumpTicks()
	s.k.Step()
	return nil
}

func (s *system) pumpTicks() {
	if s.ticks == nil {
		return
	}
	for {
		select {
		case seq := <-s.ticks:
			s.k.TickTo(seq)
		default:
			return
		}
	}
}

package hal

import (
	"fmt"
	"sync"
)

type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// LEDPinName is the name every backend gives to the user LED output.
const LEDPinName = "LED"

// GPIO enumerates the board's named digital pins. It may be nil.
type GPIO interface {
	PinCount() int
	Pin(id int) GPIOPin
}

// GPIOPin is a single digital pin. Output pins read back the last level
// written, the way an output data register does.
type GPIOPin interface {
	Name() string
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// PinByName returns the first pin called name, or nil.
func PinByName(g GPIO, name string) GPIOPin {
	if g == nil {
		return nil
	}
	for i := 0; i < g.PinCount(); i++ {
		if p := g.Pin(i); p != nil && p.Name() == name {
			return p
		}
	}
	return nil
}

// pinTable is a fixed list of pins built by a backend at boot.
type pinTable []GPIOPin

func newPinTable(pins ...GPIOPin) pinTable {
	out := make(pinTable, 0, len(pins))
	for _, p := range pins {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (t pinTable) PinCount() int { return len(t) }

func (t pinTable) Pin(id int) GPIOPin {
	if id < 0 || id >= len(t) {
		return nil
	}
	return t[id]
}

// ledPin drives an LED as an output-only pin and latches the written level.
type ledPin struct {
	name string
	led  LED

	mu    sync.Mutex
	level bool
}

func newLEDPin(name string, led LED) *ledPin {
	if led == nil {
		return nil
	}
	return &ledPin{name: name, led: led}
}

func (p *ledPin) Name() string { return p.name }

func (p *ledPin) Configure(mode GPIOMode, pull GPIOPull) error {
	switch {
	case mode != GPIOModeOutput:
		return fmt.Errorf("gpio: %s is output-only", p.name)
	case pull != GPIOPullNone:
		return fmt.Errorf("gpio: %s has no pull resistors", p.name)
	}
	return nil
}

func (p *ledPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *ledPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if level {
		p.led.High()
	} else {
		p.led.Low()
	}
	p.level = level
	return nil
}

package console

import (
	"fmt"
	"io"

	"tinycon/hal"
)

// Prompt is printed after boot and after every submitted line.
const Prompt = "CONSOLE>>"

const toggleMsg = "Alternando o estado do LED...\n"

// LED is the LED output register. Read returns the last written level.
type LED interface {
	Read() (bool, error)
	Write(level bool) error
}

// Resetter triggers a full system reset and does not return.
type Resetter interface {
	Reset()
}

// Command binds a literal token to a zero-argument action.
type Command struct {
	Name string
	Run  func()
}

type commandHelp struct {
	Name string
	Desc string
}

const helpHeader = "Comandos disponiveis:"

var helpLines = []commandHelp{
	{Name: "ajuda", Desc: "Exibe esta mensagem"},
	{Name: "reset", Desc: "Reinicia o processador"},
	{Name: "led_cmd", Desc: "Testa a saida do LED"},
}

// HelpText returns the help listing printed at boot and by "ajuda".
func HelpText() string {
	s := helpHeader + "\n"
	for _, h := range helpLines {
		s += fmt.Sprintf("%-9s- %s\n", h.Name, h.Desc)
	}
	return s
}

// Dispatcher matches command tokens against a fixed, ordered table.
type Dispatcher struct {
	out   io.Writer
	led   LED
	reset Resetter
	log   hal.Logger

	cmds []Command
}

// NewDispatcher builds the command table: reset, led_cmd, ajuda, in that
// priority order.
func NewDispatcher(out io.Writer, led LED, reset Resetter, log hal.Logger) *Dispatcher {
	d := &Dispatcher{out: out, led: led, reset: reset, log: log}
	d.cmds = []Command{
		{Name: "reset", Run: d.resetCPU},
		{Name: "led_cmd", Run: d.toggleLED},
		{Name: "ajuda", Run: d.help},
	}
	return d
}

// Commands returns the command names in match order.
func (d *Dispatcher) Commands() []string {
	out := make([]string, 0, len(d.cmds))
	for _, c := range d.cmds {
		out = append(out, c.Name)
	}
	return out
}

// Dispatch runs the first command whose name equals token exactly, then
// prints the prompt. Unknown tokens run nothing. It reports whether a
// command matched.
func (d *Dispatcher) Dispatch(token []byte) bool {
	matched := false
	for _, c := range d.cmds {
		if string(token) == c.Name {
			c.Run()
			matched = true
			break
		}
	}
	d.Prompt()
	return matched
}

// Prompt prints the prompt without a trailing newline.
func (d *Dispatcher) Prompt() {
	d.writeString(Prompt)
}

func (d *Dispatcher) help() {
	d.writeString(HelpText())
}

func (d *Dispatcher) resetCPU() {
	if d.reset == nil {
		d.logLine("console: reset: no reset controller")
		return
	}
	d.logLine("console: reset")
	d.reset.Reset()
}

func (d *Dispatcher) toggleLED() {
	d.writeString(toggleMsg)
	if d.led == nil {
		d.logLine("console: led_cmd: no LED")
		return
	}
	level, err := d.led.Read()
	if err != nil {
		d.logLine(fmt.Sprintf("console: led read: %v", err))
		return
	}
	if err := d.led.Write(!level); err != nil {
		d.logLine(fmt.Sprintf("console: led write: %v", err))
	}
}

func (d *Dispatcher) writeString(s string) {
	if d.out == nil {
		return
	}
	_, _ = io.WriteString(d.out, s)
}

func (d *Dispatcher) logLine(s string) {
	if d.log == nil {
		return
	}
	d.log.WriteLineString(s)
}

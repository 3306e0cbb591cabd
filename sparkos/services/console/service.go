package console

import (
	"fmt"
	"io"
	"strings"

	"tinycon/hal"
	"tinycon/sparkos/kernel"
)

// Config wires the console to the board.
type Config struct {
	In  Input
	Out io.Writer

	LED    LED
	Reset  Resetter
	Logger hal.Logger

	// Stamp is the build timestamp shown in the banner.
	Stamp string
}

// Service is the console polling loop: editor, tokenizer and dispatcher.
type Service struct {
	ed   *Editor
	disp *Dispatcher
	out  io.Writer
	log  hal.Logger

	stamp string
}

// New creates a console service.
func New(cfg Config) *Service {
	return &Service{
		ed:    NewEditor(cfg.In, cfg.Out),
		disp:  NewDispatcher(cfg.Out, cfg.LED, cfg.Reset, cfg.Logger),
		out:   cfg.Out,
		log:   cfg.Logger,
		stamp: cfg.Stamp,
	}
}

// Boot prints the banner, the welcome line, the help text and the first
// prompt. Call it once before the first Poll.
func (s *Service) Boot() {
	if s.log != nil {
		s.log.WriteLineString("console: commands " + strings.Join(s.disp.Commands(), " "))
	}
	s.writeString(Banner(s.stamp))
	s.writeString("Bem-vindo ao Console!\n")
	s.writeString(HelpText())
	s.disp.Prompt()
}

// Banner returns the boot banner for a build timestamp.
func Banner(stamp string) string {
	return "\nSoftware de Teste do Sistema - Compilado em " + stamp + "\n\n"
}

// Poll runs one iteration of the console loop. Without a completed line it
// returns false and has no side effects beyond echo.
func (s *Service) Poll() bool {
	line, ok := s.ed.Poll()
	if !ok {
		return false
	}
	cmd, rest := Split(line)
	if s.log != nil && len(cmd) > 0 {
		s.log.WriteLineString(fmt.Sprintf("console: line cmd=%q rest=%q", cmd, rest))
	}
	s.disp.Dispatch(cmd)
	return true
}

// Step implements kernel.Task.
func (s *Service) Step(_ *kernel.Context) {
	s.Poll()
}

// Editor returns the service's line editor.
func (s *Service) Editor() *Editor { return s.ed }

func (s *Service) writeString(str string) {
	if s.out == nil {
		return
	}
	_, _ = io.WriteString(s.out, str)
}

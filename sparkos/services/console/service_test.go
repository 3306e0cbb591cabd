package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tinycon/sparkos/kernel"
)

type testConsole struct {
	svc *Service
	in  *fakeInput
	out *bytes.Buffer
	led *fakeLED
	rst *fakeReset
	log *memLogger
}

func newTestConsole() *testConsole {
	tc := &testConsole{
		in:  &fakeInput{},
		out: &bytes.Buffer{},
		led: &fakeLED{},
		rst: &fakeReset{},
		log: &memLogger{},
	}
	tc.svc = New(Config{
		In:     tc.in,
		Out:    tc.out,
		LED:    tc.led,
		Reset:  tc.rst,
		Logger: tc.log,
		Stamp:  "Oct 19 2026 10:00:00",
	})
	return tc
}

// drain polls until the input is consumed and returns the number of lines.
func (tc *testConsole) drain() int {
	lines := 0
	for tc.in.Buffered() > 0 {
		if tc.svc.Poll() {
			lines++
		}
	}
	return lines
}

func TestBootTranscript(t *testing.T) {
	tc := newTestConsole()
	tc.svc.Boot()

	want := "\nSoftware de Teste do Sistema - Compilado em Oct 19 2026 10:00:00\n\n" +
		"Bem-vindo ao Console!\n" +
		HelpText() +
		"CONSOLE>>"
	if diff := cmp.Diff(want, tc.out.String()); diff != "" {
		t.Fatalf("boot mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"console: commands reset led_cmd ajuda"}, tc.log.lines); diff != "" {
		t.Fatalf("boot log mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpMatchesBootListing(t *testing.T) {
	tc := newTestConsole()
	tc.svc.Boot()
	boot := tc.out.String()
	tc.out.Reset()

	tc.in.feed("ajuda\r")
	tc.drain()

	got := strings.TrimPrefix(tc.out.String(), "ajuda\n")
	got = strings.TrimSuffix(got, Prompt)
	if !strings.Contains(boot, got) || got != HelpText() {
		t.Fatalf("ajuda output %q does not match boot listing", got)
	}
}

func TestSessionTranscript(t *testing.T) {
	tc := newTestConsole()
	tc.in.feed("led_cmd extra\r")
	tc.in.feed("xyz\n")
	tc.in.feed("\r")
	tc.in.feed("led_cmd\r")

	if n := tc.drain(); n != 4 {
		t.Fatalf("lines = %d; want 4", n)
	}
	want := "led_cmd extra\n" + toggleMsg + Prompt +
		"xyz\n" + Prompt +
		"\n" + Prompt +
		"led_cmd\n" + toggleMsg + Prompt
	if diff := cmp.Diff(want, tc.out.String()); diff != "" {
		t.Fatalf("transcript mismatch (-want +got):\n%s", diff)
	}
	if tc.led.level || tc.led.writes != 2 {
		t.Fatalf("led level=%v writes=%d; want false, 2", tc.led.level, tc.led.writes)
	}
}

func TestEmptyLineIsDispatched(t *testing.T) {
	tc := newTestConsole()
	tc.in.feed("\r")
	if n := tc.drain(); n != 1 {
		t.Fatalf("lines = %d; want 1", n)
	}
	if tc.out.String() != "\n"+Prompt {
		t.Fatalf("output = %q", tc.out.String())
	}
	if len(tc.log.lines) != 0 {
		t.Fatalf("log = %q; want nothing for empty line", tc.log.lines)
	}
}

func TestRemainderIsLoggedNotUsed(t *testing.T) {
	tc := newTestConsole()
	tc.in.feed("led_cmd 1 2\r")
	tc.drain()

	if diff := cmp.Diff([]string{`console: line cmd="led_cmd" rest="1 2"`}, tc.log.lines); diff != "" {
		t.Fatalf("log mismatch (-want +got):\n%s", diff)
	}
	if tc.led.writes != 1 {
		t.Fatalf("writes = %d; want 1", tc.led.writes)
	}
}

func TestResetCommand(t *testing.T) {
	tc := newTestConsole()
	tc.in.feed("rex\x7fset\r")
	tc.drain()
	if tc.rst.calls != 1 {
		t.Fatalf("reset calls = %d; want 1", tc.rst.calls)
	}

	// Two erases leave "r", so the submitted line is "rset".
	tc.in.feed("res\x7f\x7fset\r")
	tc.drain()
	if tc.rst.calls != 1 {
		t.Fatalf("reset calls = %d after \"rset\"; want 1", tc.rst.calls)
	}
}

func TestBufferEmptyAfterEveryLine(t *testing.T) {
	tc := newTestConsole()
	tc.in.feed(strings.Repeat("y", 100) + "\r")
	tc.drain()
	if tc.svc.Editor().Len() != 0 {
		t.Fatalf("Len() = %d; want 0", tc.svc.Editor().Len())
	}
	tc.out.Reset()

	tc.in.feed("ajuda\r")
	tc.drain()
	if !strings.HasPrefix(tc.out.String(), "ajuda\n"+helpHeader) {
		t.Fatalf("stale characters leaked into next line: %q", tc.out.String())
	}
}

func TestServiceRunsAsKernelTask(t *testing.T) {
	tc := newTestConsole()
	k := kernel.New()
	if _, ok := k.AddTask(tc.svc); !ok {
		t.Fatal("AddTask failed")
	}
	tc.in.feed("led_cmd\r")
	for i := 0; i < len("led_cmd\r"); i++ {
		k.Step()
	}
	if !tc.led.level {
		t.Fatal("LED not toggled by kernel steps")
	}
}

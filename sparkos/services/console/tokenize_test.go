package console

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSplit(t *testing.T) {
	tcs := []struct {
		line string
		cmd  string
		rest string
	}{
		{line: "led_cmd extra", cmd: "led_cmd", rest: "extra"},
		{line: "ajuda", cmd: "ajuda", rest: ""},
		{line: "", cmd: "", rest: ""},
		{line: "reset ", cmd: "reset", rest: ""},
		{line: " reset", cmd: "", rest: "reset"},
		{line: "a  b", cmd: "a", rest: " b"},
		{line: "led_cmd one two", cmd: "led_cmd", rest: "one two"},
	}

	for _, tc := range tcs {
		line := []byte(tc.line)
		orig := append([]byte(nil), line...)

		cmd, rest := Split(line)
		if string(cmd) != tc.cmd || string(rest) != tc.rest {
			t.Fatalf("Split(%q) = %q, %q; want %q, %q", tc.line, cmd, rest, tc.cmd, tc.rest)
		}
		if !bytes.Equal(orig, line) {
			t.Fatalf("Split(%q) modified the line: %q", tc.line, line)
		}
	}
}

func TestNextTokenWalk(t *testing.T) {
	line := []byte("a bc  d")
	var got []string
	cursor := 0
	for i := 0; i < 4; i++ {
		tok, next := NextToken(line, cursor)
		got = append(got, string(tok.Of(line)))
		if next < cursor {
			t.Fatalf("cursor moved backwards: %d -> %d", cursor, next)
		}
		cursor = next
	}
	if diff := cmp.Diff([]string{"a", "bc", "", "d"}, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if cursor != len(line) {
		t.Fatalf("final cursor = %d; want %d", cursor, len(line))
	}

	tok, next := NextToken(line, cursor)
	if !tok.Empty() || next != len(line) {
		t.Fatalf("token past end = %+v, %d; want empty at %d", tok, next, len(line))
	}
}

func TestNextTokenSpans(t *testing.T) {
	line := []byte("led_cmd extra")
	tok, next := NextToken(line, 0)
	if tok != (Span{Off: 0, Len: 7}) || next != 8 {
		t.Fatalf("NextToken = %+v, %d; want {0 7}, 8", tok, next)
	}
	tok, next = NextToken(line, next)
	if tok != (Span{Off: 8, Len: 5}) || next != len(line) {
		t.Fatalf("NextToken = %+v, %d; want {8 5}, %d", tok, next, len(line))
	}
}

func TestNextTokenClampsCursor(t *testing.T) {
	line := []byte("ajuda")
	if tok, next := NextToken(line, -3); tok != (Span{Off: 0, Len: 5}) || next != 5 {
		t.Fatalf("negative cursor: %+v, %d", tok, next)
	}
	if tok, next := NextToken(line, 99); !tok.Empty() || next != 5 {
		t.Fatalf("cursor past end: %+v, %d", tok, next)
	}
	if tok, next := NextToken(nil, 0); !tok.Empty() || next != 0 {
		t.Fatalf("nil line: %+v, %d", tok, next)
	}
}

func TestSplitDoesNotAllocate(t *testing.T) {
	line := []byte("led_cmd extra")
	allocs := testing.AllocsPerRun(100, func() {
		cmd, rest := Split(line)
		_, _ = cmd, rest
	})
	if allocs != 0 {
		t.Fatalf("Split allocated %.0f times; want 0", allocs)
	}
}

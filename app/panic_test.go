package app

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tinycon/sparkos/kernel"
)

func TestPanicLines(t *testing.T) {
	got := panicLines(kernel.PanicInfo{TaskID: 1, Value: "boom", Stack: []byte("a\n\nb\n")})
	want := []string{"tinycon panic:", "task: 1", "panic: boom", "stack:", "a", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}

	got = panicLines(kernel.PanicInfo{Value: "boom"})
	if got[len(got)-1] != "stack: unavailable" {
		t.Fatalf("last line = %q", got[len(got)-1])
	}
}

func TestDrawPanicScreen(t *testing.T) {
	fb := newFakeFB(64, 25)
	drawPanicScreen(fb, []string{"tinycon panic:", strings.Repeat("x", 40), "one", "two", "three"})

	if fb.presents != 1 {
		t.Fatalf("presents = %d; want 1", fb.presents)
	}
	dark := 0
	for i := 0; i+1 < len(fb.buf); i += 2 {
		if fb.buf[i] != 0xff || fb.buf[i+1] != 0xff {
			dark++
		}
	}
	if dark == 0 {
		t.Fatal("no text drawn")
	}
}

func TestTakeRunes(t *testing.T) {
	tcs := []struct {
		s          string
		n          int16
		head, tail string
	}{
		{s: "abcdef", n: 4, head: "abcd", tail: "ef"},
		{s: "abc", n: 4, head: "abc", tail: ""},
		{s: "ação", n: 2, head: "aç", tail: "ão"},
		{s: "abc", n: 0, head: "", tail: "abc"},
	}
	for _, tc := range tcs {
		head, tail := takeRunes(tc.s, tc.n)
		if head != tc.head || tail != tc.tail {
			t.Fatalf("takeRunes(%q, %d) = %q, %q; want %q, %q", tc.s, tc.n, head, tail, tc.head, tc.tail)
		}
	}
}

package console

import (
	"errors"
	"io"
)

type fakeInput struct {
	data []byte
}

func (f *fakeInput) feed(s string) { f.data = append(f.data, s...) }

func (f *fakeInput) Buffered() int { return len(f.data) }

func (f *fakeInput) ReadByte() (byte, error) {
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	b := f.data[0]
	f.data = f.data[1:]
	return b, nil
}

// brokenInput claims data is ready but fails every read.
type brokenInput struct{}

func (brokenInput) Buffered() int           { return 1 }
func (brokenInput) ReadByte() (byte, error) { return 0, errors.New("framing error") }

type fakeLED struct {
	level   bool
	writes  int
	readErr error
}

func (l *fakeLED) Read() (bool, error) {
	if l.readErr != nil {
		return false, l.readErr
	}
	return l.level, nil
}

func (l *fakeLED) Write(level bool) error {
	l.writes++
	l.level = level
	return nil
}

type fakeReset struct {
	calls int
}

func (r *fakeReset) Reset() { r.calls++ }

type memLogger struct {
	lines []string
}

func (l *memLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *memLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

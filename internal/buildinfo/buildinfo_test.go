package buildinfo

import "testing"

func TestStampFromLdflags(t *testing.T) {
	oldDate, oldTime := Date, Time
	defer func() { Date, Time = oldDate, oldTime }()

	Date, Time = "Oct 19 2026", "14:03:11"
	if got := Stamp(); got != "Oct 19 2026 14:03:11" {
		t.Fatalf("Stamp() = %q", got)
	}

	Time = ""
	if got := Stamp(); got != "Oct 19 2026" {
		t.Fatalf("Stamp() without time = %q", got)
	}
}

func TestStampFallback(t *testing.T) {
	oldDate := Date
	defer func() { Date = oldDate }()

	Date = "unknown"
	if got := Stamp(); got == "" {
		t.Fatal("Stamp() returned empty string")
	}
}

func TestShort(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("Short() = %q; want dev", got)
	}
	Commit = "abc123"
	if got := Short(); got != "abc123" {
		t.Fatalf("Short() = %q; want abc123", got)
	}
	Version = "v0.2.0"
	if got := Short(); got != "v0.2.0" {
		t.Fatalf("Short() = %q; want v0.2.0", got)
	}
}

package buildinfo

import "runtime/debug"

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags, e.g. -X tinycon/internal/buildinfo.Date="Oct 19 2026".
var Date = "unknown"

// Time is set at build time via -ldflags, e.g. -X tinycon/internal/buildinfo.Time=14:03:11.
var Time = ""

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// Stamp returns the build timestamp shown in the boot banner.
//
// Without ldflags it falls back to the VCS commit time recorded by the Go
// toolchain, then to "unknown".
func Stamp() string {
	if Date != "" && Date != "unknown" {
		if Time != "" {
			return Date + " " + Time
		}
		return Date
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.time" && s.Value != "" {
				return s.Value
			}
		}
	}
	return "unknown"
}

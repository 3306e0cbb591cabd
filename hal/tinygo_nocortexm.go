//go:build tinygo && baremetal && !cortexm

package hal

type tinyGoReset struct {
	logger Logger
}

// Reset halts on cores without a supported reset register.
func (r tinyGoReset) Reset() {
	if r.logger != nil {
		r.logger.WriteLineString("reset: unsupported on this core, halting")
	}
	select {}
}

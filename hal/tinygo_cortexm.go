//go:build tinygo && baremetal && cortexm

package hal

import "device/arm"

type tinyGoReset struct {
	logger Logger
}

// Reset requests a system reset through SCB.AIRCR.SYSRESETREQ.
func (r tinyGoReset) Reset() {
	if r.logger != nil {
		r.logger.WriteLineString("reset: requested")
	}
	arm.SystemReset()
	for {
	}
}

// EnableInterrupts clears PRIMASK. The console itself is polled; the UART
// receive FIFO is interrupt driven.
func (h *tinyGoHAL) EnableInterrupts() {
	arm.EnableInterrupts(0)
}

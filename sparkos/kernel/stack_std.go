//go:build !tinygo

package kernel

import "runtime"

const maxStack = 8 << 10

// captureStack returns the panicking goroutine's trace, truncated to maxStack.
func captureStack() []byte {
	buf := make([]byte, maxStack)
	return buf[:runtime.Stack(buf, false)]
}

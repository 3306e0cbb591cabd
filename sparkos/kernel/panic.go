package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes the task panic that halted the kernel.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	// Stack is nil where the runtime cannot capture one.
	Stack []byte
}

var (
	halting  sync.Once
	panicked atomic.Bool
	onPanic  atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether some kernel has halted on a task panic.
func InPanicMode() bool { return panicked.Load() }

// SetPanicHandler sets the function told about the first task panic in the
// process. Reset requests are not panics and never reach it. The handler runs
// on the stepping goroutine after the kernel has halted; it should report and
// return.
func SetPanicHandler(fn func(PanicInfo)) {
	onPanic.Store(fn)
}

func triggerPanic(info PanicInfo) {
	halting.Do(func() {
		panicked.Store(true)
		info.Stack = captureStack()
		fn, _ := onPanic.Load().(func(PanicInfo))
		if fn != nil {
			fn(info)
		}
	})
}

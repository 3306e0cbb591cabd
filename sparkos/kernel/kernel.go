package kernel

import (
	"errors"
	"sync/atomic"

	"tinycon/hal"
)

const maxTasks = 8

type TaskID uint8

// Task is a cooperative unit of execution. Step must return promptly; a task
// with nothing to do returns without side effects.
type Task interface {
	Step(*Context)
}

// Kernel is a minimal cooperative round-robin scheduler.
//
// Step runs on the caller's goroutine; only TickTo may be called
// concurrently with it.
type Kernel struct {
	tasks     [maxTasks]Task
	taskCount TaskID

	rr TaskID

	tick   atomic.Uint64
	halted atomic.Bool
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// AddTask registers a task and returns its ID. It returns false when the
// task table is full.
func (k *Kernel) AddTask(t Task) (TaskID, bool) {
	if t == nil || k.taskCount >= maxTasks {
		return 0, false
	}
	id := k.taskCount
	k.taskCount++
	k.tasks[id] = t
	return id, true
}

// Step runs exactly one task step, rotating through tasks in order.
//
// A panicking task halts the kernel and invokes the panic handler. A
// hal.ErrReset panic is a reset request and propagates to the caller.
func (k *Kernel) Step() {
	if k.taskCount == 0 || k.halted.Load() {
		return
	}

	id := k.rr
	k.rr = (id + 1) % k.taskCount

	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if err, ok := v.(error); ok && errors.Is(err, hal.ErrReset) {
			panic(v)
		}
		k.halted.Store(true)
		triggerPanic(PanicInfo{TaskID: id, Value: v})
	}()

	k.tasks[id].Step(&Context{k: k, taskID: id})
}

// Halted reports whether a task panic stopped the scheduler.
func (k *Kernel) Halted() bool { return k.halted.Load() }

// TickTo advances the tick counter to seq. Older values are ignored.
func (k *Kernel) TickTo(seq uint64) {
	for {
		cur := k.tick.Load()
		if seq <= cur {
			return
		}
		if k.tick.CompareAndSwap(cur, seq) {
			return
		}
	}
}

func (k *Kernel) nowTick() uint64 { return k.tick.Load() }

//go:build !tinygo

package hal

import "errors"

// hostRunner owns the app step function and reboots the app when a step
// unwinds with ErrReset.
type hostRunner struct {
	h      *hostHAL
	newApp func(HAL) func() error
	step   func() error
	boots  int
}

func newHostRunner(h *hostHAL, newApp func(HAL) func() error) *hostRunner {
	r := &hostRunner{h: h, newApp: newApp}
	r.boot()
	return r
}

func (r *hostRunner) boot() {
	r.boots++
	r.step = r.newApp(r.h)
}

// run calls the step function up to budget times.
func (r *hostRunner) run(budget int) error {
	if budget <= 0 {
		budget = 1
	}
	for i := 0; i < budget; i++ {
		rebooted, err := r.stepOnce()
		if err != nil {
			return err
		}
		if rebooted {
			return nil
		}
	}
	return nil
}

func (r *hostRunner) stepOnce() (rebooted bool, err error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if e, ok := v.(error); ok && errors.Is(e, ErrReset) {
			r.h.logger.WriteLineString("reset: rebooting")
			r.boot()
			rebooted, err = true, nil
			return
		}
		panic(v)
	}()
	if r.step == nil {
		return false, nil
	}
	return false, r.step()
}

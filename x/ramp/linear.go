// Package ramp implements caller-driven value ramps. The caller supplies the
// waiting primitive, so the same code serves tests (instant ticks) and live
// sweeps (time.Sleep or context-aware waits).
package ramp

import "time"

// Step applies an intermediate value.
type Step func(v uint16)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear moves from cur to target over total in the given number of steps,
// distributing the integer delta evenly (Bresenham-style accumulator, no
// floats). steps==0 or total<=0 snaps straight to target. The final value is
// always exactly target unless a tick cancels.
func Linear(cur, target uint16, total time.Duration, steps uint16, tick Tick, set Step) {
	if steps == 0 || total <= 0 {
		set(target)
		return
	}
	stepDur := total / time.Duration(steps)
	if stepDur <= 0 {
		stepDur = time.Millisecond
	}
	delta := int32(target) - int32(cur)
	acc := int32(0)
	v := int32(cur)
	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return
		}
		acc += delta
		inc := acc / int32(steps)
		if inc != 0 {
			acc -= inc * int32(steps)
			v += inc
			set(uint16(v))
		}
	}
	if !tick(stepDur) {
		return
	}
	set(target)
}

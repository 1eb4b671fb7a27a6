// Package clock implements the servo Timer facade on the runtime clock: a
// free-running counter emulated at a configurable tick rate, with
// compare-match dispatch via time.AfterFunc. It works on hosts and under
// TinyGo alike, trading the precision of a hardware compare unit for
// portability.
package clock

import (
	"sync"
	"time"
)

// Timer emulates a hz-rate free-running counter. The count is derived from
// time.Since an epoch, so SetCount just moves the epoch. ArmCompare
// schedules the handler after the wall-time equivalent of the remaining
// ticks; a compare at or behind the current count is dropped, matching the
// missed-compare behaviour of the hardware this stands in for.
type Timer struct {
	hz uint64

	mu      sync.Mutex
	epoch   time.Time
	handler func()
	pending *time.Timer
	gen     uint64 // identifies the arm a scheduled fire belongs to
}

// New returns a running Timer with its count at zero. hz==0 defaults to
// 1 MHz.
func New(hz uint32) *Timer {
	if hz == 0 {
		hz = 1_000_000
	}
	return &Timer{hz: uint64(hz), epoch: time.Now()}
}

func (c *Timer) Count() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.countLocked()
}

func (c *Timer) SetCount(v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch = time.Now().Add(-c.durLocked(v))
}

func (c *Timer) SetCompareHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = fn
}

// ArmCompare schedules the handler for tick v, replacing any pending
// compare.
func (c *Timer) ArmCompare(v uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	gen := c.gen
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}

	now := c.countLocked()
	if v <= now {
		return // the hardware analogue would never match
	}
	c.pending = time.AfterFunc(c.durLocked(v-now), func() { c.fire(gen) })
}

// fire runs the handler outside the lock so it can re-arm or reset freely.
func (c *Timer) fire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return // superseded by a later arm
	}
	c.pending = nil
	fn := c.handler
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (c *Timer) countLocked() uint32 {
	el := time.Since(c.epoch)
	return uint32(uint64(el) * c.hz / uint64(time.Second))
}

func (c *Timer) durLocked(ticks uint32) time.Duration {
	return time.Duration(uint64(ticks) * uint64(time.Second) / c.hz)
}

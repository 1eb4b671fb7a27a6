// Package servo multiplexes up to nine servo pulse channels onto a single
// compare-match timer. Channels fire back-to-back in registration order once
// per fixed frame; each channel's pulse end is programmed relative to the
// count at the moment its predecessor finished, so an overcommitted frame
// stretches instead of corrupting the cycle.
//
// Foreground calls (Register, the pulse and angle setters) may be preempted
// by the compare handler at any point. The only state shared with the
// handler is the per-channel pulse width, held in an atomic so a foreground
// write is indivisible, and the registered-channel count, published after
// the slot it covers is fully initialised.
package servo

import (
	"sync"
	"sync/atomic"

	"servocode-go/x/timex"
)

// cursorNone marks the before-first-channel state at a frame boundary.
const cursorNone = ^uint32(0)

type channel struct {
	pin OutputPin
	// width is the HIGH duration in ticks for this channel's next firing.
	// Written by foreground setters, read by the compare handler.
	width atomic.Uint32
}

// Scheduler owns the channel registry and the Timer. Create one with New;
// it stays inert until the first successful Register arms the timer.
type Scheduler struct {
	timer Timer

	mu    sync.Mutex // serialises foreground registration
	chans [MaxChannels]channel
	count atomic.Uint32 // registered channels; read by the compare handler

	// cursor is handler-only state: the channel whose pulse is active, or
	// cursorNone while waiting for a frame to open.
	cursor uint32

	tickHz       uint32
	frameTicks   uint32
	minPulse     uint32 // ticks at MinAngle
	maxPulse     uint32 // ticks at MaxAngle
	guardTicks   uint32
	catchupTicks uint32
}

// New builds a Scheduler over t. Zero cfg fields take defaults; see Config.
func New(t Timer, cfg Config) *Scheduler {
	cfg.applyDefaults()
	return &Scheduler{
		timer:        t,
		cursor:       cursorNone,
		tickHz:       cfg.TickHz,
		frameTicks:   timex.TicksOf(cfg.FramePeriod, cfg.TickHz),
		minPulse:     timex.TicksOf(cfg.MinPulse, cfg.TickHz),
		maxPulse:     timex.TicksOf(cfg.MaxPulse, cfg.TickHz),
		guardTicks:   cfg.GuardTicks,
		catchupTicks: cfg.CatchupTicks,
	}
}

// FrameTicks returns the frame period in ticks.
func (s *Scheduler) FrameTicks() uint32 { return s.frameTicks }

// step is the compare-match handler: close the active channel's pulse,
// advance, and arm the timer for the next event. It runs to completion and
// must not block.
func (s *Scheduler) step() {
	n := s.count.Load()
	cur := s.cursor

	if cur < n {
		// End the previous channel's pulse and move on.
		s.chans[cur].pin.Set(false)
		cur++
	} else {
		// All channels have fired (or nothing has yet): open a new frame.
		s.timer.SetCount(0)
		cur = 0
	}
	s.cursor = cur

	if cur < n {
		if w := s.chans[cur].width.Load(); w > 0 {
			s.timer.ArmCompare(s.timer.Count() + w)
			s.chans[cur].pin.Set(true)
		} else {
			// Zero-width channel: emit nothing, but keep the cycle moving.
			// One interrupt per skipped slot, armed strictly ahead of the
			// count so it cannot be missed.
			s.timer.ArmCompare(s.timer.Count() + 1)
		}
		return
	}

	// Frame tail: wait out the remainder of the frame period.
	now := s.timer.Count()
	if now+s.guardTicks < s.frameTicks {
		s.timer.ArmCompare(s.frameTicks)
	} else {
		// The boundary is too close (or behind us) to arm safely; a compare
		// at or behind the count would be missed. Re-arm a short hop ahead
		// and stretch the frame instead.
		s.timer.ArmCompare(now + s.catchupTicks)
	}
}

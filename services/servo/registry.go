package servo

import "servocode-go/errcode"

// Register adds a channel driving pin and returns its ID. The pin is
// configured as an output and driven low immediately. The registry holds at
// most MaxChannels entries; past that, InvalidID and
// errcode.CapacityExceeded are returned. There is no de-registration.
//
// The first successful registration arms the whole subsystem: it installs
// the compare handler, zeroes the timer and arms the first frame boundary.
// Before that the scheduler consumes no timer resources.
func (s *Scheduler) Register(pin OutputPin) (ChannelID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.count.Load()
	if n >= MaxChannels {
		return InvalidID, errcode.CapacityExceeded
	}
	if err := pin.ConfigureOutput(false); err != nil {
		return InvalidID, err
	}

	s.chans[n].pin = pin
	s.chans[n].width.Store(0)

	if n == 0 {
		s.timer.SetCompareHandler(s.step)
		s.timer.SetCount(0)
		s.timer.ArmCompare(s.frameTicks)
	}

	// Publish the slot only after it is fully initialised; the handler may
	// run between any two statements above.
	s.count.Store(n + 1)
	return ChannelID(n), nil
}

// Channels returns the number of registered channels.
func (s *Scheduler) Channels() int { return int(s.count.Load()) }

// SetPulse overwrites the stored pulse width for id, in ticks. It takes
// effect at that channel's next firing. Out-of-range IDs are ignored.
func (s *Scheduler) SetPulse(id ChannelID, ticks uint32) {
	if uint32(id) >= s.count.Load() {
		return
	}
	s.chans[id].width.Store(ticks)
}

// SetPulseByPin applies SetPulse to every channel whose output line reports
// the given pin number. No-op when nothing matches.
func (s *Scheduler) SetPulseByPin(pin int, ticks uint32) {
	n := s.count.Load()
	for i := uint32(0); i < n; i++ {
		if s.chans[i].pin.Number() == pin {
			s.chans[i].width.Store(ticks)
		}
	}
}

// PinOf returns the pin number a channel was registered on.
func (s *Scheduler) PinOf(id ChannelID) (int, bool) {
	if uint32(id) >= s.count.Load() {
		return 0, false
	}
	return s.chans[id].pin.Number(), true
}

// Pulse returns the stored pulse width for id in ticks, or 0 for an
// out-of-range ID.
func (s *Scheduler) Pulse(id ChannelID) uint32 {
	if uint32(id) >= s.count.Load() {
		return 0
	}
	return s.chans[id].width.Load()
}

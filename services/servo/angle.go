package servo

import (
	"servocode-go/x/mathx"
	"servocode-go/x/timex"
)

// The angle layer is a unit-conversion wrapper over the pulse setters:
// degrees map linearly onto [MinPulse, MaxPulse] and then to ticks.

// SetAngle commands channel id to deg degrees. Angles outside
// [MinAngle, MaxAngle] are rejected without mutating anything, matching the
// fail-silent policy of the pulse setters.
func (s *Scheduler) SetAngle(id ChannelID, deg int) {
	if t, ok := s.angleTicks(deg); ok {
		s.SetPulse(id, t)
	}
}

// SetAngleByPin commands every channel on the given pin number to deg.
func (s *Scheduler) SetAngleByPin(pin int, deg int) {
	if t, ok := s.angleTicks(deg); ok {
		s.SetPulseByPin(pin, t)
	}
}

// SetMicroseconds commands channel id to a raw pulse width in microseconds.
// Like the by-ticks setter it applies no range check, so widths outside the
// servo's tracking range can be written deliberately.
func (s *Scheduler) SetMicroseconds(id ChannelID, us uint32) {
	s.SetPulse(id, timex.MicrosToTicks(us, s.tickHz))
}

// Angle reports the angle whose pulse width is nearest the stored width for
// id. ok is false for an out-of-range ID or a width below the MinPulse
// floor (unset or ticks-commanded channels).
func (s *Scheduler) Angle(id ChannelID) (deg int, ok bool) {
	if uint32(id) >= s.count.Load() {
		return 0, false
	}
	w := s.chans[id].width.Load()
	if w < s.minPulse {
		return 0, false
	}
	span := s.maxPulse - s.minPulse
	if span == 0 {
		return MinAngle, true
	}
	d := int(mathx.RoundDiv(uint64(w-s.minPulse)*MaxAngle, uint64(span)))
	return mathx.Clamp(d, MinAngle, MaxAngle), true
}

func (s *Scheduler) angleTicks(deg int) (uint32, bool) {
	if deg < MinAngle || deg > MaxAngle {
		return 0, false
	}
	span := uint64(s.maxPulse - s.minPulse)
	return s.minPulse + uint32(mathx.RoundDiv(span*uint64(deg), MaxAngle)), true
}

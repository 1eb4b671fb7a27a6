package servo

import "time"

// Timer is the compare-match timer the scheduler drives. Implementations
// wrap a free-running hardware counter (or an emulation of one): the count
// increases monotonically between SetCount calls, and the registered
// compare handler fires once each time the count reaches the armed value.
//
// A compare value armed at or behind the current count is allowed to be
// missed entirely; the scheduler never relies on wrap-around delivery.
type Timer interface {
	// Count returns the current tick count.
	Count() uint32
	// SetCount overwrites the tick count. The scheduler uses this to open a
	// new frame at zero.
	SetCount(v uint32)
	// ArmCompare programs the next compare-match tick.
	ArmCompare(v uint32)
	// SetCompareHandler registers the compare-match callback. The scheduler
	// installs its handler exactly once and never replaces it.
	SetCompareHandler(fn func())
}

// OutputPin is one digital output line. It is the subset of a full GPIO
// handle the scheduler needs; Number is the line's identity for by-pin
// addressing.
type OutputPin interface {
	ConfigureOutput(initial bool) error
	Set(level bool)
	Number() int
}

// ChannelID identifies a registered channel. IDs are the registry index:
// stable, starting at 0, assigned in registration order.
type ChannelID uint8

// InvalidID is returned when registration fails.
const InvalidID ChannelID = 0xFF

// MaxChannels is the registry capacity. All channels share one timer, so
// their pulses are emitted back-to-back within each frame.
const MaxChannels = 9

const (
	// MinAngle and MaxAngle bound the angle setters.
	MinAngle = 0
	MaxAngle = 180
)

// Config carries the timing contract for a Scheduler. Zero fields take the
// defaults below, which match the common hobby-servo profile: a 20 ms frame
// with pulses between 1 and 2 ms on a 1 MHz tick.
type Config struct {
	// TickHz is the Timer's tick rate. Default 1_000_000.
	TickHz uint32
	// FramePeriod is the fixed repeating period within which every channel
	// fires once. Default 20ms.
	FramePeriod time.Duration
	// MinPulse and MaxPulse are the pulse widths commanded by MinAngle and
	// MaxAngle. Defaults 1ms and 2ms.
	MinPulse time.Duration
	MaxPulse time.Duration
	// GuardTicks is the margin under which a compare armed exactly at the
	// frame boundary is considered at risk of being missed. Default 50.
	GuardTicks uint32
	// CatchupTicks is the short look-ahead used instead when the boundary is
	// inside the guard margin, trading a slightly stretched frame for
	// guaranteed forward progress. Default 20.
	CatchupTicks uint32
}

func (c *Config) applyDefaults() {
	if c.TickHz == 0 {
		c.TickHz = 1_000_000
	}
	if c.FramePeriod <= 0 {
		c.FramePeriod = 20 * time.Millisecond
	}
	if c.MinPulse <= 0 {
		c.MinPulse = time.Millisecond
	}
	if c.MaxPulse <= 0 {
		c.MaxPulse = 2 * time.Millisecond
	}
	if c.GuardTicks == 0 {
		c.GuardTicks = 50
	}
	if c.CatchupTicks == 0 {
		c.CatchupTicks = 20
	}
}

// Package servotest provides deterministic doubles for the servo facades:
// a manually advanced compare-match timer and pins that record every level
// transition together with the timer count at which it happened. Package
// tests, the console tests and the host demo all share them.
package servotest

import "servocode-go/services/servo"

var (
	_ servo.Timer     = (*Timer)(nil)
	_ servo.OutputPin = (*Pin)(nil)
)

// Timer implements the servo Timer facade with a hand-cranked counter.
//
// Advance moves the counter one tick at a time and fires the compare
// handler whenever the count reaches the armed value. A compare armed at or
// behind the current count never fires, which reproduces the hardware
// behaviour the scheduler's guard margin exists for.
type Timer struct {
	count   uint32
	compare uint32
	armed   bool
	handler func()
}

func (t *Timer) Count() uint32              { return t.count }
func (t *Timer) SetCount(v uint32)          { t.count = v }
func (t *Timer) SetCompareHandler(f func()) { t.handler = f }

func (t *Timer) ArmCompare(v uint32) {
	t.compare = v
	t.armed = true
}

// Armed reports whether a compare is pending, and its value.
func (t *Timer) Armed() (uint32, bool) { return t.compare, t.armed }

// Advance cranks the counter forward by n ticks. The handler may reset the
// count or re-arm the compare mid-advance; the loop continues from the new
// state, like a free-running counter would.
func (t *Timer) Advance(n uint32) {
	for i := uint32(0); i < n; i++ {
		t.count++
		if t.armed && t.count == t.compare {
			t.armed = false
			if t.handler != nil {
				t.handler()
			}
		}
	}
}

// Transition is one recorded pin edge.
type Transition struct {
	Count uint32 // timer count when the edge happened
	Level bool
}

// Pulse is one reconstructed HIGH span.
type Pulse struct {
	Start uint32 // count at the rising edge
	Width uint32 // ticks until the falling edge
}

// Pin records output activity against a Timer's count.
type Pin struct {
	Num        int
	Configured bool
	Level      bool
	Events     []Transition

	clock *Timer
}

// NewPin returns a recording pin whose transitions are stamped with t's
// count.
func NewPin(num int, t *Timer) *Pin {
	return &Pin{Num: num, clock: t}
}

func (p *Pin) Number() int { return p.Num }

func (p *Pin) ConfigureOutput(initial bool) error {
	p.Configured = true
	p.Level = initial
	return nil
}

// Set records an edge only when the level actually changes.
func (p *Pin) Set(level bool) {
	if level == p.Level {
		return
	}
	p.Level = level
	p.Events = append(p.Events, Transition{Count: p.clock.Count(), Level: level})
}

// Pulses pairs rising and falling edges into HIGH spans. A trailing
// unterminated HIGH is dropped.
func (p *Pin) Pulses() []Pulse {
	var out []Pulse
	var start uint32
	high := false
	for _, e := range p.Events {
		if e.Level && !high {
			start, high = e.Count, true
		} else if !e.Level && high {
			out = append(out, Pulse{Start: start, Width: e.Count - start})
			high = false
		}
	}
	return out
}

// Factory hands out pins by number, creating them on first use. It serves
// the console's attach command in tests and the host demo.
type Factory struct {
	clock *Timer
	pins  map[int]*Pin
}

func NewFactory(t *Timer) *Factory {
	return &Factory{clock: t, pins: map[int]*Pin{}}
}

func (f *Factory) ByNumber(n int) (servo.OutputPin, bool) {
	if n < 0 {
		return nil, false
	}
	return f.Pin(n), true
}

// Pin returns the concrete recording pin for n, creating it on first use.
func (f *Factory) Pin(n int) *Pin {
	p, ok := f.pins[n]
	if !ok {
		p = NewPin(n, f.clock)
		f.pins[n] = p
	}
	return p
}

package servo_test

import (
	"testing"

	"servocode-go/services/servo"
	"servocode-go/services/servo/servotest"
)

func TestFrameCycle_PulseTrain(t *testing.T) {
	tm := &servotest.Timer{}
	s := servo.New(tm, testConfig())

	p0 := servotest.NewPin(0, tm)
	p1 := servotest.NewPin(1, tm)
	p2 := servotest.NewPin(2, tm)
	id0, _ := s.Register(p0)
	id1, _ := s.Register(p1)
	id2, _ := s.Register(p2)

	s.SetPulse(id0, 100)
	s.SetPulse(id1, 200)
	s.SetPulse(id2, 0)

	// First boundary opens the frame; run two more full frames after it.
	tm.Advance(3000)

	pulses0 := p0.Pulses()
	if len(pulses0) < 2 {
		t.Fatalf("channel 0: got %d pulses, want at least 2", len(pulses0))
	}
	for i, p := range pulses0 {
		// The frame reset precedes channel 0's pulse: it starts at count 0.
		if p.Start != 0 || p.Width != 100 {
			t.Fatalf("channel 0 pulse %d: got start=%d width=%d, want 0/100", i, p.Start, p.Width)
		}
	}

	pulses1 := p1.Pulses()
	if len(pulses1) < 2 {
		t.Fatalf("channel 1: got %d pulses, want at least 2", len(pulses1))
	}
	for i, p := range pulses1 {
		// Back-to-back in registration order: channel 1 follows channel 0.
		if p.Start != 100 || p.Width != 200 {
			t.Fatalf("channel 1 pulse %d: got start=%d width=%d, want 100/200", i, p.Start, p.Width)
		}
	}

	// Zero-width channel keeps its slot but never drives the line.
	if len(p2.Events) != 0 {
		t.Fatalf("channel 2 drove its line: %v", p2.Events)
	}
}

func TestZeroWidthChannel_DoesNotStallCycle(t *testing.T) {
	tm := &servotest.Timer{}
	s := servo.New(tm, testConfig())

	p0 := servotest.NewPin(0, tm)
	p1 := servotest.NewPin(1, tm)
	id0, _ := s.Register(p0)
	s.Register(p1)

	// Only the first channel has a width; the second is skipped every frame.
	s.SetPulse(id0, 100)

	tm.Advance(4000)

	if got := len(p0.Pulses()); got < 3 {
		t.Fatalf("cycle stalled behind zero-width channel: %d pulses", got)
	}
	if len(p1.Events) != 0 {
		t.Fatal("zero-width channel drove its line")
	}
}

func TestFrameTail_GuardMarginArmsStrictlyAhead(t *testing.T) {
	tm := &servotest.Timer{}
	s := servo.New(tm, testConfig())

	p := servotest.NewPin(0, tm)
	id, _ := s.Register(p)

	// Pulse ends 10 ticks before the boundary: inside the 50-tick guard.
	s.SetPulse(id, 990)

	tm.Advance(1000) // open the frame; pulse armed for count 990
	tm.Advance(990)  // pulse end lands in the guard window

	cmp, armed := tm.Armed()
	if !armed {
		t.Fatal("no compare armed in frame tail")
	}
	if cmp <= tm.Count() {
		t.Fatalf("compare armed at %d with count %d; must be strictly ahead", cmp, tm.Count())
	}

	// The catch-up hop stretches the frame instead of stalling it.
	tm.Advance(cmp - tm.Count())
	tm.Advance(990)
	if got := len(p.Pulses()); got < 2 {
		t.Fatalf("cycle did not continue past guard fallback: %d pulses", got)
	}
}

func TestOverbudgetFrame_StretchesInsteadOfCorrupting(t *testing.T) {
	tm := &servotest.Timer{}
	s := servo.New(tm, testConfig())

	p0 := servotest.NewPin(0, tm)
	p1 := servotest.NewPin(1, tm)
	id0, _ := s.Register(p0)
	id1, _ := s.Register(p1)

	// 600+600 ticks in a 1000-tick frame: a configuration contract
	// violation that must degrade to a longer frame, not a broken train.
	s.SetPulse(id0, 600)
	s.SetPulse(id1, 600)

	tm.Advance(5000)

	for _, tc := range []struct {
		name string
		pin  *servotest.Pin
	}{{"ch0", p0}, {"ch1", p1}} {
		pulses := tc.pin.Pulses()
		if len(pulses) < 2 {
			t.Fatalf("%s: got %d pulses, want at least 2", tc.name, len(pulses))
		}
		for i, p := range pulses {
			if p.Width != 600 {
				t.Fatalf("%s pulse %d: width %d, want 600", tc.name, i, p.Width)
			}
		}
	}
}

func TestSetPulse_AppliesToNextFiring(t *testing.T) {
	tm := &servotest.Timer{}
	s := servo.New(tm, testConfig())

	p := servotest.NewPin(0, tm)
	id, _ := s.Register(p)
	s.SetPulse(id, 100)

	// Open the frame and stop mid-pulse, then rewrite the width.
	tm.Advance(1000)
	tm.Advance(50)
	s.SetPulse(id, 300)

	tm.Advance(4000)

	pulses := p.Pulses()
	if len(pulses) < 2 {
		t.Fatalf("got %d pulses, want at least 2", len(pulses))
	}
	if pulses[0].Width != 100 {
		t.Fatalf("in-flight pulse width changed: got %d, want 100", pulses[0].Width)
	}
	for i, pl := range pulses[1:] {
		if pl.Width != 300 {
			t.Fatalf("pulse %d after rewrite: width %d, want 300", i+1, pl.Width)
		}
	}
}

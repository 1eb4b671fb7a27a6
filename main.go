package main

// Host-side demonstration: run the pulse scheduler against the simulated
// timer for a few frames and print each channel's pulse train.

import (
	"os"

	"servocode-go/services/servo"
	"servocode-go/services/servo/servotest"
	"servocode-go/x/fmtx"
)

func main() {
	tm := &servotest.Timer{}
	s := servo.New(tm, servo.Config{TickHz: 1_000_000})

	angles := []int{0, 90, 180}
	pins := make([]*servotest.Pin, len(angles))
	for i, deg := range angles {
		pins[i] = servotest.NewPin(i, tm)
		id, err := s.Register(pins[i])
		if err != nil {
			fmtx.Fprintf(os.Stderr, "register pin %d: %v\n", i, err)
			os.Exit(1)
		}
		s.SetAngle(id, deg)
	}

	tm.Advance(3 * s.FrameTicks())

	for i, p := range pins {
		fmtx.Fprintf(os.Stdout, "channel %d (pin %d, %d deg):\n", i, p.Num, angles[i])
		for _, pl := range p.Pulses() {
			fmtx.Fprintf(os.Stdout, "  high at tick %d for %d ticks\n", pl.Start, pl.Width)
		}
	}
}

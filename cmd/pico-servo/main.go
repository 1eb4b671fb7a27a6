package main

import (
	"context"
	"time"

	"servocode-go/clock"
	"servocode-go/drivers/pcf8574"
	"servocode-go/platform"
	"servocode-go/services/console"
	"servocode-go/services/servo"
)

const tickHz = 1_000_000

// pinSource merges board pins and expander lines into one numbering space;
// expander lines start at pcf8574.PinBase.
type pinSource struct {
	board    platform.PinFactory
	expander *pcf8574.Device
}

func (p pinSource) ByNumber(n int) (servo.OutputPin, bool) {
	if p.expander != nil && n >= pcf8574.PinBase && n < pcf8574.PinBase+8 {
		return p.expander.OutputPin(uint8(n - pcf8574.PinBase)), true
	}
	return p.board.ByNumber(n)
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("servocode boot")

	tm := clock.New(tickHz)
	sched := servo.New(tm, servo.Config{TickHz: tickHz})

	pins := pinSource{board: platform.Pins()}
	if bus, ok := platform.I2CBus(0); ok {
		exp := pcf8574.New(bus)
		if err := exp.Configure(pcf8574.Config{}); err == nil {
			pins.expander = exp
			println("pcf8574 expander on lines 100..107")
		} else {
			println("pcf8574 not responding:", err.Error())
		}
	}

	serial, ok := platform.Serial(0)
	if !ok {
		println("no serial transport; halting")
		return
	}

	c := console.New(serial, sched, pins)
	for {
		if err := c.Run(context.Background()); err != nil {
			println("console:", err.Error())
		}
		time.Sleep(time.Second)
	}
}

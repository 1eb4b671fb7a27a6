// Package console is a line-oriented command interface over a servo
// scheduler: the foreground client code of the subsystem, suitable for a
// UART on firmware builds or stdin on a host. One command per line; replies
// are single lines starting with "ok" or "err <code>".
package console

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/google/shlex"

	"servocode-go/errcode"
	"servocode-go/services/servo"
	"servocode-go/x/conv"
	"servocode-go/x/fmtx"
	"servocode-go/x/mathx"
	"servocode-go/x/ramp"
)

// PinFactory supplies output pins by number (platform- or test-provided).
type PinFactory interface {
	ByNumber(n int) (servo.OutputPin, bool)
}

// Console binds a scheduler and a pin source to a line transport.
type Console struct {
	rw   io.ReadWriter
	s    *servo.Scheduler
	pins PinFactory
}

func New(rw io.ReadWriter, s *servo.Scheduler, pins PinFactory) *Console {
	return &Console{rw: rw, s: s, pins: pins}
}

// Run executes commands until the reader is exhausted or ctx is cancelled.
func (c *Console) Run(ctx context.Context) error {
	sc := bufio.NewScanner(c.rw)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Exec(ctx, sc.Text())
	}
	return sc.Err()
}

// Exec parses and runs one command line. Empty lines are ignored.
func (c *Console) Exec(ctx context.Context, line string) {
	args, err := shlex.Split(line)
	if err != nil {
		c.fail(errcode.InvalidParams)
		return
	}
	if len(args) == 0 {
		return
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "attach":
		c.attach(rest)
	case "set":
		c.setAngle(rest)
	case "setpin":
		c.setAngleByPin(rest)
	case "us":
		c.setMicros(rest)
	case "ticks":
		c.setTicks(rest)
	case "get":
		c.get(rest)
	case "list":
		c.list()
	case "sweep":
		c.sweep(ctx, rest)
	case "help":
		c.help()
	default:
		c.fail(errcode.Unsupported)
	}
}

func (c *Console) attach(args []string) {
	pin, ok := argInt(args, 0)
	if !ok {
		c.fail(errcode.InvalidParams)
		return
	}
	p, ok := c.pins.ByNumber(pin)
	if !ok {
		c.fail(errcode.UnknownPin)
		return
	}
	id, err := c.s.Register(p)
	if err != nil {
		c.fail(errcode.Of(err))
		return
	}
	fmtx.Fprintf(c.rw, "ok id=%d\n", int(id))
}

func (c *Console) setAngle(args []string) {
	id, ok1 := argID(args, 0)
	deg, ok2 := argInt(args, 1)
	if !ok1 || !ok2 {
		c.fail(errcode.InvalidParams)
		return
	}
	if int(id) >= c.s.Channels() {
		c.fail(errcode.UnknownChannel)
		return
	}
	if deg < servo.MinAngle || deg > servo.MaxAngle {
		c.fail(errcode.InvalidAngle)
		return
	}
	c.s.SetAngle(id, deg)
	c.ok()
}

func (c *Console) setAngleByPin(args []string) {
	pin, ok1 := argInt(args, 0)
	deg, ok2 := argInt(args, 1)
	if !ok1 || !ok2 {
		c.fail(errcode.InvalidParams)
		return
	}
	if deg < servo.MinAngle || deg > servo.MaxAngle {
		c.fail(errcode.InvalidAngle)
		return
	}
	c.s.SetAngleByPin(pin, deg)
	c.ok()
}

func (c *Console) setMicros(args []string) {
	id, ok1 := argID(args, 0)
	us, ok2 := argInt(args, 1)
	if !ok1 || !ok2 || us < 0 {
		c.fail(errcode.InvalidParams)
		return
	}
	if int(id) >= c.s.Channels() {
		c.fail(errcode.UnknownChannel)
		return
	}
	c.s.SetMicroseconds(id, uint32(us))
	c.ok()
}

func (c *Console) setTicks(args []string) {
	id, ok1 := argID(args, 0)
	ticks, ok2 := argInt(args, 1)
	if !ok1 || !ok2 || ticks < 0 {
		c.fail(errcode.InvalidParams)
		return
	}
	if int(id) >= c.s.Channels() {
		c.fail(errcode.UnknownChannel)
		return
	}
	c.s.SetPulse(id, uint32(ticks))
	c.ok()
}

func (c *Console) get(args []string) {
	id, ok := argID(args, 0)
	if !ok {
		c.fail(errcode.InvalidParams)
		return
	}
	if int(id) >= c.s.Channels() {
		c.fail(errcode.UnknownChannel)
		return
	}
	if deg, ok := c.s.Angle(id); ok {
		fmtx.Fprintf(c.rw, "ok ticks=%d angle=%d\n", c.s.Pulse(id), deg)
	} else {
		fmtx.Fprintf(c.rw, "ok ticks=%d angle=-\n", c.s.Pulse(id))
	}
}

func (c *Console) list() {
	n := c.s.Channels()
	fmtx.Fprintf(c.rw, "ok channels=%d\n", n)
	for id := 0; id < n; id++ {
		pin, _ := c.s.PinOf(servo.ChannelID(id))
		fmtx.Fprintf(c.rw, "%d pin=%d ticks=%d\n", id, pin, c.s.Pulse(servo.ChannelID(id)))
	}
}

// sweep moves a channel to a target angle over a duration, stepping through
// intermediate angles. Blocking; one sweep at a time per console.
func (c *Console) sweep(ctx context.Context, args []string) {
	id, ok1 := argID(args, 0)
	deg, ok2 := argInt(args, 1)
	ms, ok3 := argInt(args, 2)
	if !ok1 || !ok2 || !ok3 || ms < 0 {
		c.fail(errcode.InvalidParams)
		return
	}
	steps := 20
	if len(args) > 3 {
		v, ok := argInt(args, 3)
		if !ok || v <= 0 {
			c.fail(errcode.InvalidParams)
			return
		}
		steps = mathx.Min(v, 1000)
	}
	if int(id) >= c.s.Channels() {
		c.fail(errcode.UnknownChannel)
		return
	}
	if deg < servo.MinAngle || deg > servo.MaxAngle {
		c.fail(errcode.InvalidAngle)
		return
	}

	from, ok := c.s.Angle(id)
	if !ok {
		from = servo.MinAngle
	}
	ramp.Linear(uint16(from), uint16(deg), time.Duration(ms)*time.Millisecond, uint16(steps),
		func(d time.Duration) bool {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(d):
				return true
			}
		},
		func(v uint16) { c.s.SetAngle(id, int(v)) },
	)
	c.ok()
}

func (c *Console) help() {
	fmtx.Fprintf(c.rw, "ok commands: attach set setpin us ticks get list sweep help\n")
}

func (c *Console) ok() { fmtx.Fprintf(c.rw, "ok\n") }

func (c *Console) fail(e errcode.Code) { fmtx.Fprintf(c.rw, "err %s\n", string(e)) }

func argInt(args []string, i int) (int, bool) {
	if i >= len(args) {
		return 0, false
	}
	v, ok := conv.Atoi(args[i])
	if !ok || v < -1<<31 || v > 1<<31-1 {
		return 0, false
	}
	return int(v), true
}

func argID(args []string, i int) (servo.ChannelID, bool) {
	v, ok := argInt(args, i)
	if !ok || v < 0 || v >= servo.MaxChannels {
		return 0, false
	}
	return servo.ChannelID(v), true
}

//go:build !(rp2040 || rp2350)

package platform

import (
	"io"
	"os"

	"tinygo.org/x/drivers"

	"servocode-go/services/servo"
)

// Host builds have no board pins or I2C; the factories degrade so untagged
// mains still build and report sensibly.

type hostPins struct{}

func Pins() PinFactory { return hostPins{} }

func (hostPins) ByNumber(int) (servo.OutputPin, bool) { return nil, false }

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

// Serial returns stdin/stdout as the console transport.
func Serial(uint32) (io.ReadWriter, bool) { return stdio{}, true }

// I2CBus reports no bus on host builds.
func I2CBus(uint32) (drivers.I2C, bool) { return nil, false }

//go:build rp2040 || rp2350

package platform

import (
	"context"
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"servocode-go/services/servo"
)

// mcuPin adapts machine.Pin to the servo OutputPin facade.
type mcuPin struct {
	p machine.Pin
	n int
}

func (r *mcuPin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *mcuPin) Set(level bool) { r.p.Set(level) }
func (r *mcuPin) Number() int    { return r.n }

type mcuPins struct{}

// Pins returns the board pin factory.
func Pins() PinFactory { return mcuPins{} }

func (mcuPins) ByNumber(n int) (servo.OutputPin, bool) {
	if n < 0 || n > 29 { // RP2 GPIO bank
		return nil, false
	}
	return &mcuPin{p: machine.Pin(n), n: n}, true
}

// serial adapts uartx to io.ReadWriter for the console loop.
type serial struct{ u *uartx.UART }

func (s serial) Read(p []byte) (int, error) {
	return s.u.RecvSomeContext(context.Background(), p)
}

func (s serial) Write(p []byte) (int, error) { return s.u.Write(p) }

// Serial configures UART0 on the default pins and returns it as the
// console transport. baud==0 defaults to 115200.
func Serial(baud uint32) (io.ReadWriter, bool) {
	if baud == 0 {
		baud = 115200
	}
	hw := uartx.UART0
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART_TX_PIN,
		RX:       machine.UART_RX_PIN,
	})
	return serial{u: hw}, true
}

// I2CBus configures I2C0 on the default pins for expander-backed channels.
func I2CBus(hz uint32) (drivers.I2C, bool) {
	if hz == 0 {
		hz = 100_000
	}
	if err := machine.I2C0.Configure(machine.I2CConfig{Frequency: hz}); err != nil {
		return nil, false
	}
	return machine.I2C0, true
}

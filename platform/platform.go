// Package platform selects hardware factories by build target, in the
// spirit of a HAL provider layer: firmware builds hand out machine-backed
// pins, a uartx serial console and the MCU I2C bus; host builds fall back
// to stdio and report no physical resources.
package platform

import "servocode-go/services/servo"

// PinFactory hands out output pins by board pin number.
type PinFactory interface {
	ByNumber(n int) (servo.OutputPin, bool)
}

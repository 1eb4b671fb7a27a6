// Package pcf8574 drives the PCF8574 8-bit I2C GPIO expander and adapts its
// lines to the servo OutputPin facade, so pulse channels can live on
// expander pins when the MCU's own pins run out.
//
// The chip has no registers: writing one byte sets all eight quasi-
// bidirectional lines, reading one byte samples them. A line is "high" via
// a weak pull-up only, so it can source almost no current; budget for that
// when wiring servo signal lines through it.
//
// NOTE: I2C.Tx must perform a plain write (r == nil) or a plain read
// (w == nil); the chip uses no repeated-start sequences.
package pcf8574

import (
	"sync"

	"tinygo.org/x/drivers"
)

// DefaultAddress is the base address with A0..A2 strapped low.
const DefaultAddress = 0x20

// Device is one PCF8574 on an I2C bus. All lines power up high; Configure
// writes the chosen initial state.
type Device struct {
	bus  drivers.I2C
	addr uint16

	mu    sync.Mutex
	state uint8
	buf   [1]byte
}

// Config controls addressing and the initial line state.
type Config struct {
	// Address defaults to DefaultAddress if zero.
	Address uint8
	// Initial is the line state written during Configure. The chip's own
	// power-up state is 0xFF (all high).
	Initial uint8
}

// New creates a driver on a preconfigured bus. It does not touch the chip;
// call Configure first.
func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, state: 0xFF}
}

// Configure sets the address and writes the initial line state.
func (d *Device) Configure(cfg Config) error {
	if cfg.Address == 0 {
		cfg.Address = DefaultAddress
	}
	d.addr = uint16(cfg.Address)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = cfg.Initial
	return d.writeLocked()
}

// SetLine drives a single line: true for the weak pull-up high, false to
// sink low.
func (d *Device) SetLine(line uint8, level bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if level {
		d.state |= 1 << line
	} else {
		d.state &^= 1 << line
	}
	return d.writeLocked()
}

// SetAll replaces the whole line state in one transaction.
func (d *Device) SetAll(state uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = state
	return d.writeLocked()
}

// State returns the last written line state.
func (d *Device) State() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Read samples all eight lines.
func (d *Device) Read() (Report, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.bus.Tx(d.addr, nil, d.buf[:]); err != nil {
		return 0, err
	}
	return Report(d.buf[0]), nil
}

func (d *Device) writeLocked() error {
	d.buf[0] = d.state
	return d.bus.Tx(d.addr, d.buf[:], nil)
}

// Report is a sampled line snapshot.
type Report uint8

// Line reports whether the given line reads high.
func (r Report) Line(line uint8) bool { return r&(1<<line) != 0 }

// Pin adapts one expander line to the servo OutputPin facade. Numbers are
// offset by PinBase so expander lines and MCU pins share one numbering
// space in by-pin lookups.
type Pin struct {
	dev  *Device
	line uint8
}

// PinBase offsets expander line numbers in Pin.Number.
const PinBase = 100

// OutputPin returns the adapter for one line.
func (d *Device) OutputPin(line uint8) Pin {
	return Pin{dev: d, line: line}
}

func (p Pin) ConfigureOutput(initial bool) error {
	return p.dev.SetLine(p.line, initial)
}

// Set drives the line. Bus errors are swallowed: the scheduler calls this
// from compare-match context where nothing can consume an error.
func (p Pin) Set(level bool) {
	_ = p.dev.SetLine(p.line, level)
}

func (p Pin) Number() int { return PinBase + int(p.line) }

package pcf8574

import (
	"errors"
	"testing"
)

// fakeBus records writes and serves canned reads.
type fakeBus struct {
	addr   uint16
	writes []byte
	read   byte
	err    error
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	b.addr = addr
	if b.err != nil {
		return b.err
	}
	if len(w) > 0 {
		b.writes = append(b.writes, w...)
	}
	if len(r) > 0 {
		r[0] = b.read
	}
	return nil
}

func TestConfigure_DefaultsAddressAndWritesInitial(t *testing.T) {
	b := &fakeBus{}
	d := New(b)
	if err := d.Configure(Config{Initial: 0x0F}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if b.addr != DefaultAddress {
		t.Fatalf("addr: got %#x, want %#x", b.addr, DefaultAddress)
	}
	if len(b.writes) != 1 || b.writes[0] != 0x0F {
		t.Fatalf("initial write: got %v, want [0x0F]", b.writes)
	}
}

func TestSetLine_UpdatesOnlyThatBit(t *testing.T) {
	b := &fakeBus{}
	d := New(b)
	if err := d.Configure(Config{Initial: 0x00}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if err := d.SetLine(3, true); err != nil {
		t.Fatalf("SetLine high: %v", err)
	}
	if got := d.State(); got != 0x08 {
		t.Fatalf("state after set: got %#x, want 0x08", got)
	}

	if err := d.SetLine(3, false); err != nil {
		t.Fatalf("SetLine low: %v", err)
	}
	if got := d.State(); got != 0x00 {
		t.Fatalf("state after clear: got %#x, want 0x00", got)
	}

	// One byte on the wire per transition, after the initial write.
	if len(b.writes) != 3 {
		t.Fatalf("wire writes: got %d, want 3", len(b.writes))
	}
}

func TestRead_ReportsLines(t *testing.T) {
	b := &fakeBus{read: 0xA0}
	d := New(b)
	if err := d.Configure(Config{}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	rep, err := d.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !rep.Line(7) || !rep.Line(5) || rep.Line(0) {
		t.Fatalf("report %#x: unexpected line decode", uint8(rep))
	}
}

func TestOutputPin_AdaptsLine(t *testing.T) {
	b := &fakeBus{}
	d := New(b)
	if err := d.Configure(Config{Initial: 0x00}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	p := d.OutputPin(2)
	if got := p.Number(); got != PinBase+2 {
		t.Fatalf("Number: got %d, want %d", got, PinBase+2)
	}
	if err := p.ConfigureOutput(false); err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}
	p.Set(true)
	if got := d.State(); got != 0x04 {
		t.Fatalf("state after pin Set: got %#x, want 0x04", got)
	}
}

func TestSetLine_PropagatesBusError(t *testing.T) {
	b := &fakeBus{}
	d := New(b)
	if err := d.Configure(Config{}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	b.err = errors.New("nak")
	if err := d.SetLine(0, true); err == nil {
		t.Fatal("expected bus error")
	}
}

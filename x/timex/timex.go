// Package timex converts between wall durations and counts of a hardware
// timer's ticks. All conversions round to nearest and use 64-bit
// intermediates so microsecond-scale pulses at MHz tick rates do not
// truncate.
package timex

import (
	"time"

	"servocode-go/x/mathx"
)

// TicksOf returns the number of ticks of a hz-rate counter that span d.
// Non-positive durations and hz==0 yield 0.
func TicksOf(d time.Duration, hz uint32) uint32 {
	if d <= 0 || hz == 0 {
		return 0
	}
	return uint32(mathx.RoundDiv(uint64(d)*uint64(hz), uint64(time.Second)))
}

// MicrosToTicks returns the tick count spanning us microseconds.
func MicrosToTicks(us uint32, hz uint32) uint32 {
	return uint32(mathx.RoundDiv(uint64(us)*uint64(hz), 1_000_000))
}

// DurationOf returns the wall duration of n ticks of a hz-rate counter.
// hz==0 yields 0.
func DurationOf(n uint32, hz uint32) time.Duration {
	if hz == 0 {
		return 0
	}
	return time.Duration(mathx.RoundDiv(uint64(n)*uint64(time.Second), uint64(hz)))
}

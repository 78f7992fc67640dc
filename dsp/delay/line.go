// Package delay provides a circular delay line with integer and
// interpolated taps.
package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-augment/dsp/interp"
)

// MinFractionalDelay is the smallest delay ReadFractional serves; the
// Hermite kernel needs one newer sample than the integer tap.
const MinFractionalDelay = 2

// Line is a circular delay line. Tap(d) returns the sample written d
// writes ago, so Tap(1) is the most recent one.
type Line struct {
	buf   []float64
	write int
}

// New returns a zeroed line holding size samples.
func New(size int) (*Line, error) {
	if size <= MinFractionalDelay+2 {
		return nil, fmt.Errorf("delay: size must be > %d: %d", MinFractionalDelay+2, size)
	}

	return &Line{buf: make([]float64, size)}, nil
}

// Len returns the capacity in samples.
func (l *Line) Len() int {
	return len(l.buf)
}

// MaxDelay returns the largest delay ReadFractional serves.
func (l *Line) MaxDelay() float64 {
	return float64(len(l.buf) - 3)
}

// Write appends one sample, overwriting the oldest.
func (l *Line) Write(x float64) {
	l.buf[l.write] = x

	l.write++
	if l.write == len(l.buf) {
		l.write = 0
	}
}

// Tap returns the sample written delay writes ago. delay is taken modulo
// the line length.
func (l *Line) Tap(delay int) float64 {
	idx := (l.write - delay) % len(l.buf)
	if idx < 0 {
		idx += len(l.buf)
	}

	return l.buf[idx]
}

// ReadFractional returns the signal delay samples ago, interpolated with
// the 4-point Hermite kernel. delay is clamped to
// [MinFractionalDelay, MaxDelay].
func (l *Line) ReadFractional(delay float64) float64 {
	delay = min(max(delay, MinFractionalDelay), l.MaxDelay())

	p := int(math.Floor(delay))
	t := delay - float64(p)

	return interp.Hermite4(t, l.Tap(p-1), l.Tap(p), l.Tap(p+1), l.Tap(p+2))
}

// Reset zeroes the line.
func (l *Line) Reset() {
	clear(l.buf)
	l.write = 0
}

package augment

import (
	"math"
	"time"
)

// Waveform is a mono sample buffer with its sample rate in Hz.
type Waveform struct {
	Samples    []float64
	SampleRate int
}

// Clone returns a copy that shares no memory with w.
func (w Waveform) Clone() Waveform {
	return Waveform{
		Samples:    append([]float64(nil), w.Samples...),
		SampleRate: w.SampleRate,
	}
}

// Peak returns the largest absolute sample value.
func (w Waveform) Peak() float64 {
	peak := 0.0
	for _, v := range w.Samples {
		peak = math.Max(peak, math.Abs(v))
	}

	return peak
}

// Duration returns the length of w in time. It is zero for an invalid rate.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

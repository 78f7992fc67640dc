package testutil

import "math"

// RMS returns the root-mean-square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}

// EstimateFrequency estimates the frequency of a roughly sinusoidal signal
// from its rising zero crossings.
func EstimateFrequency(x []float64, sampleRate float64) float64 {
	first, last, count := -1.0, -1.0, 0

	for i := 1; i < len(x); i++ {
		if x[i-1] < 0 && x[i] >= 0 {
			// linear interpolation of the crossing point
			pos := float64(i-1) + x[i-1]/(x[i-1]-x[i])
			if first < 0 {
				first = pos
			}

			last = pos
			count++
		}
	}

	if count < 2 {
		return 0
	}

	return float64(count-1) * sampleRate / (last - first)
}

// ToneAmplitude returns the amplitude of the freq component of x, evaluated
// as a single DFT bin with the Goertzel recurrence. It is exact for tones
// that complete a whole number of cycles in x.
func ToneAmplitude(x []float64, freq, sampleRate float64) float64 {
	if len(x) == 0 {
		return 0
	}

	coeff := 2 * math.Cos(2*math.Pi*freq/sampleRate)

	var s0, s1 float64
	for _, v := range x {
		s0, s1 = v+coeff*s0-s1, s0
	}

	power := s0*s0 + s1*s1 - coeff*s0*s1

	return 2 * math.Sqrt(max(power, 0)) / float64(len(x))
}

// Package window generates analysis windows for the STFT-based kernels
// (spectral pitch shift, mel spectrogram).
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window shape.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic generates the periodic (DFT-even) variant, which overlap-adds
// to a constant at hop = size/4 and is what STFT analysis expects.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns the coefficients of a window of type t and length size.
// It returns nil for a non-positive size.
func Generate(t Type, size int, opts ...Option) []float64 {
	if validateLength(size) != nil {
		return nil
	}

	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	out := make([]float64, size)
	for n := range out {
		out[n] = evalWindow(t, samplePosition(n, size, cfg.periodic))
	}

	return out
}

// Hann returns a Hann window of length size.
func Hann(size int, opts ...Option) ([]float64, error) {
	err := validateLength(size)
	if err != nil {
		return nil, err
	}

	return Generate(TypeHann, size, opts...), nil
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(2*math.Pi*x)
	default:
		return 1
	}
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}

package effects

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParameter is returned by constructors and setters for values
// outside the accepted range.
var ErrInvalidParameter = errors.New("effects: invalid parameter")

func checkSampleRate(name string, sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("%s sample rate must be positive and finite: %f: %w", name, sampleRate, ErrInvalidParameter)
	}

	return nil
}

func checkRange(name, param string, v, lo, hi float64) error {
	if v < lo || v > hi || math.IsNaN(v) {
		return fmt.Errorf("%s %s must be in [%g, %g]: %g: %w", name, param, lo, hi, v, ErrInvalidParameter)
	}

	return nil
}

func checkFinite(name, param string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %s must be finite: %f: %w", name, param, v, ErrInvalidParameter)
	}

	return nil
}

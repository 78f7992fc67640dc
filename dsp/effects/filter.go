package effects

import (
	"fmt"

	"github.com/cwbudde/algo-augment/dsp/filter/biquad"
)

// FilterMode selects the response of a Filter.
type FilterMode int

const (
	Lowpass FilterMode = iota
	Highpass
)

func (m FilterMode) String() string {
	switch m {
	case Lowpass:
		return "lowpass"
	case Highpass:
		return "highpass"
	default:
		return fmt.Sprintf("FilterMode(%d)", int(m))
	}
}

// maxCutoffFraction keeps the cutoff strictly below Nyquist.
const maxCutoffFraction = 0.499

// Filter is a Butterworth (Q = 1/sqrt2) second-order lowpass or highpass.
type Filter struct {
	mode       FilterMode
	sampleRate float64
	cutoffHz   float64
	section    *biquad.Section
}

// NewFilter returns a filter of the given mode with its cutoff at a tenth
// of the sample rate.
func NewFilter(mode FilterMode, sampleRate float64) (*Filter, error) {
	err := checkSampleRate("filter", sampleRate)
	if err != nil {
		return nil, err
	}

	if mode != Lowpass && mode != Highpass {
		return nil, fmt.Errorf("filter mode %v: %w", mode, ErrInvalidParameter)
	}

	f := &Filter{mode: mode, sampleRate: sampleRate, section: biquad.NewSection(biquad.Coefficients{})}
	f.design(sampleRate / 10)

	return f, nil
}

// SetCutoff sets the -3 dB frequency. Cutoffs at or above Nyquist are
// clamped just below it.
func (f *Filter) SetCutoff(hz float64) error {
	err := checkRange("filter", "cutoff", hz, 0, 1e6)
	if err != nil {
		return err
	}

	if hz == 0 {
		return fmt.Errorf("filter cutoff must be positive: %w", ErrInvalidParameter)
	}

	f.design(min(hz, f.sampleRate*maxCutoffFraction))

	return nil
}

func (f *Filter) Cutoff() float64 { return f.cutoffHz }

func (f *Filter) Mode() FilterMode { return f.mode }

// Coefficients returns the current biquad coefficients.
func (f *Filter) Coefficients() biquad.Coefficients { return f.section.Coefficients }

func (f *Filter) design(hz float64) {
	f.cutoffHz = hz

	if f.mode == Highpass {
		f.section.Coefficients = biquad.Highpass(hz, biquad.DefaultQ, f.sampleRate)
	} else {
		f.section.Coefficients = biquad.Lowpass(hz, biquad.DefaultQ, f.sampleRate)
	}
}

// Reset clears the filter state.
func (f *Filter) Reset() {
	f.section.Reset()
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	f.section.ProcessBlock(buf)
}

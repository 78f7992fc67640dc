package augment

import (
	"fmt"

	"github.com/cwbudde/algo-augment/dsp/core"
)

// DefaultPeak is the peak amplitude processed waveforms are normalized to.
const DefaultPeak = 1.0

// EffectLibrary applies single effects to sample buffers.
//
// Apply must treat effect as a pure function of (samples, sampleRate): the
// same input and parameters give the same output. It may reuse or overwrite
// samples and returns the processed buffer.
type EffectLibrary interface {
	Apply(effect Effect, samples []float64, sampleRate int) ([]float64, error)
}

// EffectLibraryFunc adapts a function to EffectLibrary.
type EffectLibraryFunc func(effect Effect, samples []float64, sampleRate int) ([]float64, error)

// Apply calls f.
func (f EffectLibraryFunc) Apply(effect Effect, samples []float64, sampleRate int) ([]float64, error) {
	return f(effect, samples, sampleRate)
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithPeak sets the peak amplitude output is normalized to.
// Non-positive values are ignored.
func WithPeak(peak float64) ProcessorOption {
	return func(p *Processor) {
		if peak > 0 {
			p.peak = peak
		}
	}
}

// Processor applies effect chains to waveforms.
// It holds no per-call state and is safe for concurrent use if its
// EffectLibrary is.
type Processor struct {
	lib  EffectLibrary
	peak float64
}

// NewProcessor returns a Processor that applies effects through lib.
func NewProcessor(lib EffectLibrary, opts ...ProcessorOption) *Processor {
	p := &Processor{lib: lib, peak: DefaultPeak}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Peak returns the normalization target.
func (p *Processor) Peak() float64 {
	return p.peak
}

// Process applies every effect of chain to w in order, feeding the output
// of each effect into the next, then scales the result so its peak absolute
// value equals the normalization target. A silent result is returned
// unscaled. w is not modified.
//
// If any effect fails the whole chain fails for this waveform; no partially
// processed signal is returned.
func (p *Processor) Process(w Waveform, chain EffectChain) (Waveform, error) {
	if chain.Len() == 0 {
		return Waveform{}, fmt.Errorf("augment: process: %w", ErrEmptyChain)
	}

	if w.SampleRate <= 0 {
		return Waveform{}, fmt.Errorf("augment: process: sample rate must be positive: %d", w.SampleRate)
	}

	buf := append([]float64(nil), w.Samples...)

	for i, e := range chain.effects {
		out, err := p.lib.Apply(e, buf, w.SampleRate)
		if err != nil {
			return Waveform{}, fmt.Errorf("augment: process: effect %d (%s): %w: %w", i, e.Kind, ErrEffectFailed, err)
		}

		buf = out
	}

	if !core.AllFinite(buf) {
		return Waveform{}, fmt.Errorf("augment: process: chain %s: %w", chain, ErrNonFiniteSignal)
	}

	core.NormalizePeak(buf, p.peak)

	return Waveform{Samples: buf, SampleRate: w.SampleRate}, nil
}

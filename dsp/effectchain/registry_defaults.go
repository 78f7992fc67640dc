package effectchain

import (
	"github.com/cwbudde/algo-augment/augment"
	"github.com/cwbudde/algo-augment/dsp/effects"
)

// DefaultRegistry returns a Registry pre-populated with the built-in
// augmentation effects, keyed by the augment Kind constants.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(augment.KindCompressor, func(ctx Context) (Runtime, error) {
		fx, err := effects.NewCompressor(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return &compressorRuntime{fx: fx}, nil
	})
	r.MustRegister(augment.KindChorus, func(ctx Context) (Runtime, error) {
		fx, err := effects.NewChorus(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return &chorusRuntime{fx: fx}, nil
	})
	r.MustRegister(augment.KindReverb, func(ctx Context) (Runtime, error) {
		fx, err := effects.NewReverb(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return &reverbRuntime{fx: fx}, nil
	})
	r.MustRegister(augment.KindDistortion, func(_ Context) (Runtime, error) {
		return &distortionRuntime{fx: effects.NewDistortion()}, nil
	})
	r.MustRegister(augment.KindLowpassFilter, filterFactory(effects.Lowpass))
	r.MustRegister(augment.KindHighpassFilter, filterFactory(effects.Highpass))
	r.MustRegister(augment.KindPitchShift, func(ctx Context) (Runtime, error) {
		fx, err := effects.NewPitchShifter(ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return &pitchShiftRuntime{fx: fx}, nil
	})

	return r
}

func filterFactory(mode effects.FilterMode) Factory {
	return func(ctx Context) (Runtime, error) {
		fx, err := effects.NewFilter(mode, ctx.SampleRate)
		if err != nil {
			return nil, err
		}

		return &filterRuntime{fx: fx}, nil
	}
}

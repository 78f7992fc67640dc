package features

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-augment/dsp/window"
)

// Defaults used by the dataset pipeline.
const (
	DefaultNFFT  = 1024
	DefaultHop   = 512
	DefaultNMels = 120
)

// ErrInvalidConfig is returned for an unusable MelConfig.
var ErrInvalidConfig = errors.New("features: invalid mel config")

// MelConfig describes a mel spectrogram analysis.
type MelConfig struct {
	SampleRate int
	NFFT       int
	Hop        int
	NMels      int
	FMin       float64
	// FMax of zero means SampleRate/2.
	FMax float64
}

// DefaultMelConfig returns the 1024/512/120 analysis at sampleRate.
func DefaultMelConfig(sampleRate int) MelConfig {
	return MelConfig{SampleRate: sampleRate, NFFT: DefaultNFFT, Hop: DefaultHop, NMels: DefaultNMels}
}

// Validate checks the configuration.
func (c MelConfig) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.SampleRate)
	case c.NFFT < 2 || c.NFFT&(c.NFFT-1) != 0:
		return fmt.Errorf("%w: n_fft %d is not a power of two", ErrInvalidConfig, c.NFFT)
	case c.Hop <= 0:
		return fmt.Errorf("%w: hop %d", ErrInvalidConfig, c.Hop)
	case c.NMels <= 0:
		return fmt.Errorf("%w: n_mels %d", ErrInvalidConfig, c.NMels)
	case c.FMin < 0 || c.fMax() <= c.FMin || c.fMax() > float64(c.SampleRate)/2:
		return fmt.Errorf("%w: frequency range [%g, %g]", ErrInvalidConfig, c.FMin, c.fMax())
	}

	return nil
}

func (c MelConfig) fMax() float64 {
	if c.FMax == 0 {
		return float64(c.SampleRate) / 2
	}

	return c.FMax
}

// FrameCount returns the number of centered STFT frames for nSamples:
// 1 + nSamples/hop.
func FrameCount(nSamples, hop int) int {
	if hop <= 0 || nSamples < 0 {
		return 0
	}

	return 1 + nSamples/hop
}

// Spectrogram is a mel power spectrogram stored row-major as
// Data[mel*Frames+frame].
type Spectrogram struct {
	NMels  int
	Frames int
	Data   []float64
}

// At returns the power of mel band m in frame f.
func (s Spectrogram) At(m, f int) float64 {
	return s.Data[m*s.Frames+f]
}

// Analyzer computes mel spectrograms for one configuration.
// It keeps FFT scratch buffers and is not safe for concurrent use.
type Analyzer struct {
	cfg  MelConfig
	plan *algofft.Plan[complex128]
	win  []float64
	bank [][]float64

	frame []complex128
	re    []float64
	im    []float64
	power []float64
}

// NewAnalyzer validates cfg and precomputes the window and filterbank.
func NewAnalyzer(cfg MelConfig) (*Analyzer, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(cfg.NFFT)
	if err != nil {
		return nil, fmt.Errorf("features: create FFT plan: %w", err)
	}

	win, err := window.Hann(cfg.NFFT, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("features: window: %w", err)
	}

	bins := cfg.NFFT/2 + 1

	return &Analyzer{
		cfg:   cfg,
		plan:  plan,
		win:   win,
		bank:  MelFilterbank(float64(cfg.SampleRate), cfg.NFFT, cfg.NMels, cfg.FMin, cfg.fMax()),
		frame: make([]complex128, cfg.NFFT),
		re:    make([]float64, bins),
		im:    make([]float64, bins),
		power: make([]float64, bins),
	}, nil
}

// Config returns the analysis configuration.
func (a *Analyzer) Config() MelConfig {
	return a.cfg
}

// Frames returns the frame count for nSamples.
func (a *Analyzer) Frames(nSamples int) int {
	return FrameCount(nSamples, a.cfg.Hop)
}

// Compute returns the mel power spectrogram of samples.
func (a *Analyzer) Compute(samples []float64) (Spectrogram, error) {
	frames := a.Frames(len(samples))
	spec := Spectrogram{NMels: a.cfg.NMels, Frames: frames, Data: make([]float64, a.cfg.NMels*frames)}
	half := a.cfg.NFFT / 2

	for f := range frames {
		start := f*a.cfg.Hop - half

		for i, w := range a.win {
			var x float64
			if j := start + i; j >= 0 && j < len(samples) {
				x = samples[j]
			}

			a.frame[i] = complex(x*w, 0)
		}

		err := a.plan.Forward(a.frame, a.frame)
		if err != nil {
			return Spectrogram{}, fmt.Errorf("features: frame %d: forward FFT: %w", f, err)
		}

		for k := range a.power {
			a.re[k] = real(a.frame[k])
			a.im[k] = imag(a.frame[k])
		}

		vecmath.Power(a.power, a.re, a.im)

		for m, filter := range a.bank {
			spec.Data[m*frames+f] = floats.Dot(filter, a.power)
		}
	}

	return spec, nil
}

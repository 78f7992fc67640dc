package augment

import (
	"errors"
	"math"
)

// fixedRand returns the same draw every time.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }

func (r fixedRand) IntN(n int) int { return r.n % n }

var errStubEffect = errors.New("stub effect failure")

// stubLibrary implements a few arithmetic "effects" so chain order and
// normalization can be checked exactly.
//
//	gain:  x *= gain
//	add:   x += value
//	fail:  returns errStubEffect
//	nan:   writes NaN into the first sample
type stubLibrary struct {
	calls []string
}

func (s *stubLibrary) Apply(e Effect, samples []float64, _ int) ([]float64, error) {
	s.calls = append(s.calls, e.Kind)

	switch e.Kind {
	case "gain":
		g, _ := e.Params.Float("gain")
		for i := range samples {
			samples[i] *= g
		}
	case "add":
		v, _ := e.Params.Float("value")
		for i := range samples {
			samples[i] += v
		}
	case "fail":
		return nil, errStubEffect
	case "nan":
		if len(samples) > 0 {
			samples[0] = math.NaN()
		}
	}

	return samples, nil
}

func sine(n int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*440*float64(i)/44100)
	}

	return out
}

func compressorDescriptor() EffectDescriptor {
	return EffectDescriptor{Kind: KindCompressor, Params: []Param{
		{Name: "threshold_db", Range: Continuous{Min: -30, Max: -10}},
		{Name: "ratio", Range: Continuous{Min: 1.5, Max: 3.0}},
	}}
}

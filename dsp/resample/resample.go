package resample

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRate is returned for a non-positive sample rate.
	ErrInvalidRate = errors.New("resample: invalid sample rate")
)

// Quality selects a filter profile.
type Quality int

const (
	QualityFast Quality = iota
	QualityBalanced
	QualityBest
)

// Profile describes the prototype filter of a quality mode.
type Profile struct {
	TapsPerPhase      int
	CutoffScale       float64
	KaiserBeta        float64
	NominalStopbandDB float64
}

// QualityProfile returns the filter profile for q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{TapsPerPhase: 16, CutoffScale: 0.88, KaiserBeta: 5.0, NominalStopbandDB: 55}
	case QualityBest:
		return Profile{TapsPerPhase: 64, CutoffScale: 0.96, KaiserBeta: 9.0, NominalStopbandDB: 90}
	default:
		return Profile{TapsPerPhase: 32, CutoffScale: 0.92, KaiserBeta: 7.5, NominalStopbandDB: 75}
	}
}

// Option configures a Resampler.
type Option func(*Profile)

// WithQuality selects one of the predefined profiles.
func WithQuality(q Quality) Option {
	return func(p *Profile) {
		*p = QualityProfile(q)
	}
}

// Resampler converts signals from one fixed rate to another.
// It is stateless after construction and safe for concurrent use.
type Resampler struct {
	inRate, outRate int
	up, down        int
	phases          [][]float64
	delay           int
}

// New returns a resampler from inRate to outRate (Hz).
func New(inRate, outRate int, opts ...Option) (*Resampler, error) {
	if inRate <= 0 || outRate <= 0 {
		return nil, fmt.Errorf("%w: %d -> %d", ErrInvalidRate, inRate, outRate)
	}

	profile := QualityProfile(QualityBalanced)
	for _, opt := range opts {
		if opt != nil {
			opt(&profile)
		}
	}

	g := gcd(inRate, outRate)
	r := &Resampler{inRate: inRate, outRate: outRate, up: outRate / g, down: inRate / g}

	if r.up == r.down {
		return r, nil
	}

	taps, err := designPrototype(r.up, r.down, profile)
	if err != nil {
		return nil, err
	}

	r.phases = splitPhases(taps, r.up)
	r.delay = (len(taps) - 1) / 2

	return r, nil
}

// Ratio returns the reduced up/down factors.
func (r *Resampler) Ratio() (up, down int) {
	return r.up, r.down
}

// OutputLen returns the number of samples Process produces for n inputs:
// ceil(n*outRate/inRate).
func (r *Resampler) OutputLen(n int) int {
	if n <= 0 {
		return 0
	}

	return (n*r.up + r.down - 1) / r.down
}

// Process returns input converted to the output rate.
func (r *Resampler) Process(input []float64) []float64 {
	out := make([]float64, r.OutputLen(len(input)))
	if r.up == r.down {
		copy(out, input)

		return out
	}

	for n := range out {
		m := n*r.down + r.delay
		phase := r.phases[m%r.up]
		base := m / r.up

		var y float64

		for j, c := range phase {
			idx := base - j
			if idx < 0 {
				break
			}

			if idx < len(input) {
				y += c * input[idx]
			}
		}

		out[n] = y
	}

	return out
}

// Resample converts input from inRate to outRate in one call.
func Resample(input []float64, inRate, outRate int, opts ...Option) ([]float64, error) {
	r, err := New(inRate, outRate, opts...)
	if err != nil {
		return nil, err
	}

	return r.Process(input), nil
}

package effects

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/window"
)

const (
	pitchFrameSize    = 1024
	pitchHop          = pitchFrameSize / 4
	maxPitchSemitones = 24.0
	pitchIdentityEps  = 1e-9
	pitchOverlapFloor = 1e-12
)

// PitchShifter shifts pitch without changing duration using a phase
// vocoder that moves STFT bins by the pitch ratio.
//
// Each frame is windowed with a periodic Hann window, the instantaneous
// frequency of every bin is estimated from the phase advance since the
// previous frame, and magnitudes and frequencies are resampled from bin
// k/ratio. Output frames are overlap-added with squared-window
// normalization; the first frame starts ahead of the signal so the edges get
// the same overlap as the body.
type PitchShifter struct {
	sampleRate float64
	semitones  float64
	ratio      float64

	plan *algofft.Plan[complex128]
	win  []float64

	omega     []float64
	prevPhase []float64
	sumPhase  []float64
	mag       []float64
	freq      []float64
	spectrum  []complex128
	frame     []complex128
}

// NewPitchShifter returns a pitch shifter set to no shift.
func NewPitchShifter(sampleRate float64) (*PitchShifter, error) {
	err := checkSampleRate("pitch shifter", sampleRate)
	if err != nil {
		return nil, err
	}

	plan, err := algofft.NewPlan64(pitchFrameSize)
	if err != nil {
		return nil, fmt.Errorf("pitch shifter: create FFT plan: %w", err)
	}

	win, err := window.Hann(pitchFrameSize, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("pitch shifter: window: %w", err)
	}

	bins := pitchFrameSize/2 + 1
	p := &PitchShifter{
		sampleRate: sampleRate,
		ratio:      1,
		plan:       plan,
		win:        win,
		omega:      make([]float64, bins),
		prevPhase:  make([]float64, bins),
		sumPhase:   make([]float64, bins),
		mag:        make([]float64, bins),
		freq:       make([]float64, bins),
		spectrum:   make([]complex128, pitchFrameSize),
		frame:      make([]complex128, pitchFrameSize),
	}

	for k := range p.omega {
		p.omega[k] = 2 * math.Pi * float64(k) / pitchFrameSize
	}

	return p, nil
}

// SetSemitones sets the shift in semitones within ±24.
func (p *PitchShifter) SetSemitones(semitones float64) error {
	err := checkRange("pitch shifter", "semitones", semitones, -maxPitchSemitones, maxPitchSemitones)
	if err != nil {
		return err
	}

	p.semitones = semitones
	p.ratio = core.SemitonesToRatio(semitones)

	return nil
}

func (p *PitchShifter) Semitones() float64 { return p.semitones }

// Ratio returns the frequency ratio 2^(semitones/12).
func (p *PitchShifter) Ratio() float64 { return p.ratio }

// Process returns a pitch-shifted copy of in with the same length.
func (p *PitchShifter) Process(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return []float64{}, nil
	}

	if math.Abs(p.ratio-1) <= pitchIdentityEps {
		return core.FitLength(in, len(in)), nil
	}

	clear(p.prevPhase)
	clear(p.sumPhase)

	// Analysis starts pitchFrameSize-pitchHop samples before in so that every
	// returned sample is covered by the full window overlap.
	lead := pitchFrameSize - pitchHop
	frames := 1 + (len(in)-1+lead)/pitchHop
	outLen := (frames-1)*pitchHop + pitchFrameSize
	out := make([]float64, outLen)
	norm := make([]float64, outLen)

	for f := range frames {
		pos := f * pitchHop

		err := p.processFrame(in, pos-lead)
		if err != nil {
			return nil, err
		}

		for i, w := range p.win {
			out[pos+i] += real(p.frame[i]) * w
			norm[pos+i] += w * w
		}
	}

	out = out[lead : lead+len(in)]
	norm = norm[lead : lead+len(in)]

	for i := range out {
		if norm[i] > pitchOverlapFloor {
			out[i] /= norm[i]
		}
	}

	return out, nil
}

// ProcessInPlace shifts buf in place.
func (p *PitchShifter) ProcessInPlace(buf []float64) error {
	out, err := p.Process(buf)
	if err != nil {
		return err
	}

	copy(buf, out)

	return nil
}

func (p *PitchShifter) processFrame(in []float64, pos int) error {
	for i, w := range p.win {
		var x float64
		if j := pos + i; j >= 0 && j < len(in) {
			x = in[j]
		}

		p.spectrum[i] = complex(x*w, 0)
	}

	err := p.plan.Forward(p.spectrum, p.spectrum)
	if err != nil {
		return fmt.Errorf("pitch shifter: forward FFT: %w", err)
	}

	half := pitchFrameSize / 2
	hop := float64(pitchHop)

	for k := 0; k <= half; k++ {
		re, im := real(p.spectrum[k]), imag(p.spectrum[k])
		phase := math.Atan2(im, re)
		delta := wrapPhase(phase - p.prevPhase[k] - p.omega[k]*hop)

		p.mag[k] = math.Hypot(re, im)
		p.freq[k] = p.omega[k] + delta/hop
		p.prevPhase[k] = phase
	}

	for k := 0; k <= half; k++ {
		src := float64(k) / p.ratio

		var mag, freq float64
		if src < float64(half) {
			lo := int(src)
			frac := src - float64(lo)
			mag = p.mag[lo]*(1-frac) + p.mag[lo+1]*frac
			freq = (p.freq[lo]*(1-frac) + p.freq[lo+1]*frac) * p.ratio
		} else {
			freq = p.omega[k]
		}

		p.sumPhase[k] += freq * hop
		p.spectrum[k] = complex(mag*math.Cos(p.sumPhase[k]), mag*math.Sin(p.sumPhase[k]))
	}

	p.spectrum[0] = complex(real(p.spectrum[0]), 0)
	p.spectrum[half] = complex(real(p.spectrum[half]), 0)

	for k := 1; k < half; k++ {
		v := p.spectrum[k]
		p.spectrum[pitchFrameSize-k] = complex(real(v), -imag(v))
	}

	err = p.plan.Inverse(p.frame, p.spectrum)
	if err != nil {
		return fmt.Errorf("pitch shifter: inverse FFT: %w", err)
	}

	return nil
}

func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}

package effects

import "math"

const (
	reverbFixedGain  = 0.015
	reverbScaleWet   = 3.0
	reverbScaleDry   = 2.0
	reverbScaleRoom  = 0.28
	reverbOffsetRoom = 0.7
	reverbScaleDamp  = 0.4
	reverbTuningRate = 44100.0

	defaultReverbRoomSize = 0.5
	defaultReverbDamping  = 0.5
	defaultReverbWetLevel = 0.33
	defaultReverbDryLevel = 0.4
)

// Comb and allpass lengths in samples at 44.1 kHz.
var (
	reverbCombTunings    = [...]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	reverbAllpassTunings = [...]int{556, 441, 341, 225}
)

// Reverb is a mono Freeverb-style reverb: eight damped feedback combs in
// parallel followed by four series allpasses.
//
// Parameters are normalized to [0, 1]. Room size maps to comb feedback
// 0.7..0.98, damping to a one-pole lowpass coefficient 0..0.4 inside each
// comb loop, and the wet and dry levels are scaled by 3 and 2.
type Reverb struct {
	roomSize float64
	damping  float64
	wetLevel float64
	dryLevel float64

	combs   [len(reverbCombTunings)]reverbComb
	allpass [len(reverbAllpassTunings)]reverbAllpass
}

type reverbComb struct {
	feedback float64
	damp     float64
	store    float64
	buf      []float64
	idx      int
}

func (c *reverbComb) process(x float64) float64 {
	out := c.buf[c.idx]

	c.store = out*(1-c.damp) + c.store*c.damp
	if math.Abs(c.store) < 1e-23 {
		c.store = 0
	}

	c.buf[c.idx] = x + c.store*c.feedback

	c.idx++
	if c.idx == len(c.buf) {
		c.idx = 0
	}

	return out
}

type reverbAllpass struct {
	buf []float64
	idx int
}

func (a *reverbAllpass) process(x float64) float64 {
	delayed := a.buf[a.idx]
	a.buf[a.idx] = x + delayed*0.5

	a.idx++
	if a.idx == len(a.buf) {
		a.idx = 0
	}

	return delayed - x
}

// NewReverb returns a reverb with delay lengths scaled to sampleRate.
func NewReverb(sampleRate float64) (*Reverb, error) {
	err := checkSampleRate("reverb", sampleRate)
	if err != nil {
		return nil, err
	}

	r := &Reverb{}
	scale := sampleRate / reverbTuningRate

	for i, n := range reverbCombTunings {
		r.combs[i].buf = make([]float64, scaledLength(n, scale))
	}

	for i, n := range reverbAllpassTunings {
		r.allpass[i].buf = make([]float64, scaledLength(n, scale))
	}

	r.roomSize = defaultReverbRoomSize
	r.damping = defaultReverbDamping
	r.wetLevel = defaultReverbWetLevel
	r.dryLevel = defaultReverbDryLevel
	r.updateCombs()

	return r, nil
}

func scaledLength(n int, scale float64) int {
	return max(1, int(math.Round(float64(n)*scale)))
}

// SetRoomSize sets the room size in [0, 1].
func (r *Reverb) SetRoomSize(v float64) error {
	err := checkRange("reverb", "room size", v, 0, 1)
	if err != nil {
		return err
	}

	r.roomSize = v
	r.updateCombs()

	return nil
}

// SetDamping sets the high-frequency damping in [0, 1].
func (r *Reverb) SetDamping(v float64) error {
	err := checkRange("reverb", "damping", v, 0, 1)
	if err != nil {
		return err
	}

	r.damping = v
	r.updateCombs()

	return nil
}

// SetWetLevel sets the reverberated signal level in [0, 1].
func (r *Reverb) SetWetLevel(v float64) error {
	err := checkRange("reverb", "wet level", v, 0, 1)
	if err != nil {
		return err
	}

	r.wetLevel = v

	return nil
}

// SetDryLevel sets the direct signal level in [0, 1].
func (r *Reverb) SetDryLevel(v float64) error {
	err := checkRange("reverb", "dry level", v, 0, 1)
	if err != nil {
		return err
	}

	r.dryLevel = v

	return nil
}

func (r *Reverb) RoomSize() float64 { return r.roomSize }

func (r *Reverb) Damping() float64 { return r.damping }

func (r *Reverb) WetLevel() float64 { return r.wetLevel }

func (r *Reverb) DryLevel() float64 { return r.dryLevel }

// Reset clears all delay lines.
func (r *Reverb) Reset() {
	for i := range r.combs {
		clear(r.combs[i].buf)
		r.combs[i].idx = 0
		r.combs[i].store = 0
	}

	for i := range r.allpass {
		clear(r.allpass[i].buf)
		r.allpass[i].idx = 0
	}
}

// ProcessSample processes one sample.
func (r *Reverb) ProcessSample(x float64) float64 {
	in := x * reverbFixedGain

	var acc float64
	for i := range r.combs {
		acc += r.combs[i].process(in)
	}

	for i := range r.allpass {
		acc = r.allpass[i].process(acc)
	}

	return acc*r.wetLevel*reverbScaleWet + x*r.dryLevel*reverbScaleDry
}

// ProcessInPlace processes buf in place.
func (r *Reverb) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = r.ProcessSample(x)
	}
}

func (r *Reverb) updateCombs() {
	fb := r.roomSize*reverbScaleRoom + reverbOffsetRoom
	damp := r.damping * reverbScaleDamp

	for i := range r.combs {
		r.combs[i].feedback = fb
		r.combs[i].damp = damp
	}
}

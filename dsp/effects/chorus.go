package effects

import (
	"math"

	"github.com/cwbudde/algo-augment/dsp/delay"
)

const (
	defaultChorusRateHz        = 1.0
	defaultChorusDepth         = 0.25
	defaultChorusCentreDelayMs = 7.0
	defaultChorusFeedback      = 0.0
	defaultChorusMix           = 0.5

	maxChorusRateHz = 100.0
	// depth 1 swings the delay by this many milliseconds either way.
	chorusModulationMs  = 20.0
	minChorusDelayMs    = 1.0
	maxChorusCentreMs   = 100.0
	maxChorusFeedback   = 0.95
	chorusDelayHeadroom = 4
)

// Chorus is a single-voice modulated delay.
//
// A sine LFO moves the read tap around the centre delay by
// depth*20 ms, clamped to at least 1 ms. The tap is read with 4-point
// Hermite interpolation and mixed with the dry signal.
type Chorus struct {
	sampleRate    float64
	rateHz        float64
	depth         float64
	centreDelayMs float64
	feedback      float64
	mix           float64

	lfoPhase float64
	line     *delay.Line
}

// NewChorus returns a chorus with rate 1 Hz, depth 0.25, 7 ms centre
// delay, no feedback and an even mix.
func NewChorus(sampleRate float64) (*Chorus, error) {
	err := checkSampleRate("chorus", sampleRate)
	if err != nil {
		return nil, err
	}

	c := &Chorus{
		sampleRate:    sampleRate,
		rateHz:        defaultChorusRateHz,
		depth:         defaultChorusDepth,
		centreDelayMs: defaultChorusCentreDelayMs,
		feedback:      defaultChorusFeedback,
		mix:           defaultChorusMix,
	}

	err = c.resizeLine()
	if err != nil {
		return nil, err
	}

	return c, nil
}

// SetRate sets the LFO rate in Hz.
func (c *Chorus) SetRate(hz float64) error {
	err := checkRange("chorus", "rate", hz, 0, maxChorusRateHz)
	if err != nil {
		return err
	}

	c.rateHz = hz

	return nil
}

// SetDepth sets the modulation depth in [0, 1].
func (c *Chorus) SetDepth(depth float64) error {
	err := checkRange("chorus", "depth", depth, 0, 1)
	if err != nil {
		return err
	}

	c.depth = depth

	return c.resizeLine()
}

// SetCentreDelay sets the centre delay in milliseconds.
func (c *Chorus) SetCentreDelay(ms float64) error {
	err := checkRange("chorus", "centre delay", ms, minChorusDelayMs, maxChorusCentreMs)
	if err != nil {
		return err
	}

	c.centreDelayMs = ms

	return c.resizeLine()
}

// SetFeedback sets the amount of wet signal fed back into the delay line.
func (c *Chorus) SetFeedback(fb float64) error {
	err := checkRange("chorus", "feedback", fb, -maxChorusFeedback, maxChorusFeedback)
	if err != nil {
		return err
	}

	c.feedback = fb

	return nil
}

// SetMix sets the wet proportion in [0, 1].
func (c *Chorus) SetMix(mix float64) error {
	err := checkRange("chorus", "mix", mix, 0, 1)
	if err != nil {
		return err
	}

	c.mix = mix

	return nil
}

func (c *Chorus) Rate() float64 { return c.rateHz }

func (c *Chorus) Depth() float64 { return c.depth }

func (c *Chorus) CentreDelay() float64 { return c.centreDelayMs }

func (c *Chorus) Feedback() float64 { return c.feedback }

func (c *Chorus) Mix() float64 { return c.mix }

// Reset clears the delay line and LFO phase.
func (c *Chorus) Reset() {
	c.line.Reset()
	c.lfoPhase = 0
}

// ProcessSample processes one sample.
func (c *Chorus) ProcessSample(x float64) float64 {
	mod := math.Sin(c.lfoPhase) * c.depth * chorusModulationMs
	delaySamples := max(c.centreDelayMs+mod, minChorusDelayMs) * 0.001 * c.sampleRate

	wet := c.line.ReadFractional(delaySamples)
	c.line.Write(x + wet*c.feedback)

	c.lfoPhase += 2 * math.Pi * c.rateHz / c.sampleRate
	if c.lfoPhase >= 2*math.Pi {
		c.lfoPhase -= 2 * math.Pi
	}

	return x*(1-c.mix) + wet*c.mix
}

// ProcessInPlace processes buf in place.
func (c *Chorus) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

func (c *Chorus) resizeLine() error {
	maxDelayMs := c.centreDelayMs + c.depth*chorusModulationMs
	n := int(math.Ceil(maxDelayMs*0.001*c.sampleRate)) + chorusDelayHeadroom

	if c.line != nil && c.line.Len() == n {
		return nil
	}

	line, err := delay.New(n)
	if err != nil {
		return err
	}

	c.line = line

	return nil
}

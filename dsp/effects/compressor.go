package effects

import "math"

const (
	defaultCompressorThresholdDB = 0.0
	defaultCompressorRatio       = 1.0
	defaultCompressorAttackMs    = 1.0
	defaultCompressorReleaseMs   = 100.0

	minCompressorRatio     = 1.0
	maxCompressorRatio     = 100.0
	minCompressorAttackMs  = 0.01
	maxCompressorAttackMs  = 1000.0
	minCompressorReleaseMs = 1.0
	maxCompressorReleaseMs = 5000.0
	maxCompressorKneeDB    = 24.0

	// log2(10)/20 converts dB to the log2 domain.
	log2Of10Div20 = 0.166096404744
)

// Compressor is a feed-forward peak compressor.
//
// The level detector follows |x| with separate attack and release time
// constants. Gain is computed in the log2 domain; above threshold the
// overshoot is scaled by 1-1/ratio. A non-zero knee blends quadratically
// across knee dB centred on the threshold. There is no makeup gain.
type Compressor struct {
	sampleRate  float64
	thresholdDB float64
	ratio       float64
	kneeDB      float64
	attackMs    float64
	releaseMs   float64

	thresholdLog2 float64
	kneeLog2      float64
	attackCoeff   float64
	releaseCoeff  float64

	envelope float64
}

// NewCompressor returns a compressor with a 0 dB threshold, 1:1 ratio,
// hard knee, 1 ms attack and 100 ms release.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	err := checkSampleRate("compressor", sampleRate)
	if err != nil {
		return nil, err
	}

	c := &Compressor{
		sampleRate:  sampleRate,
		thresholdDB: defaultCompressorThresholdDB,
		ratio:       defaultCompressorRatio,
		attackMs:    defaultCompressorAttackMs,
		releaseMs:   defaultCompressorReleaseMs,
	}
	c.update()

	return c, nil
}

// SetThreshold sets the threshold in dBFS.
func (c *Compressor) SetThreshold(dB float64) error {
	err := checkFinite("compressor", "threshold", dB)
	if err != nil {
		return err
	}

	c.thresholdDB = dB
	c.update()

	return nil
}

// SetRatio sets the compression ratio in [1, 100].
func (c *Compressor) SetRatio(ratio float64) error {
	err := checkRange("compressor", "ratio", ratio, minCompressorRatio, maxCompressorRatio)
	if err != nil {
		return err
	}

	c.ratio = ratio

	return nil
}

// SetKnee sets the soft-knee width in dB. Zero selects a hard knee.
func (c *Compressor) SetKnee(dB float64) error {
	err := checkRange("compressor", "knee", dB, 0, maxCompressorKneeDB)
	if err != nil {
		return err
	}

	c.kneeDB = dB
	c.update()

	return nil
}

// SetAttack sets the attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) error {
	err := checkRange("compressor", "attack", ms, minCompressorAttackMs, maxCompressorAttackMs)
	if err != nil {
		return err
	}

	c.attackMs = ms
	c.update()

	return nil
}

// SetRelease sets the release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) error {
	err := checkRange("compressor", "release", ms, minCompressorReleaseMs, maxCompressorReleaseMs)
	if err != nil {
		return err
	}

	c.releaseMs = ms
	c.update()

	return nil
}

func (c *Compressor) Threshold() float64 { return c.thresholdDB }

func (c *Compressor) Ratio() float64 { return c.ratio }

func (c *Compressor) Knee() float64 { return c.kneeDB }

func (c *Compressor) Attack() float64 { return c.attackMs }

func (c *Compressor) Release() float64 { return c.releaseMs }

// Reset clears the level detector.
func (c *Compressor) Reset() {
	c.envelope = 0
}

// ProcessSample compresses one sample.
func (c *Compressor) ProcessSample(x float64) float64 {
	level := math.Abs(x)
	if level > c.envelope {
		c.envelope += (level - c.envelope) * c.attackCoeff
	} else {
		c.envelope = level + (c.envelope-level)*c.releaseCoeff
	}

	return x * c.gain(c.envelope)
}

// ProcessInPlace compresses buf in place.
func (c *Compressor) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = c.ProcessSample(x)
	}
}

// StaticGain returns the gain applied to a steady signal at level
// (linear, non-negative).
func (c *Compressor) StaticGain(level float64) float64 {
	return c.gain(math.Abs(level))
}

func (c *Compressor) update() {
	c.thresholdLog2 = c.thresholdDB * log2Of10Div20
	c.kneeLog2 = c.kneeDB * log2Of10Div20
	c.attackCoeff = 1 - math.Exp(-math.Ln2/(c.attackMs*0.001*c.sampleRate))
	c.releaseCoeff = math.Exp(-math.Ln2 / (c.releaseMs * 0.001 * c.sampleRate))
}

func (c *Compressor) gain(level float64) float64 {
	if level <= 0 || c.ratio == 1 {
		return 1
	}

	overshoot := mathLog2(level) - c.thresholdLog2

	if c.kneeLog2 <= 0 {
		if overshoot <= 0 {
			return 1
		}

		return mathPower2(-overshoot * (1 - 1/c.ratio))
	}

	half := c.kneeLog2 / 2

	switch {
	case overshoot < -half:
		return 1
	case overshoot <= half:
		s := overshoot + half
		overshoot = s * s / (2 * c.kneeLog2)
	}

	return mathPower2(-overshoot * (1 - 1/c.ratio))
}

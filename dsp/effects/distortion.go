package effects

import "github.com/cwbudde/algo-augment/dsp/core"

const maxDistortionDriveDB = 60.0

// Distortion is a memoryless tanh waveshaper: y = tanh(g*x) where g is
// the drive converted from dB.
type Distortion struct {
	driveDB float64
	gain    float64
}

// NewDistortion returns a distortion with 25 dB drive.
func NewDistortion() *Distortion {
	d := &Distortion{}
	d.setDrive(25)

	return d
}

// SetDrive sets the input gain in dB.
func (d *Distortion) SetDrive(dB float64) error {
	err := checkRange("distortion", "drive", dB, -maxDistortionDriveDB, maxDistortionDriveDB)
	if err != nil {
		return err
	}

	d.setDrive(dB)

	return nil
}

func (d *Distortion) setDrive(dB float64) {
	d.driveDB = dB
	d.gain = core.DBToLinear(dB)
}

func (d *Distortion) Drive() float64 { return d.driveDB }

// ProcessSample shapes one sample.
func (d *Distortion) ProcessSample(x float64) float64 {
	return mathTanh(d.gain * x)
}

// ProcessInPlace shapes buf in place.
func (d *Distortion) ProcessInPlace(buf []float64) {
	for i, x := range buf {
		buf[i] = mathTanh(d.gain * x)
	}
}

package core

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Peak returns the largest absolute value in buf, 0 for an empty slice.
func Peak(buf []float64) float64 {
	return floats.Norm(buf, math.Inf(1))
}

// AllFinite reports whether buf contains no NaN or Inf values.
func AllFinite(buf []float64) bool {
	for _, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

// NormalizePeak scales buf in place so its peak absolute value equals
// target and returns the applied gain. Silent buffers are left untouched
// and report a gain of 1.
func NormalizePeak(buf []float64, target float64) float64 {
	peak := Peak(buf)
	if peak == 0 {
		return 1
	}

	gain := target / peak
	vecmath.ScaleBlock(buf, buf, gain)

	return gain
}

//go:build fastmath

package effects

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

const ln2 = 0.693147180559945309417232121458

// saturation bound past which tanh is 1 to float64 precision.
const tanhSaturation = 19.0

func mathLog2(x float64) float64 {
	return approx.FastLog(x) / ln2
}

func mathPower2(x float64) float64 {
	return approx.FastExp(x * ln2)
}

// mathTanh uses tanh(|x|) = 1 - 2/(e^(2|x|)+1) and restores the sign.
func mathTanh(x float64) float64 {
	if math.IsNaN(x) {
		return x
	}

	a := math.Abs(x)
	if a > tanhSaturation {
		return math.Copysign(1, x)
	}

	return math.Copysign(1-2/(approx.FastExp(2*a)+1), x)
}

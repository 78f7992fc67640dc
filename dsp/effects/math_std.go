//go:build !fastmath

package effects

import "math"

func mathLog2(x float64) float64 {
	return math.Log2(x)
}

func mathPower2(x float64) float64 {
	return math.Exp2(x)
}

func mathTanh(x float64) float64 {
	return math.Tanh(x)
}

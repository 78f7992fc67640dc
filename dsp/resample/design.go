package resample

import (
	"errors"
	"fmt"
	"math"
)

// designPrototype returns the lowpass prototype at the upsampled rate,
// normalized to a DC gain of up.
func designPrototype(up, down int, p Profile) ([]float64, error) {
	if p.TapsPerPhase <= 0 {
		return nil, errors.New("resample: taps per phase must be > 0")
	}

	if p.CutoffScale <= 0 || p.CutoffScale > 1 {
		return nil, errors.New("resample: cutoff scale must be in (0,1]")
	}

	// odd length puts the centre on a tap, so the delay is a whole sample
	n := p.TapsPerPhase * up
	if n%2 == 0 {
		n++
	}

	fc := 0.5 / float64(max(up, down)) * p.CutoffScale
	if fc <= 0 || fc >= 0.5 {
		return nil, fmt.Errorf("resample: invalid cutoff %.6f", fc)
	}

	taps := make([]float64, n)
	center := 0.5 * float64(n-1)

	var sum float64

	for i := range taps {
		t := float64(i) - center
		taps[i] = 2 * fc * sinc(2*fc*t) * kaiser(i, n, p.KaiserBeta)
		sum += taps[i]
	}

	if sum == 0 {
		return nil, errors.New("resample: designed zero-sum filter")
	}

	scale := float64(up) / sum
	for i := range taps {
		taps[i] *= scale
	}

	return taps, nil
}

func splitPhases(taps []float64, up int) [][]float64 {
	phases := make([][]float64, up)
	for p := range phases {
		for i := p; i < len(taps); i += up {
			phases[p] = append(phases[p], taps[i])
		}
	}

	return phases
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}

	return a
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func kaiser(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1

	return besselI0(beta*math.Sqrt(max(0, 1-t*t))) / besselI0(beta)
}

// besselI0 is the zeroth-order modified Bessel function of the first kind.
func besselI0(x float64) float64 {
	sum, term := 1.0, 1.0
	x2 := x * x / 4

	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)
		sum += term

		if term < 1e-16*sum {
			break
		}
	}

	return sum
}

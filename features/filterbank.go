package features

import "math"

const (
	slaneyMinLogHz  = 1000.0
	slaneyLinStep   = 200.0 / 3
	slaneyMinLogMel = slaneyMinLogHz / slaneyLinStep
)

var slaneyLogStep = math.Log(6.4) / 27

// HzToMel converts a frequency to the Slaney mel scale: linear below
// 1 kHz, logarithmic above.
func HzToMel(hz float64) float64 {
	if hz < slaneyMinLogHz {
		return hz / slaneyLinStep
	}

	return slaneyMinLogMel + math.Log(hz/slaneyMinLogHz)/slaneyLogStep
}

// MelToHz is the inverse of HzToMel.
func MelToHz(mel float64) float64 {
	if mel < slaneyMinLogMel {
		return mel * slaneyLinStep
	}

	return slaneyMinLogHz * math.Exp(slaneyLogStep*(mel-slaneyMinLogMel))
}

// MelFilterbank returns nMels triangular filters over the nFFT/2+1 bins of
// a real FFT. Band edges are spaced evenly on the mel scale between fMin
// and fMax, and each triangle is scaled to unit area (2/(f_hi-f_lo)).
func MelFilterbank(sampleRate float64, nFFT, nMels int, fMin, fMax float64) [][]float64 {
	bins := nFFT/2 + 1

	fftFreqs := make([]float64, bins)
	for k := range fftFreqs {
		fftFreqs[k] = float64(k) * sampleRate / float64(nFFT)
	}

	lo, hi := HzToMel(fMin), HzToMel(fMax)

	edges := make([]float64, nMels+2)
	for i := range edges {
		edges[i] = MelToHz(lo + (hi-lo)*float64(i)/float64(nMels+1))
	}

	bank := make([][]float64, nMels)

	for m := range bank {
		left, centre, right := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (right - left)
		row := make([]float64, bins)

		for k, f := range fftFreqs {
			up := (f - left) / (centre - left)
			down := (right - f) / (right - centre)
			row[k] = max(0, min(up, down)) * norm
		}

		bank[m] = row
	}

	return bank
}

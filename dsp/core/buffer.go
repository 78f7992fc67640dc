package core

// FitLength returns buf truncated or zero-padded to exactly n samples.
// The result never aliases buf.
func FitLength(buf []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}

	out := make([]float64, n)
	copy(out, buf)

	return out
}

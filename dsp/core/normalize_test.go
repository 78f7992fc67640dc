package core

import (
	"math"
	"testing"
)

func TestNormalizePeak(t *testing.T) {
	t.Parallel()

	t.Run("scales to target", func(t *testing.T) {
		t.Parallel()

		buf := []float64{0.1, -0.25, 0.2}
		gain := NormalizePeak(buf, 1)

		if math.Abs(gain-4) > 1e-12 {
			t.Fatalf("gain = %v, want 4", gain)
		}

		if math.Abs(Peak(buf)-1) > 1e-12 {
			t.Fatalf("peak = %v, want 1", Peak(buf))
		}

		if math.Abs(buf[1]+1) > 1e-12 {
			t.Fatalf("sign not preserved: %v", buf[1])
		}
	})

	t.Run("silent buffer untouched", func(t *testing.T) {
		t.Parallel()

		buf := make([]float64, 8)
		if gain := NormalizePeak(buf, 1); gain != 1 {
			t.Fatalf("gain = %v, want 1", gain)
		}

		for i, v := range buf {
			if v != 0 {
				t.Fatalf("index %d: got %v, want 0", i, v)
			}
		}
	})

	t.Run("custom target", func(t *testing.T) {
		t.Parallel()

		buf := []float64{2, -1}
		NormalizePeak(buf, 0.5)

		if math.Abs(buf[0]-0.5) > 1e-12 || math.Abs(buf[1]+0.25) > 1e-12 {
			t.Fatalf("got %v, want [0.5 -0.25]", buf)
		}
	})
}

func TestAllFinite(t *testing.T) {
	t.Parallel()

	if !AllFinite([]float64{0, 1, -1}) {
		t.Error("finite buffer reported non-finite")
	}

	if AllFinite([]float64{0, math.NaN()}) {
		t.Error("NaN not detected")
	}

	if AllFinite([]float64{math.Inf(-1)}) {
		t.Error("Inf not detected")
	}
}

func TestFitLength(t *testing.T) {
	t.Parallel()

	src := []float64{1, 2, 3}

	if got := FitLength(src, 2); len(got) != 2 || got[1] != 2 {
		t.Fatalf("truncate: got %v", got)
	}

	got := FitLength(src, 5)
	if len(got) != 5 || got[2] != 3 || got[4] != 0 {
		t.Fatalf("pad: got %v", got)
	}

	got[0] = 9
	if src[0] != 1 {
		t.Fatal("FitLength aliased its input")
	}
}

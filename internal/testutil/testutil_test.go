package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	t.Parallel()

	x := Sine(1000, 48000, 0.5, 48)
	if x[0] != 0 {
		t.Fatalf("x[0] = %v, want 0", x[0])
	}

	if math.Abs(x[12]-0.5) > 1e-12 {
		t.Fatalf("x[12] = %v, want 0.5", x[12])
	}
}

func TestNoiseReproducible(t *testing.T) {
	t.Parallel()

	a := Noise(7, 1, 64)
	b := Noise(7, 1, 64)
	RequireSliceNearlyEqual(t, a, b, 0)

	for i, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
}

func TestImpulseAndDC(t *testing.T) {
	t.Parallel()

	RequireSliceNearlyEqual(t, Impulse(3, 1), []float64{0, 1, 0}, 0)
	RequireSliceNearlyEqual(t, Impulse(2, 5), []float64{0, 0}, 0)
	RequireSliceNearlyEqual(t, DC(0.5, 2), []float64{0.5, 0.5}, 0)
}

func TestRMS(t *testing.T) {
	t.Parallel()

	if got := RMS(Sine(100, 8000, 1, 8000)); math.Abs(got-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("RMS(sine) = %v", got)
	}

	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v", got)
	}
}

func TestEstimateFrequency(t *testing.T) {
	t.Parallel()

	got := EstimateFrequency(Sine(440, 22050, 1, 22050), 22050)
	if math.Abs(got-440) > 0.5 {
		t.Fatalf("EstimateFrequency = %v, want 440", got)
	}

	if got := EstimateFrequency(DC(1, 100), 22050); got != 0 {
		t.Fatalf("EstimateFrequency(DC) = %v, want 0", got)
	}
}

func TestToneAmplitude(t *testing.T) {
	t.Parallel()

	x := Sine(1000, 48000, 0.25, 4800)
	for i, v := range Sine(3000, 48000, 0.5, 4800) {
		x[i] += v
	}

	tests := []struct {
		freq, want float64
	}{
		{1000, 0.25},
		{3000, 0.5},
		{2000, 0},
	}

	for _, tt := range tests {
		if got := ToneAmplitude(x, tt.freq, 48000); math.Abs(got-tt.want) > 1e-6 {
			t.Fatalf("ToneAmplitude(%v) = %v, want %v", tt.freq, got, tt.want)
		}
	}
}

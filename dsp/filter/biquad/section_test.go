package biquad

import (
	"math"
	"testing"
)

func TestSectionIdentity(t *testing.T) {
	t.Parallel()

	s := NewSection(Coefficients{B0: 1})
	buf := []float64{1, -0.5, 0.25, 0}
	want := append([]float64(nil), buf...)

	s.ProcessBlock(buf)

	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("sample %d: got %v want %v", i, buf[i], want[i])
		}
	}
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	t.Parallel()

	c := Lowpass(1000, DefaultQ, 48000)
	a := NewSection(c)
	b := NewSection(c)

	buf := make([]float64, 256)
	for i := range buf {
		buf[i] = math.Sin(0.05*float64(i)) + 0.3*math.Sin(1.3*float64(i))
	}

	want := make([]float64, len(buf))
	for i, x := range buf {
		want[i] = a.ProcessSample(x)
	}

	b.ProcessBlock(buf)

	for i := range buf {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v want %v", i, buf[i], want[i])
		}
	}

	if a.State() != b.State() {
		t.Fatalf("state mismatch: %v vs %v", a.State(), b.State())
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	s := NewSection(Highpass(200, DefaultQ, 22050))
	s.ProcessBlock([]float64{1, 1, 1, 1})
	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatalf("state not cleared: %v", s.State())
	}
}

func TestLowpassResponse(t *testing.T) {
	t.Parallel()

	const sr = 22050.0

	c := Lowpass(2000, DefaultQ, sr)

	if got := c.MagnitudeDB(10, sr); math.Abs(got) > 0.01 {
		t.Fatalf("passband gain = %.3f dB, want ~0", got)
	}

	if got := c.MagnitudeDB(2000, sr); math.Abs(got+3.01) > 0.05 {
		t.Fatalf("cutoff gain = %.3f dB, want ~-3", got)
	}

	if got := c.MagnitudeDB(8000, sr); got > -18 {
		t.Fatalf("stopband gain = %.3f dB, want < -18", got)
	}
}

func TestHighpassResponse(t *testing.T) {
	t.Parallel()

	const sr = 22050.0

	c := Highpass(300, DefaultQ, sr)

	if got := c.MagnitudeDB(5000, sr); math.Abs(got) > 0.05 {
		t.Fatalf("passband gain = %.3f dB, want ~0", got)
	}

	if got := c.MagnitudeDB(300, sr); math.Abs(got+3.01) > 0.05 {
		t.Fatalf("cutoff gain = %.3f dB, want ~-3", got)
	}

	if got := c.MagnitudeDB(30, sr); got > -30 {
		t.Fatalf("stopband gain = %.3f dB, want < -30", got)
	}
}

func TestDesignRejectsInvalidFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		freq, rate float64
	}{
		{"zero", 0, 48000},
		{"nyquist", 24000, 48000},
		{"nan", math.NaN(), 48000},
		{"bad rate", 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if c := Lowpass(tt.freq, DefaultQ, tt.rate); c != (Coefficients{}) {
				t.Fatalf("lowpass: got %+v, want zero", c)
			}

			if c := Highpass(tt.freq, DefaultQ, tt.rate); c != (Coefficients{}) {
				t.Fatalf("highpass: got %+v, want zero", c)
			}
		})
	}
}

func TestNormalizedQFallback(t *testing.T) {
	t.Parallel()

	if got := Lowpass(1000, -1, 48000); got != Lowpass(1000, DefaultQ, 48000) {
		t.Fatalf("negative q did not fall back to DefaultQ")
	}
}

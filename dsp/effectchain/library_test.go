package effectchain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-augment/augment"
	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/internal/testutil"
)

const testRate = 22050

func TestDefaultRegistryCoversCatalog(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	for _, kind := range augment.DefaultCatalog().Kinds() {
		if reg.Lookup(kind) == nil {
			t.Errorf("DefaultRegistry missing effect type: %s", kind)
		}
	}

	if got, want := len(reg.Types()), augment.DefaultCatalog().Len(); got != want {
		t.Fatalf("registry has %d types, catalog %d", got, want)
	}
}

func TestLibraryAppliesEveryCatalogExtreme(t *testing.T) {
	t.Parallel()

	lib := NewLibrary(nil)
	cat := augment.DefaultCatalog()

	for _, kind := range cat.Kinds() {
		desc, _ := cat.Lookup(kind)

		for _, pick := range []string{"min", "max"} {
			t.Run(kind+"/"+pick, func(t *testing.T) {
				t.Parallel()

				effect := augment.Effect{Kind: kind}
				for _, p := range desc.Params {
					effect.Params = append(effect.Params, augment.Set(p.Name, extreme(p.Range, pick == "max")))
				}

				in := testutil.Sine(440, testRate, 0.5, testRate)

				out, err := lib.Apply(effect, append([]float64(nil), in...), testRate)
				if err != nil {
					t.Fatalf("Apply(%s): %v", effect, err)
				}

				if len(out) != len(in) {
					t.Fatalf("length %d, want %d", len(out), len(in))
				}

				testutil.RequireFinite(t, out)

				if core.Peak(out) == 0 {
					t.Fatalf("%s silenced the signal", effect)
				}
			})
		}
	}
}

func extreme(r augment.RangeSpec, upper bool) any {
	switch v := r.(type) {
	case augment.Continuous:
		if upper {
			return v.Max
		}

		return v.Min
	case augment.Discrete:
		if upper {
			return v.Max
		}

		return v.Min
	case augment.Categorical:
		if upper {
			return v.Choices[len(v.Choices)-1]
		}

		return v.Choices[0]
	default:
		return nil
	}
}

func TestLibraryErrors(t *testing.T) {
	t.Parallel()

	lib := NewLibrary(nil)
	buf := make([]float64, 64)

	tests := []struct {
		name   string
		effect augment.Effect
		want   error
	}{
		{"unknown kind", augment.NewEffect("flanger"), augment.ErrUnknownEffect},
		{"unknown param", augment.NewEffect(augment.KindReverb, augment.Set("width", 1.0)), ErrUnknownParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := lib.Apply(tt.effect, buf, testRate)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}

	_, err := lib.Apply(augment.NewEffect(augment.KindDistortion, augment.Set("drive_db", "loud")), buf, testRate)
	if err == nil {
		t.Fatal("expected error for non-numeric parameter")
	}
}

func TestParamsFromEffect(t *testing.T) {
	t.Parallel()

	p, err := ParamsFromEffect(augment.NewEffect(augment.KindCompressor,
		augment.Set("threshold_db", -10.0),
		augment.Set("ratio", 2),
	))
	if err != nil {
		t.Fatal(err)
	}

	if p.Type != augment.KindCompressor || p.Num["threshold_db"] != -10 || p.Num["ratio"] != 2 {
		t.Fatalf("unexpected params: %+v", p)
	}
}

func TestProcessorWithDefaultLibrary(t *testing.T) {
	t.Parallel()

	proc := augment.NewProcessor(NewLibrary(nil))
	w := augment.Waveform{Samples: testutil.Sine(220, testRate, 0.3, testRate/2), SampleRate: testRate}
	orig := w.Clone()

	chain, err := augment.Build(nil, augment.DefaultFallback())
	if err != nil {
		t.Fatal(err)
	}

	out, err := proc.Process(w, chain)
	if err != nil {
		t.Fatal(err)
	}

	if got := core.Peak(out.Samples); math.Abs(got-1) > 1e-12 {
		t.Fatalf("peak = %v, want 1", got)
	}

	testutil.RequireSliceNearlyEqual(t, w.Samples, orig.Samples, 0)
}

func TestLibraryIsDeterministic(t *testing.T) {
	t.Parallel()

	lib := NewLibrary(nil)
	effect := augment.NewEffect(augment.KindChorus, augment.Set("rate_hz", 0.7), augment.Set("depth", 0.1))
	in := testutil.Noise(3, 0.5, 4096)

	a, err := lib.Apply(effect, append([]float64(nil), in...), testRate)
	if err != nil {
		t.Fatal(err)
	}

	b, err := lib.Apply(effect, append([]float64(nil), in...), testRate)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestProcessedChainsKeepBodyLevel(t *testing.T) {
	t.Parallel()

	chains := map[string]augment.FallbackChain{
		"fallback": augment.DefaultFallback(),
	}

	for _, st := range []int{-2, -1, 1, 2} {
		name := fmt.Sprintf("pitchshift%+d", st)
		chains[name] = augment.FallbackChain{
			augment.NewEffect(augment.KindPitchShift, augment.Set("semitones", st)),
		}
	}

	proc := augment.NewProcessor(NewLibrary(nil))

	for name, effects := range chains {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			chain, err := augment.NewEffectChain(effects...)
			if err != nil {
				t.Fatal(err)
			}

			w := augment.Waveform{Samples: testutil.Sine(440, testRate, 0.5, testRate), SampleRate: testRate}

			out, err := proc.Process(w, chain)
			if err != nil {
				t.Fatal(err)
			}

			n := len(out.Samples)
			if rms := testutil.RMS(out.Samples[n/4 : 3*n/4]); rms < 0.4 {
				t.Fatalf("%s: normalized body RMS = %g, want a sine near full scale", chain, rms)
			}
		})
	}
}

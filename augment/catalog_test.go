package augment

import (
	"errors"
	"reflect"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()

	wantKinds := []string{
		KindCompressor, KindChorus, KindReverb, KindDistortion,
		KindLowpassFilter, KindHighpassFilter, KindPitchShift,
	}
	if got := cat.Kinds(); !reflect.DeepEqual(got, wantKinds) {
		t.Fatalf("Kinds() = %v, want %v", got, wantKinds)
	}

	tests := []struct {
		kind  string
		param string
		want  RangeSpec
	}{
		{KindCompressor, "threshold_db", Continuous{Min: -30, Max: -10}},
		{KindCompressor, "ratio", Continuous{Min: 1.5, Max: 3.0}},
		{KindChorus, "depth", Continuous{Min: 0.05, Max: 0.15}},
		{KindReverb, "wet_level", Continuous{Min: 0.3, Max: 0.7}},
		{KindDistortion, "drive_db", Discrete{Min: 1, Max: 3}},
		{KindLowpassFilter, "cutoff_frequency_hz", Discrete{Min: 4000, Max: 6000}},
		{KindHighpassFilter, "cutoff_frequency_hz", Discrete{Min: 100, Max: 500}},
		{KindPitchShift, "semitones", Categorical{Choices: []any{-2, -1, 1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"."+tt.param, func(t *testing.T) {
			t.Parallel()

			d, ok := cat.Lookup(tt.kind)
			if !ok {
				t.Fatalf("kind %q missing", tt.kind)
			}

			for _, p := range d.Params {
				if p.Name == tt.param {
					if !reflect.DeepEqual(p.Range, tt.want) {
						t.Fatalf("range = %#v, want %#v", p.Range, tt.want)
					}

					return
				}
			}

			t.Fatalf("param %q missing", tt.param)
		})
	}

	if DefaultCatalog() != cat {
		t.Fatal("DefaultCatalog is rebuilt on every call")
	}
}

func TestCatalogIsImmutable(t *testing.T) {
	t.Parallel()

	choices := []any{1, 2}
	params := []Param{{Name: "n", Range: Categorical{Choices: choices}}}

	cat, err := NewCatalog(EffectDescriptor{Kind: "x", Params: params})
	if err != nil {
		t.Fatal(err)
	}

	choices[0] = 99
	params[0].Name = "changed"

	d, _ := cat.Lookup("x")
	if d.Params[0].Name != "n" {
		t.Fatalf("param name changed through caller slice: %q", d.Params[0].Name)
	}

	if got := d.Params[0].Range.(Categorical).Choices[0]; got != 1 {
		t.Fatalf("choice changed through caller slice: %v", got)
	}

	d.Params[0].Range.(Categorical).Choices[0] = 42

	again, _ := cat.Lookup("x")
	if got := again.Params[0].Range.(Categorical).Choices[0]; got != 1 {
		t.Fatalf("choice changed through lookup result: %v", got)
	}
}

func TestNewCatalogRejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		descs []EffectDescriptor
		want  error
	}{
		{"empty kind", []EffectDescriptor{{Kind: ""}}, nil},
		{"duplicate kind", []EffectDescriptor{{Kind: "a"}, {Kind: "a"}}, nil},
		{"duplicate param", []EffectDescriptor{{Kind: "a", Params: []Param{
			{Name: "p", Range: Fixed(1)}, {Name: "p", Range: Fixed(2)},
		}}}, nil},
		{"invalid range", []EffectDescriptor{{Kind: "a", Params: []Param{
			{Name: "p", Range: Continuous{Min: 2, Max: 1}},
		}}}, ErrInvalidRange},
		{"nil range", []EffectDescriptor{{Kind: "a", Params: []Param{{Name: "p"}}}}, ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCatalog(tt.descs...)
			if err == nil {
				t.Fatal("expected error")
			}

			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCatalogWith(t *testing.T) {
	t.Parallel()

	base := DefaultCatalog()

	next, err := base.With(
		EffectDescriptor{Kind: KindDistortion, Params: []Param{{Name: "drive_db", Range: Discrete{Min: 5, Max: 10}}}},
		EffectDescriptor{Kind: "gain", Params: []Param{{Name: "gain_db", Range: Continuous{Min: -6, Max: 6}}}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next.Len() != base.Len()+1 {
		t.Fatalf("len = %d, want %d", next.Len(), base.Len()+1)
	}

	d, _ := next.Lookup(KindDistortion)
	if !reflect.DeepEqual(d.Params[0].Range, Discrete{Min: 5, Max: 10}) {
		t.Fatalf("override not applied: %v", d.Params[0].Range)
	}

	orig, _ := base.Lookup(KindDistortion)
	if !reflect.DeepEqual(orig.Params[0].Range, Discrete{Min: 1, Max: 3}) {
		t.Fatal("With modified the receiver")
	}

	kinds := next.Kinds()
	if kinds[3] != KindDistortion || kinds[len(kinds)-1] != "gain" {
		t.Fatalf("unexpected order: %v", kinds)
	}
}

func TestEffectConfigValidate(t *testing.T) {
	t.Parallel()

	cat := DefaultCatalog()

	if err := DefaultConfig().Validate(cat); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	err := EffectConfig{{Kind: "flanger", Probability: 0.5}}.Validate(cat)
	if !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("expected ErrUnknownEffect, got %v", err)
	}

	err = EffectConfig{{Kind: KindReverb, Probability: 1.5}}.Validate(cat)
	if !errors.Is(err, ErrInvalidProbability) {
		t.Fatalf("expected ErrInvalidProbability, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if len(cfg) != 7 {
		t.Fatalf("len = %d, want 7", len(cfg))
	}

	for _, c := range cfg {
		if c.Probability != DefaultProbability {
			t.Errorf("%s: probability %v, want %v", c.Kind, c.Probability, DefaultProbability)
		}
	}
}

func TestAssignmentLookups(t *testing.T) {
	t.Parallel()

	a := Assignment{Set("drive_db", 2), Set("ratio", 1.5), Set("cutoff", 300.0), Set("mode", "soft")}

	tests := []struct {
		name    string
		wantInt int
		intOK   bool
		wantF   float64
		floatOK bool
	}{
		{"drive_db", 2, true, 2, true},
		{"ratio", 0, false, 1.5, true},
		{"cutoff", 300, true, 300, true},
		{"mode", 0, false, 0, false},
		{"missing", 0, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, ok := a.Int(tt.name)
			if n != tt.wantInt || ok != tt.intOK {
				t.Fatalf("Int() = %d, %v, want %d, %v", n, ok, tt.wantInt, tt.intOK)
			}

			f, ok := a.Float(tt.name)
			if f != tt.wantF || ok != tt.floatOK {
				t.Fatalf("Float() = %v, %v, want %v, %v", f, ok, tt.wantF, tt.floatOK)
			}
		})
	}
}

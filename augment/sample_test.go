package augment

import (
	"errors"
	"math"
	"testing"
)

func TestSampleStaysInBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		spec  RangeSpec
		check func(v any) bool
	}{
		{
			name: "continuous",
			spec: Continuous{Min: -30, Max: -10},
			check: func(v any) bool {
				f, ok := v.(float64)
				return ok && f >= -30 && f <= -10
			},
		},
		{
			name: "continuous degenerate",
			spec: Continuous{Min: 2.5, Max: 2.5},
			check: func(v any) bool {
				f, ok := v.(float64)
				return ok && f == 2.5
			},
		},
		{
			name: "discrete",
			spec: Discrete{Min: 100, Max: 500},
			check: func(v any) bool {
				n, ok := v.(int)
				return ok && n >= 100 && n <= 500
			},
		},
		{
			name: "discrete negative",
			spec: Discrete{Min: -3, Max: -1},
			check: func(v any) bool {
				n, ok := v.(int)
				return ok && n >= -3 && n <= -1
			},
		},
		{
			name: "categorical",
			spec: Categorical{Choices: []any{-2, -1, 1, 2}},
			check: func(v any) bool {
				n, ok := v.(int)
				return ok && (n == -2 || n == -1 || n == 1 || n == 2)
			},
		},
		{
			name: "categorical strings",
			spec: Categorical{Choices: []any{"soft", "hard"}},
			check: func(v any) bool {
				s, ok := v.(string)
				return ok && (s == "soft" || s == "hard")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for seed := range uint64(500) {
				v, err := Sample(tt.spec, NewRand(seed))
				if err != nil {
					t.Fatalf("seed %d: unexpected error: %v", seed, err)
				}

				if !tt.check(v) {
					t.Fatalf("seed %d: value %v (%T) outside %s", seed, v, v, tt.spec)
				}
			}
		})
	}
}

func TestSampleDiscreteIsInclusive(t *testing.T) {
	t.Parallel()

	rng := NewRand(7)
	seen := map[int]bool{}

	for range 1000 {
		v, err := Sample(Discrete{Min: 1, Max: 3}, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		seen[v.(int)] = true
	}

	for _, want := range []int{1, 2, 3} {
		if !seen[want] {
			t.Errorf("value %d never drawn", want)
		}
	}
}

func TestSampleContinuousUpperEdge(t *testing.T) {
	t.Parallel()

	v, err := Sample(Continuous{Min: 0, Max: 1}, fixedRand{f: math.Nextafter(1, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f := v.(float64); f > 1 {
		t.Fatalf("got %v, want <= 1", f)
	}
}

func TestSampleContinuousExtremeBounds(t *testing.T) {
	t.Parallel()

	spec := Continuous{Min: -math.MaxFloat64, Max: math.MaxFloat64}

	for _, u := range []float64{0, 0.5, math.Nextafter(1, 0)} {
		v, err := Sample(spec, fixedRand{f: u})
		if err != nil {
			t.Fatalf("u=%v: unexpected error: %v", u, err)
		}

		f := v.(float64)
		if math.IsNaN(f) || f < spec.Min || f > spec.Max {
			t.Fatalf("u=%v: got %v, want a value in %s", u, f, spec)
		}
	}

	top := Continuous{Min: math.MaxFloat64 / 2, Max: math.MaxFloat64}

	for seed := range uint64(100) {
		v, err := Sample(top, NewRand(seed))
		if err != nil {
			t.Fatalf("seed %d: unexpected error: %v", seed, err)
		}

		if f := v.(float64); math.IsInf(f, 0) || f < top.Min || f > top.Max {
			t.Fatalf("seed %d: got %v, want a value in %s", seed, f, top)
		}
	}
}

func TestSampleDiscreteFullIntRange(t *testing.T) {
	t.Parallel()

	tests := []Discrete{
		{Min: math.MinInt, Max: math.MaxInt},
		{Min: 0, Max: math.MaxInt},
		{Min: math.MinInt, Max: 0},
		{Min: -1, Max: math.MaxInt},
	}

	for _, spec := range tests {
		rng := NewRand(11)

		var below, above bool

		for range 200 {
			v, err := Sample(spec, rng)
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", spec, err)
			}

			n := v.(int)
			if n < spec.Min || n > spec.Max {
				t.Fatalf("%s: got %d out of range", spec, n)
			}

			mid := spec.Min/2 + spec.Max/2
			below = below || n < mid
			above = above || n >= mid
		}

		if !below || !above {
			t.Fatalf("%s: draws cover only one half of the range", spec)
		}
	}
}

func TestSampleCategoricalUsesIndex(t *testing.T) {
	t.Parallel()

	v, err := Sample(Categorical{Choices: []any{"a", "b", "c"}}, fixedRand{n: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v != "c" {
		t.Fatalf("got %v, want c", v)
	}
}

func TestSampleInvalidRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec RangeSpec
	}{
		{"continuous min above max", Continuous{Min: 1, Max: 0}},
		{"continuous NaN", Continuous{Min: math.NaN(), Max: 1}},
		{"continuous Inf", Continuous{Min: 0, Max: math.Inf(1)}},
		{"discrete min above max", Discrete{Min: 5, Max: 4}},
		{"categorical empty", Categorical{}},
		{"nil spec", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Sample(tt.spec, NewRand(1))
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("expected ErrInvalidRange, got %v", err)
			}
		})
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	t.Parallel()

	specs := []RangeSpec{
		Continuous{Min: 0.1, Max: 0.5},
		Discrete{Min: 4000, Max: 6000},
		Categorical{Choices: []any{-2, -1, 1, 2}},
	}

	a, b := NewRand(42), NewRand(42)
	for _, spec := range specs {
		va, err := Sample(spec, a)
		if err != nil {
			t.Fatal(err)
		}

		vb, err := Sample(spec, b)
		if err != nil {
			t.Fatal(err)
		}

		if va != vb {
			t.Fatalf("%s: %v != %v", spec, va, vb)
		}
	}
}

func TestFixed(t *testing.T) {
	t.Parallel()

	v, err := Sample(Fixed(300), NewRand(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v != 300 {
		t.Fatalf("got %v, want 300", v)
	}
}

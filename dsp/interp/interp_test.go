package interp

import (
	"math"
	"testing"
)

func TestHermite4(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		t               float64
		xm1, x0, x1, x2 float64
		want            float64
	}{
		{"ramp start", 0, -1, 0, 1, 2, 0},
		{"ramp quarter", 0.25, -1, 0, 1, 2, 0.25},
		{"ramp end", 1, -1, 0, 1, 2, 1},
		{"constant", 0.7, 3, 3, 3, 3, 3},
		{"parabola midpoint", 0.5, 1, 0, 1, 4, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Hermite4(tt.t, tt.xm1, tt.x0, tt.x1, tt.x2)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Hermite4() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLinear2(t *testing.T) {
	t.Parallel()

	if got := Linear2(0.25, 2, 4); got != 2.5 {
		t.Fatalf("Linear2() = %v, want 2.5", got)
	}
}

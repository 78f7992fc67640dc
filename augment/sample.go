package augment

import (
	"fmt"
	"math"
	"math/bits"
)

// Sample draws one value from spec using rng.
//
// Continuous ranges yield a float64 in [Min, Max], Discrete ranges an int in
// [Min, Max] inclusive, Categorical ranges one of the choices unchanged.
// Each choice and each integer is equally likely. The only side effect is
// the randomness consumed from rng.
func Sample(spec RangeSpec, rng Rand) (any, error) {
	if spec == nil {
		return nil, fmt.Errorf("%w: nil range", ErrInvalidRange)
	}

	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	switch r := spec.(type) {
	case Continuous:
		if r.Min == r.Max {
			return r.Min, nil
		}

		// Interpolating avoids Max-Min overflowing for bounds near ±MaxFloat64.
		u := rng.Float64()
		v := r.Min*(1-u) + r.Max*u

		return math.Max(r.Min, math.Min(v, r.Max)), nil
	case Discrete:
		span := uint64(r.Max) - uint64(r.Min)
		if span < math.MaxInt {
			return r.Min + rng.IntN(int(span)+1), nil
		}

		return int(uint64(r.Min) + uniformUint64(rng, span)), nil
	case Categorical:
		return r.Choices[rng.IntN(len(r.Choices))], nil
	default:
		return nil, fmt.Errorf("%w: unsupported range type %T", ErrInvalidRange, spec)
	}
}

// uniformUint64 returns a uniform value in [0, limit] for spans IntN cannot
// express, drawing 64 bits from rng and rejecting values above limit.
func uniformUint64(rng Rand, limit uint64) uint64 {
	mask := uint64(math.MaxUint64) >> bits.LeadingZeros64(limit)

	for {
		x := uint64(rng.IntN(1<<30))<<34 | uint64(rng.IntN(1<<30))<<4 | uint64(rng.IntN(1<<4))

		x &= mask
		if x <= limit {
			return x
		}
	}
}

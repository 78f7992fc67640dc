package augment

import (
	"fmt"
	"math"
)

// RangeSpec declares the domain a parameter value is drawn from.
// The concrete variants are Continuous, Discrete and Categorical.
type RangeSpec interface {
	// Validate reports ErrInvalidRange if the range cannot be sampled.
	Validate() error
	String() string

	isRangeSpec()
}

// Continuous is a closed interval of real values.
type Continuous struct {
	Min, Max float64
}

// Discrete is a closed interval of integers.
type Discrete struct {
	Min, Max int
}

// Categorical is an ordered, non-empty set of opaque choices.
type Categorical struct {
	Choices []any
}

// Fixed returns a categorical range with a single choice, used for
// parameters that are configured but never rolled.
func Fixed(v any) Categorical {
	return Categorical{Choices: []any{v}}
}

func (Continuous) isRangeSpec()  {}
func (Discrete) isRangeSpec()    {}
func (Categorical) isRangeSpec() {}

// Validate checks that both bounds are finite and Min <= Max.
func (r Continuous) Validate() error {
	if math.IsNaN(r.Min) || math.IsInf(r.Min, 0) || math.IsNaN(r.Max) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: continuous bounds must be finite: [%v, %v]", ErrInvalidRange, r.Min, r.Max)
	}

	if r.Min > r.Max {
		return fmt.Errorf("%w: continuous min %v > max %v", ErrInvalidRange, r.Min, r.Max)
	}

	return nil
}

// Validate checks that Min <= Max.
func (r Discrete) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("%w: discrete min %d > max %d", ErrInvalidRange, r.Min, r.Max)
	}

	return nil
}

// Validate checks that there is at least one choice.
func (r Categorical) Validate() error {
	if len(r.Choices) == 0 {
		return fmt.Errorf("%w: categorical range has no choices", ErrInvalidRange)
	}

	return nil
}

func (r Continuous) String() string  { return fmt.Sprintf("[%g, %g]", r.Min, r.Max) }
func (r Discrete) String() string    { return fmt.Sprintf("{%d..%d}", r.Min, r.Max) }
func (r Categorical) String() string { return fmt.Sprintf("%v", r.Choices) }

package augment

import (
	"fmt"
	"math"
)

// RolledEffect is the outcome of one Roll: either absent, or present with a
// fully parameterized Effect.
type RolledEffect struct {
	effect  Effect
	present bool
}

// Absent returns a roll in which the effect was excluded.
func Absent() RolledEffect {
	return RolledEffect{}
}

// Present returns a roll that includes e.
func Present(e Effect) RolledEffect {
	return RolledEffect{effect: e, present: true}
}

// Effect returns the rolled effect and whether it was included.
func (r RolledEffect) Effect() (Effect, bool) {
	return r.effect, r.present
}

// IsPresent reports whether the effect was included.
func (r RolledEffect) IsPresent() bool {
	return r.present
}

func (r RolledEffect) String() string {
	if !r.present {
		return "absent"
	}

	return r.effect.String()
}

// Roll decides whether the effect described by desc takes part in a run.
//
// One uniform value u in [0, 1) is drawn from rng. If u > probability the
// effect is Absent; otherwise every parameter of desc is sampled in order
// and the result is Present. A probability of 0 always yields Absent and a
// probability of 1 always yields Present. The same rng state, descriptor and
// probability always give the same result.
func Roll(desc EffectDescriptor, probability float64, rng Rand) (RolledEffect, error) {
	if math.IsNaN(probability) || probability < 0 || probability > 1 {
		return Absent(), fmt.Errorf("augment: roll %s: %w: %v", desc.Kind, ErrInvalidProbability, probability)
	}

	u := rng.Float64()
	if probability == 0 || u > probability {
		return Absent(), nil
	}

	params := make(Assignment, 0, len(desc.Params))
	for _, p := range desc.Params {
		v, err := Sample(p.Range, rng)
		if err != nil {
			return Absent(), fmt.Errorf("augment: roll %s.%s: %w", desc.Kind, p.Name, err)
		}

		params = append(params, Setting{Name: p.Name, Value: v})
	}

	return Present(Effect{Kind: desc.Kind, Params: params}), nil
}

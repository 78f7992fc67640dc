package augment

import (
	"fmt"
	"math"
)

// DefaultProbability is the inclusion probability of every candidate in
// DefaultConfig.
const DefaultProbability = 0.3

// Candidate is one effect kind that may take part in a run, with its
// inclusion probability.
type Candidate struct {
	Kind        string
	Probability float64
}

// EffectConfig is the ordered list of candidates rolled for each run.
// The order of the candidates is the order of the resulting chain.
type EffectConfig []Candidate

// DefaultConfig returns every built-in kind at DefaultProbability.
func DefaultConfig() EffectConfig {
	kinds := DefaultCatalog().Kinds()

	cfg := make(EffectConfig, len(kinds))
	for i, kind := range kinds {
		cfg[i] = Candidate{Kind: kind, Probability: DefaultProbability}
	}

	return cfg
}

// DefaultFallback returns the chain used when no candidate is selected:
// a 300 Hz highpass, a one-semitone pitch shift and a light compressor.
func DefaultFallback() FallbackChain {
	return FallbackChain{
		NewEffect(KindHighpassFilter, Set("cutoff_frequency_hz", 300)),
		NewEffect(KindPitchShift, Set("semitones", 1)),
		NewEffect(KindCompressor, Set("threshold_db", -10.0), Set("ratio", 1.3)),
	}
}

// Validate checks every candidate against cat.
func (c EffectConfig) Validate(cat *Catalog) error {
	for i, cand := range c {
		if _, ok := cat.Lookup(cand.Kind); !ok {
			return fmt.Errorf("augment: candidate %d: %w: %q", i, ErrUnknownEffect, cand.Kind)
		}

		if math.IsNaN(cand.Probability) || cand.Probability < 0 || cand.Probability > 1 {
			return fmt.Errorf("augment: candidate %d (%s): %w: %v", i, cand.Kind, ErrInvalidProbability, cand.Probability)
		}
	}

	return nil
}

// RollConfig rolls every candidate of cfg in order, drawing from rng.
func RollConfig(cat *Catalog, cfg EffectConfig, rng Rand) ([]RolledEffect, error) {
	rolled := make([]RolledEffect, 0, len(cfg))

	for _, cand := range cfg {
		desc, ok := cat.Lookup(cand.Kind)
		if !ok {
			return nil, fmt.Errorf("augment: %w: %q", ErrUnknownEffect, cand.Kind)
		}

		r, err := Roll(desc, cand.Probability, rng)
		if err != nil {
			return nil, err
		}

		rolled = append(rolled, r)
	}

	return rolled, nil
}

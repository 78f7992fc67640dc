package augment

import "fmt"

// Augmenter rolls an EffectConfig, builds the chain and processes one
// waveform with it. It holds only read-only state and can be shared by
// concurrent workers as long as each uses its own Rand.
type Augmenter struct {
	catalog   *Catalog
	config    EffectConfig
	builder   *Builder
	processor *Processor
}

// NewAugmenter validates cfg against cat and fallback, and returns an
// Augmenter that processes with proc.
func NewAugmenter(cat *Catalog, cfg EffectConfig, fallback FallbackChain, proc *Processor) (*Augmenter, error) {
	if cat == nil {
		cat = DefaultCatalog()
	}

	err := cfg.Validate(cat)
	if err != nil {
		return nil, err
	}

	b, err := NewBuilder(fallback)
	if err != nil {
		return nil, err
	}

	return &Augmenter{
		catalog:   cat,
		config:    append(EffectConfig(nil), cfg...),
		builder:   b,
		processor: proc,
	}, nil
}

// Chain rolls every candidate and assembles the resulting chain.
func (a *Augmenter) Chain(rng Rand) (EffectChain, error) {
	rolled, err := RollConfig(a.catalog, a.config, rng)
	if err != nil {
		return EffectChain{}, err
	}

	return a.builder.Build(rolled)
}

// Augment rolls a chain from rng and applies it to w. The chain is returned
// alongside the result so callers can record what was applied.
func (a *Augmenter) Augment(w Waveform, rng Rand) (Waveform, EffectChain, error) {
	chain, err := a.Chain(rng)
	if err != nil {
		return Waveform{}, EffectChain{}, err
	}

	out, err := a.processor.Process(w, chain)
	if err != nil {
		return Waveform{}, chain, fmt.Errorf("augment: chain %s: %w", chain, err)
	}

	return out, chain, nil
}

// AugmentItem augments the item at index of a batch seeded with base.
func (a *Augmenter) AugmentItem(w Waveform, base uint64, index int) (Waveform, EffectChain, error) {
	return a.Augment(w, NewRand(SeedFor(base, index)))
}

package augment

import (
	"fmt"
	"strings"
)

// FallbackChain is the fixed effect sequence used when every roll of a run
// is absent.
type FallbackChain []Effect

// EffectChain is an ordered, non-empty sequence of effects ready to be
// applied. The zero value is empty and is rejected by Processor.Process.
type EffectChain struct {
	effects []Effect
}

// NewEffectChain returns a chain of effects in the given order.
// It fails with ErrEmptyChain if no effect is given.
func NewEffectChain(effects ...Effect) (EffectChain, error) {
	if len(effects) == 0 {
		return EffectChain{}, ErrEmptyChain
	}

	return EffectChain{effects: append([]Effect(nil), effects...)}, nil
}

// Effects returns a copy of the chain's effects in application order.
func (c EffectChain) Effects() []Effect {
	return append([]Effect(nil), c.effects...)
}

// Len returns the number of effects in the chain.
func (c EffectChain) Len() int {
	return len(c.effects)
}

func (c EffectChain) String() string {
	parts := make([]string, len(c.effects))
	for i, e := range c.effects {
		parts[i] = e.String()
	}

	return strings.Join(parts, " -> ")
}

// Build assembles the chain for one run.
//
// Present rolls are kept in their original order; absent rolls are dropped.
// If no roll is present the fallback is used verbatim. If the fallback is
// empty as well Build fails with ErrEmptyChain: every augmented output must
// go through at least one effect.
func Build(rolled []RolledEffect, fallback FallbackChain) (EffectChain, error) {
	selected := make([]Effect, 0, len(rolled))
	for _, r := range rolled {
		if e, ok := r.Effect(); ok {
			selected = append(selected, e)
		}
	}

	if len(selected) > 0 {
		return EffectChain{effects: selected}, nil
	}

	if len(fallback) == 0 {
		return EffectChain{}, fmt.Errorf("augment: build: no effect selected and no fallback: %w", ErrEmptyChain)
	}

	return EffectChain{effects: append([]Effect(nil), fallback...)}, nil
}

// Builder applies Build with a fallback that was validated once up front.
type Builder struct {
	fallback FallbackChain
}

// NewBuilder validates fallback and returns a Builder for it.
// An empty fallback is accepted; Build then fails with ErrEmptyChain
// whenever every roll is absent.
func NewBuilder(fallback FallbackChain) (*Builder, error) {
	for i, e := range fallback {
		if e.Kind == "" {
			return nil, fmt.Errorf("augment: fallback effect %d has empty kind", i)
		}
	}

	return &Builder{fallback: append(FallbackChain(nil), fallback...)}, nil
}

// Fallback returns a copy of the builder's fallback chain.
func (b *Builder) Fallback() FallbackChain {
	return append(FallbackChain(nil), b.fallback...)
}

// Build assembles the chain for rolled using the builder's fallback.
func (b *Builder) Build(rolled []RolledEffect) (EffectChain, error) {
	return Build(rolled, b.fallback)
}

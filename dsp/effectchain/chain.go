package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-augment/augment"
)

// ErrUnknownEffect is returned when an effect references an unregistered
// type. It is the same sentinel the augment package uses, so callers can
// match either.
var ErrUnknownEffect = augment.ErrUnknownEffect

type stage struct {
	effectType string
	runtime    Runtime
}

// Chain is a linear sequence of configured runtimes.
type Chain struct {
	ctx    Context
	stages []stage
}

// New creates a Chain whose stages are built from registry and configured
// from params in order.
func New(ctx Context, registry *Registry, params ...Params) (*Chain, error) {
	if ctx.SampleRate <= 0 {
		return nil, fmt.Errorf("effectchain: sample rate must be positive: %g", ctx.SampleRate)
	}

	c := &Chain{ctx: ctx, stages: make([]stage, 0, len(params))}

	for i, p := range params {
		factory := registry.Lookup(p.Type)
		if factory == nil {
			return nil, fmt.Errorf("effectchain: stage %d: %w: %q", i, ErrUnknownEffect, p.Type)
		}

		rt, err := factory(ctx)
		if err != nil {
			return nil, fmt.Errorf("effectchain: stage %d: create %s: %w", i, p.Type, err)
		}

		err = rt.Configure(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("effectchain: stage %d: %w", i, err)
		}

		c.stages = append(c.stages, stage{effectType: p.Type, runtime: rt})
	}

	return c, nil
}

// Context returns the chain context.
func (c *Chain) Context() Context {
	return c.ctx
}

// Len returns the number of stages.
func (c *Chain) Len() int {
	return len(c.stages)
}

// Process runs block through every stage in place.
func (c *Chain) Process(block []float64) error {
	for i, s := range c.stages {
		err := s.runtime.Process(block)
		if err != nil {
			return fmt.Errorf("effectchain: stage %d (%s): %w", i, s.effectType, err)
		}
	}

	return nil
}

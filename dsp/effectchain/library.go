package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-augment/augment"
)

// Library applies augment effects through a Registry.
// It is safe for concurrent use: every Apply builds fresh runtimes.
type Library struct {
	registry *Registry
}

var _ augment.EffectLibrary = (*Library)(nil)

// NewLibrary returns a library backed by registry, or by DefaultRegistry
// when registry is nil.
func NewLibrary(registry *Registry) *Library {
	if registry == nil {
		registry = DefaultRegistry()
	}

	return &Library{registry: registry}
}

// Apply processes samples in place with a runtime configured from effect
// and returns them.
func (l *Library) Apply(effect augment.Effect, samples []float64, sampleRate int) ([]float64, error) {
	p, err := ParamsFromEffect(effect)
	if err != nil {
		return nil, err
	}

	chain, err := New(Context{SampleRate: float64(sampleRate)}, l.registry, p)
	if err != nil {
		return nil, err
	}

	err = chain.Process(samples)
	if err != nil {
		return nil, err
	}

	return samples, nil
}

// ParamsFromEffect converts the assignment of effect to numeric Params.
// Non-numeric values are rejected.
func ParamsFromEffect(effect augment.Effect) (Params, error) {
	p := Params{Type: effect.Kind, Num: make(map[string]float64, len(effect.Params))}

	for _, s := range effect.Params {
		v, ok := effect.Params.Float(s.Name)
		if !ok {
			return Params{}, fmt.Errorf("effectchain: %s.%s: non-numeric value %v", effect.Kind, s.Name, s.Value)
		}

		p.Num[s.Name] = v
	}

	return p, nil
}

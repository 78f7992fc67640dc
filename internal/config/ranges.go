package config

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-augment/augment"
)

// Range type tags.
const (
	RangeContinuous  = "continuous"
	RangeDiscrete    = "discrete"
	RangeCategorical = "categorical"
)

// RangeConfig is the tagged YAML form of an augment.RangeSpec:
//
//	{type: continuous, min: -30, max: -10}
//	{type: discrete, min: 100, max: 500}
//	{type: categorical, choices: [-2, -1, 1, 2]}
type RangeConfig struct {
	Type    string        `yaml:"type"`
	Min     interface{}   `yaml:"min,omitempty"`
	Max     interface{}   `yaml:"max,omitempty"`
	Choices []interface{} `yaml:"choices,omitempty"`
}

// ParamRange is one named parameter range.
type ParamRange struct {
	Name  string
	Range RangeConfig
}

// EffectRanges lists the parameter ranges of one effect kind in file order.
type EffectRanges struct {
	Kind   string
	Params []ParamRange
}

// Effects is the effects section: a mapping from kind to a mapping from
// parameter name to range. Both levels keep their file order, which fixes
// the order parameters are sampled in.
type Effects []EffectRanges

// UnmarshalYAML decodes the two nested mappings in order.
func (e *Effects) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var kinds yaml.MapSlice

	err := unmarshal(&kinds)
	if err != nil {
		return err
	}

	out := make(Effects, 0, len(kinds))

	for _, kindItem := range kinds {
		kind, ok := kindItem.Key.(string)
		if !ok {
			return fmt.Errorf("%w: effects: kind %v is not a string", ErrInvalidConfig, kindItem.Key)
		}

		var params yaml.MapSlice

		err = redecode(kindItem.Value, &params)
		if err != nil {
			return fmt.Errorf("effects.%s: %w", kind, err)
		}

		er := EffectRanges{Kind: kind}

		for _, paramItem := range params {
			name, ok := paramItem.Key.(string)
			if !ok {
				return fmt.Errorf("%w: effects.%s: parameter %v is not a string", ErrInvalidConfig, kind, paramItem.Key)
			}

			var rc RangeConfig

			err = redecode(paramItem.Value, &rc)
			if err != nil {
				return fmt.Errorf("effects.%s.%s: %w", kind, name, err)
			}

			er.Params = append(er.Params, ParamRange{Name: name, Range: rc})
		}

		out = append(out, er)
	}

	*e = out

	return nil
}

// MarshalYAML encodes the section as ordered mappings.
func (e Effects) MarshalYAML() (interface{}, error) {
	kinds := make(yaml.MapSlice, 0, len(e))

	for _, er := range e {
		params := make(yaml.MapSlice, 0, len(er.Params))
		for _, p := range er.Params {
			params = append(params, yaml.MapItem{Key: p.Name, Value: p.Range})
		}

		kinds = append(kinds, yaml.MapItem{Key: er.Kind, Value: params})
	}

	return kinds, nil
}

// Descriptors converts the section into effect descriptors.
func (e Effects) Descriptors() ([]augment.EffectDescriptor, error) {
	descs := make([]augment.EffectDescriptor, 0, len(e))

	for _, er := range e {
		d := augment.EffectDescriptor{Kind: er.Kind}

		for _, p := range er.Params {
			spec, err := p.Range.Spec()
			if err != nil {
				return nil, fmt.Errorf("config: effects.%s.%s: %w", er.Kind, p.Name, err)
			}

			d.Params = append(d.Params, augment.Param{Name: p.Name, Range: spec})
		}

		err := d.Validate()
		if err != nil {
			return nil, fmt.Errorf("config: effects: %w", err)
		}

		descs = append(descs, d)
	}

	return descs, nil
}

// EffectsOf returns the effects section describing every kind of cat.
func EffectsOf(cat *augment.Catalog) Effects {
	kinds := cat.Kinds()
	out := make(Effects, 0, len(kinds))

	for _, kind := range kinds {
		d, _ := cat.Lookup(kind)

		er := EffectRanges{Kind: kind}
		for _, p := range d.Params {
			er.Params = append(er.Params, ParamRange{Name: p.Name, Range: RangeConfigOf(p.Range)})
		}

		out = append(out, er)
	}

	return out
}

// Spec resolves the tagged range into an augment.RangeSpec.
func (r RangeConfig) Spec() (augment.RangeSpec, error) {
	var spec augment.RangeSpec

	switch r.Type {
	case RangeContinuous:
		lo, okLo := number(r.Min)
		hi, okHi := number(r.Max)

		if !okLo || !okHi {
			return nil, fmt.Errorf("%w: continuous range needs numeric min and max", augment.ErrInvalidRange)
		}

		spec = augment.Continuous{Min: lo, Max: hi}
	case RangeDiscrete:
		lo, okLo := integer(r.Min)
		hi, okHi := integer(r.Max)

		if !okLo || !okHi {
			return nil, fmt.Errorf("%w: discrete range needs integer min and max", augment.ErrInvalidRange)
		}

		spec = augment.Discrete{Min: lo, Max: hi}
	case RangeCategorical:
		spec = augment.Categorical{Choices: append([]any(nil), r.Choices...)}
	default:
		return nil, fmt.Errorf("%w: unknown range type %q", augment.ErrInvalidRange, r.Type)
	}

	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	return spec, nil
}

// RangeConfigOf returns the tagged form of spec.
func RangeConfigOf(spec augment.RangeSpec) RangeConfig {
	switch s := spec.(type) {
	case augment.Continuous:
		return RangeConfig{Type: RangeContinuous, Min: s.Min, Max: s.Max}
	case augment.Discrete:
		return RangeConfig{Type: RangeDiscrete, Min: s.Min, Max: s.Max}
	case augment.Categorical:
		return RangeConfig{Type: RangeCategorical, Choices: append([]interface{}(nil), s.Choices...)}
	default:
		return RangeConfig{}
	}
}

// redecode converts a generically decoded YAML node into out.
func redecode(in, out interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return err
	}

	return yaml.UnmarshalStrict(data, out)
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func integer(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, false
		}

		return int(n), true
	default:
		return 0, false
	}
}

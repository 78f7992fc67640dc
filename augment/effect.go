package augment

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Param binds a parameter name to the range it is sampled from.
type Param struct {
	Name  string
	Range RangeSpec
}

// EffectDescriptor describes one effect kind and the ranges of its rolled
// parameters. Params are sampled in declaration order, which keeps seeded
// rolls reproducible.
type EffectDescriptor struct {
	Kind   string
	Params []Param
}

// Validate checks the kind, the parameter names and every range.
func (d EffectDescriptor) Validate() error {
	if d.Kind == "" {
		return errors.New("augment: effect descriptor has empty kind")
	}

	seen := make(map[string]struct{}, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "" {
			return fmt.Errorf("augment: %s: parameter with empty name", d.Kind)
		}

		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("augment: %s: duplicate parameter %q", d.Kind, p.Name)
		}

		seen[p.Name] = struct{}{}

		if p.Range == nil {
			return fmt.Errorf("augment: %s.%s: %w: nil range", d.Kind, p.Name, ErrInvalidRange)
		}

		err := p.Range.Validate()
		if err != nil {
			return fmt.Errorf("augment: %s.%s: %w", d.Kind, p.Name, err)
		}
	}

	return nil
}

// clone returns a deep copy so a registered descriptor cannot be changed
// through the caller's slices.
func (d EffectDescriptor) clone() EffectDescriptor {
	params := make([]Param, len(d.Params))
	for i, p := range d.Params {
		if c, ok := p.Range.(Categorical); ok {
			p.Range = Categorical{Choices: append([]any(nil), c.Choices...)}
		}

		params[i] = p
	}

	return EffectDescriptor{Kind: d.Kind, Params: params}
}

// Setting is one concrete parameter value.
type Setting struct {
	Name  string
	Value any
}

// Set is shorthand for Setting{Name: name, Value: v}.
func Set(name string, v any) Setting {
	return Setting{Name: name, Value: v}
}

// Assignment is the ordered set of parameter values of one effect instance.
type Assignment []Setting

// Value returns the value assigned to name.
func (a Assignment) Value(name string) (any, bool) {
	for _, s := range a {
		if s.Name == name {
			return s.Value, true
		}
	}

	return nil, false
}

// Float returns the value assigned to name converted to float64.
// It reports false if name is missing or not numeric.
func (a Assignment) Float(name string) (float64, bool) {
	v, ok := a.Value(name)
	if !ok {
		return 0, false
	}

	return toFloat(v)
}

// Int returns the value assigned to name as an int. Floats are accepted
// only when they hold a whole number.
func (a Assignment) Int(name string) (int, bool) {
	v, ok := a.Value(name)
	if !ok {
		return 0, false
	}

	if n, ok := v.(int); ok {
		return n, true
	}

	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return int(f), true
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Effect is a fully parameterized effect instance.
type Effect struct {
	Kind   string
	Params Assignment
}

// NewEffect returns an effect of kind with the given settings.
func NewEffect(kind string, settings ...Setting) Effect {
	return Effect{Kind: kind, Params: append(Assignment(nil), settings...)}
}

// String formats the effect as kind(name=value, ...).
func (e Effect) String() string {
	var b strings.Builder

	b.WriteString(e.Kind)
	b.WriteByte('(')

	for i, s := range e.Params {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(s.Name)
		b.WriteByte('=')
		b.WriteString(formatValue(s.Value))
	}

	b.WriteByte(')')

	return b.String()
}

func formatValue(v any) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'g', 6, 64)
	}

	return fmt.Sprint(v)
}

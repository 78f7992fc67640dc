package augment

import (
	"fmt"
	"slices"
	"sync"
)

// Built-in effect kinds.
const (
	KindCompressor     = "compressor"
	KindChorus         = "chorus"
	KindReverb         = "reverb"
	KindDistortion     = "distortion"
	KindLowpassFilter  = "lowpassfilter"
	KindHighpassFilter = "highpassfilter"
	KindPitchShift     = "pitchshift"
)

// Catalog is an immutable mapping from effect kind to EffectDescriptor.
// It is safe for concurrent use.
type Catalog struct {
	byKind map[string]EffectDescriptor
	kinds  []string
}

// NewCatalog validates descs and returns a catalog holding copies of them.
func NewCatalog(descs ...EffectDescriptor) (*Catalog, error) {
	c := &Catalog{byKind: make(map[string]EffectDescriptor, len(descs))}

	for _, d := range descs {
		err := d.Validate()
		if err != nil {
			return nil, err
		}

		if _, dup := c.byKind[d.Kind]; dup {
			return nil, fmt.Errorf("augment: duplicate effect kind %q", d.Kind)
		}

		c.byKind[d.Kind] = d.clone()
		c.kinds = append(c.kinds, d.Kind)
	}

	return c, nil
}

// MustCatalog is like NewCatalog but panics on error.
// It is intended for static tables.
func MustCatalog(descs ...EffectDescriptor) *Catalog {
	c, err := NewCatalog(descs...)
	if err != nil {
		panic(err)
	}

	return c
}

// Lookup returns the descriptor registered for kind.
func (c *Catalog) Lookup(kind string) (EffectDescriptor, bool) {
	d, ok := c.byKind[kind]
	if !ok {
		return EffectDescriptor{}, false
	}

	return d.clone(), true
}

// Kinds returns the registered kinds in registration order.
func (c *Catalog) Kinds() []string {
	return slices.Clone(c.kinds)
}

// Len returns the number of registered kinds.
func (c *Catalog) Len() int {
	return len(c.kinds)
}

// With returns a new catalog in which descs replace the descriptors of the
// same kind and unknown kinds are appended. c is left unchanged.
func (c *Catalog) With(descs ...EffectDescriptor) (*Catalog, error) {
	merged := make([]EffectDescriptor, 0, len(c.kinds)+len(descs))
	override := make(map[string]EffectDescriptor, len(descs))

	for _, d := range descs {
		if _, dup := override[d.Kind]; dup {
			return nil, fmt.Errorf("augment: duplicate effect kind %q", d.Kind)
		}

		override[d.Kind] = d
	}

	for _, kind := range c.kinds {
		if d, ok := override[kind]; ok {
			merged = append(merged, d)
			delete(override, kind)

			continue
		}

		merged = append(merged, c.byKind[kind])
	}

	for _, d := range descs {
		if _, pending := override[d.Kind]; pending {
			merged = append(merged, d)
		}
	}

	return NewCatalog(merged...)
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	return MustCatalog(
		EffectDescriptor{Kind: KindCompressor, Params: []Param{
			{Name: "threshold_db", Range: Continuous{Min: -30, Max: -10}},
			{Name: "ratio", Range: Continuous{Min: 1.5, Max: 3.0}},
		}},
		EffectDescriptor{Kind: KindChorus, Params: []Param{
			{Name: "rate_hz", Range: Continuous{Min: 0.5, Max: 0.8}},
			{Name: "depth", Range: Continuous{Min: 0.05, Max: 0.15}},
		}},
		EffectDescriptor{Kind: KindReverb, Params: []Param{
			{Name: "room_size", Range: Continuous{Min: 0.1, Max: 0.5}},
			{Name: "damping", Range: Continuous{Min: 0.3, Max: 0.9}},
			{Name: "wet_level", Range: Continuous{Min: 0.3, Max: 0.7}},
			{Name: "dry_level", Range: Continuous{Min: 0.3, Max: 0.7}},
		}},
		EffectDescriptor{Kind: KindDistortion, Params: []Param{
			{Name: "drive_db", Range: Discrete{Min: 1, Max: 3}},
		}},
		EffectDescriptor{Kind: KindLowpassFilter, Params: []Param{
			{Name: "cutoff_frequency_hz", Range: Discrete{Min: 4000, Max: 6000}},
		}},
		EffectDescriptor{Kind: KindHighpassFilter, Params: []Param{
			{Name: "cutoff_frequency_hz", Range: Discrete{Min: 100, Max: 500}},
		}},
		EffectDescriptor{Kind: KindPitchShift, Params: []Param{
			{Name: "semitones", Range: Categorical{Choices: []any{-2, -1, 1, 2}}},
		}},
	)
})

// DefaultCatalog returns the prebuilt parameter table for the seven
// built-in effect kinds. The catalog is built once and shared.
func DefaultCatalog() *Catalog {
	return defaultCatalog()
}

package effectchain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
)

// ErrUnknownParam is returned when an effect is given a parameter its
// runtime does not understand.
var ErrUnknownParam = errors.New("unknown effect parameter")

// Params holds the numeric parameters for a single effect instance.
type Params struct {
	Type string
	Num  map[string]float64
}

// GetNum safely extracts a numeric parameter, returning def if missing or invalid.
func (p Params) GetNum(key string, def float64) float64 {
	if p.Num == nil {
		return def
	}

	v, ok := p.Num[key]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}

	return v
}

// Allow reports an ErrUnknownParam error naming the first key (in sorted
// order) that is not in names.
func (p Params) Allow(names ...string) error {
	keys := make([]string, 0, len(p.Num))
	for k := range p.Num {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		if !slices.Contains(names, k) {
			return fmt.Errorf("%w: %s.%s", ErrUnknownParam, p.Type, k)
		}
	}

	return nil
}

package augment

import "errors"

var (
	// ErrInvalidRange is returned for a malformed RangeSpec: min > max,
	// non-finite bounds, or a categorical range without choices.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidProbability is returned when an inclusion probability lies
	// outside [0, 1].
	ErrInvalidProbability = errors.New("invalid inclusion probability")

	// ErrEmptyChain is returned when no effect was selected and no fallback
	// is available, or when an empty chain reaches the processor.
	ErrEmptyChain = errors.New("empty effect chain")

	// ErrUnknownEffect is returned when a configuration references an effect
	// kind that the catalog does not describe.
	ErrUnknownEffect = errors.New("unknown effect kind")

	// ErrEffectFailed wraps a failure reported by the effect library while a
	// chain was being applied.
	ErrEffectFailed = errors.New("effect failed")

	// ErrNonFiniteSignal is returned when a processed signal contains NaN or Inf.
	ErrNonFiniteSignal = errors.New("non-finite signal")
)

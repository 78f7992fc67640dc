// Package augment builds randomized effect chains for audio data augmentation.
//
// An augmentation run has four steps:
//
//   - Sample draws one parameter value from a typed RangeSpec
//     (Continuous, Discrete or Categorical).
//   - Roll decides with an inclusion probability whether an effect takes
//     part in the run and, if it does, samples all of its parameters.
//   - Build keeps the included effects in order, or substitutes a fixed
//     fallback chain when every roll came up empty.
//   - Processor.Process applies the chain to a Waveform through an
//     EffectLibrary and peak-normalizes the result.
//
// Randomness is never global: every call takes an explicit Rand, so a run
// is reproducible from its seed and independent items can be processed in
// parallel without locking. SeedFor derives per-item seeds from a base seed.
//
// The package does not implement any effect DSP itself. Effect kinds are
// opaque names resolved by the EffectLibrary passed to NewProcessor; see
// github.com/cwbudde/algo-augment/dsp/effectchain for the built-in one.
package augment

// Package effectchain turns parameterized effects into configured DSP
// runtimes and runs them in sequence.
//
// A [Registry] maps effect kinds to factories. [DefaultRegistry] holds the
// seven built-in kinds backed by dsp/effects. [Library] adapts a registry
// to augment.EffectLibrary so the augmentation processor can apply rolled
// effect chains.
package effectchain

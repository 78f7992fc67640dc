// Package effects implements the audio effect kernels used for
// augmentation: compressor, chorus, reverb, distortion, biquad
// lowpass/highpass filters and a spectral pitch shifter.
//
// Every kernel is a stateful mono processor with a constructor taking the
// sample rate, validated setters and ProcessInPlace. Kernels are not safe
// for concurrent use; construct one per goroutine.
//
// Building with the fastmath tag swaps the transcendental functions in the
// compressor and distortion hot loops for the algo-approx approximations.
package effects

// Package features computes mel power spectrograms of mono
// waveforms and writes spectrogram batches as NumPy .npy arrays.
//
// The analysis follows the conventions of common Python audio tooling:
// centered frames with zero padding of NFFT/2 on both sides, a periodic
// Hann window, power (|X|^2) spectra and a Slaney-style mel filterbank with
// area-normalized triangles.
package features

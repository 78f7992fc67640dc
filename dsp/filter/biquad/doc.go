// Package biquad provides second-order IIR filter sections and the RBJ
// cookbook designs used by the lowpass and highpass effects.
//
// A [Section] implements Direct Form II Transposed processing for one
// second-order section defined by [Coefficients].
package biquad

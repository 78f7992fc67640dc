// Package interp provides the fractional interpolation kernels used by
// delay-based effects.
package interp

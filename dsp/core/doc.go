// Package core holds small numeric and buffer helpers shared by the effect
// kernels, the augmentation core and the dataset pipeline.
package core

package effectchain

// Runtime is the per-effect processing and configuration contract.
//
// Configure is called once per block of work before Process. Process
// transforms block in place.
type Runtime interface {
	Configure(ctx Context, params Params) error
	Process(block []float64) error
}

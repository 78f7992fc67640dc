package effectchain

import "errors"

var errStubProcess = errors.New("stub process failure")

// stubRuntime records calls and can fail on demand.
type stubRuntime struct {
	configureErr   error
	processErr     error
	configureCalls int
	processCalls   int
	lastCtx        Context
	lastParams     Params
}

func (s *stubRuntime) Configure(ctx Context, params Params) error {
	s.configureCalls++
	s.lastCtx = ctx
	s.lastParams = params

	return s.configureErr
}

func (s *stubRuntime) Process(_ []float64) error {
	s.processCalls++

	return s.processErr
}

// gainRuntime multiplies every sample by a fixed gain.
type gainRuntime struct {
	gain float64
}

func (g *gainRuntime) Configure(_ Context, params Params) error {
	g.gain = params.GetNum("gain", 1.0)

	return params.Allow("gain")
}

func (g *gainRuntime) Process(block []float64) error {
	for i := range block {
		block[i] *= g.gain
	}

	return nil
}

// addRuntime adds a constant to every sample.
type addRuntime struct {
	value float64
}

func (a *addRuntime) Configure(_ Context, params Params) error {
	a.value = params.GetNum("value", 0)

	return nil
}

func (a *addRuntime) Process(block []float64) error {
	for i := range block {
		block[i] += a.value
	}

	return nil
}

func testRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister("gain", func(_ Context) (Runtime, error) { return &gainRuntime{}, nil })
	r.MustRegister("add", func(_ Context) (Runtime, error) { return &addRuntime{}, nil })
	r.MustRegister("fail", func(_ Context) (Runtime, error) {
		return &stubRuntime{processErr: errStubProcess}, nil
	})

	return r
}

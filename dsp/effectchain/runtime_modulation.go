package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/effects"
)

type chorusRuntime struct {
	fx *effects.Chorus
}

func (r *chorusRuntime) Configure(_ Context, p Params) error {
	err := p.Allow("rate_hz", "depth", "centre_delay_ms", "feedback", "mix")
	if err != nil {
		return err
	}

	err = r.fx.SetRate(core.Clamp(p.GetNum("rate_hz", 1), 0, 100))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus rate: %w", err)
	}

	err = r.fx.SetDepth(core.Clamp(p.GetNum("depth", 0.25), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus depth: %w", err)
	}

	err = r.fx.SetCentreDelay(core.Clamp(p.GetNum("centre_delay_ms", 7), 1, 100))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus centre delay: %w", err)
	}

	err = r.fx.SetFeedback(core.Clamp(p.GetNum("feedback", 0), -0.95, 0.95))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus feedback: %w", err)
	}

	err = r.fx.SetMix(core.Clamp(p.GetNum("mix", 0.5), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure chorus mix: %w", err)
	}

	return nil
}

func (r *chorusRuntime) Process(block []float64) error {
	r.fx.ProcessInPlace(block)

	return nil
}

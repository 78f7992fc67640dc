package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/effects"
)

type filterRuntime struct {
	fx *effects.Filter
}

func (r *filterRuntime) Configure(ctx Context, p Params) error {
	err := p.Allow("cutoff_frequency_hz")
	if err != nil {
		return err
	}

	err = r.fx.SetCutoff(core.Clamp(p.GetNum("cutoff_frequency_hz", 50), 1, ctx.SampleRate/2))
	if err != nil {
		return fmt.Errorf("effectchain: configure %s cutoff: %w", r.fx.Mode(), err)
	}

	return nil
}

func (r *filterRuntime) Process(block []float64) error {
	r.fx.ProcessInPlace(block)

	return nil
}

type pitchShiftRuntime struct {
	fx *effects.PitchShifter
}

func (r *pitchShiftRuntime) Configure(_ Context, p Params) error {
	err := p.Allow("semitones")
	if err != nil {
		return err
	}

	err = r.fx.SetSemitones(core.Clamp(p.GetNum("semitones", 0), -24, 24))
	if err != nil {
		return fmt.Errorf("effectchain: configure pitch shift semitones: %w", err)
	}

	return nil
}

func (r *pitchShiftRuntime) Process(block []float64) error {
	err := r.fx.ProcessInPlace(block)
	if err != nil {
		return fmt.Errorf("effectchain: pitch shift: %w", err)
	}

	return nil
}

type reverbRuntime struct {
	fx *effects.Reverb
}

func (r *reverbRuntime) Configure(_ Context, p Params) error {
	err := p.Allow("room_size", "damping", "wet_level", "dry_level")
	if err != nil {
		return err
	}

	err = r.fx.SetRoomSize(core.Clamp(p.GetNum("room_size", 0.5), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure reverb room size: %w", err)
	}

	err = r.fx.SetDamping(core.Clamp(p.GetNum("damping", 0.5), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure reverb damping: %w", err)
	}

	err = r.fx.SetWetLevel(core.Clamp(p.GetNum("wet_level", 0.33), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure reverb wet level: %w", err)
	}

	err = r.fx.SetDryLevel(core.Clamp(p.GetNum("dry_level", 0.4), 0, 1))
	if err != nil {
		return fmt.Errorf("effectchain: configure reverb dry level: %w", err)
	}

	return nil
}

func (r *reverbRuntime) Process(block []float64) error {
	r.fx.ProcessInPlace(block)

	return nil
}

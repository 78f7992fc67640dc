package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/effects"
)

type compressorRuntime struct {
	fx *effects.Compressor
}

func (r *compressorRuntime) Configure(_ Context, p Params) error {
	err := p.Allow("threshold_db", "ratio", "attack_ms", "release_ms")
	if err != nil {
		return err
	}

	err = r.fx.SetThreshold(core.Clamp(p.GetNum("threshold_db", 0), -96, 0))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor threshold: %w", err)
	}

	err = r.fx.SetRatio(core.Clamp(p.GetNum("ratio", 1), 1, 100))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor ratio: %w", err)
	}

	err = r.fx.SetAttack(core.Clamp(p.GetNum("attack_ms", 1), 0.01, 1000))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor attack: %w", err)
	}

	err = r.fx.SetRelease(core.Clamp(p.GetNum("release_ms", 100), 1, 5000))
	if err != nil {
		return fmt.Errorf("effectchain: configure compressor release: %w", err)
	}

	return nil
}

func (r *compressorRuntime) Process(block []float64) error {
	r.fx.ProcessInPlace(block)

	return nil
}

type distortionRuntime struct {
	fx *effects.Distortion
}

func (r *distortionRuntime) Configure(_ Context, p Params) error {
	err := p.Allow("drive_db")
	if err != nil {
		return err
	}

	err = r.fx.SetDrive(core.Clamp(p.GetNum("drive_db", 25), -60, 60))
	if err != nil {
		return fmt.Errorf("effectchain: configure distortion drive: %w", err)
	}

	return nil
}

func (r *distortionRuntime) Process(block []float64) error {
	r.fx.ProcessInPlace(block)

	return nil
}
